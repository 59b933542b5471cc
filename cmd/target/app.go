package target

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/settings"
)

// AppCmd should be used to represent the 'target app' command.
type AppCmd struct {
	*cmd.BaseCmd
	ProcessName string
	Path        string
	Args        []string
}

// NewAppCmd creates a newly configured (Cobra) command.
func NewAppCmd(logger hclog.Logger) *cobra.Command {
	c := &AppCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "app <target-name>",
		Short: "Configures the desktop application restarted after activations for a target.",
		Long: "Configures the desktop application restarted after activations for a target. " +
			"The entry lives in the settings file, not the store. An empty --path removes it.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.ProcessName,
		"process-name",
		"",
		"Executable name used to find and kill the running application (e.g. claude.exe)",
	)
	cobraCommand.Flags().StringVar(&c.Path, "path", "", "Executable to launch (empty removes the entry)")
	cobraCommand.Flags().StringArrayVar(&c.Args, "arg", nil, "Argument passed on launch (repeatable)")

	return cobraCommand
}

// run is configured (via NewAppCmd) to be called by the Cobra framework when the command is executed.
func (c *AppCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("target name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	gateway, err := c.Gateway()
	if err != nil {
		return err
	}
	st, err := gateway.LoadStore()
	if err != nil {
		return err
	}

	tgt, err := resolveTarget(st, name)
	if err != nil {
		return err
	}

	cfg, err := c.Settings()
	if err != nil {
		return err
	}

	entry := settings.AppEntry{
		ProcessName: strings.TrimSpace(c.ProcessName),
		Path:        strings.TrimSpace(c.Path),
		Args:        c.Args,
	}
	if entry.Path != "" && entry.ProcessName == "" {
		return fmt.Errorf("--process-name is required when --path is set")
	}

	if err := cfg.SetApp(tgt.ID, entry); err != nil {
		return err
	}

	out := cobraCmd.OutOrStdout()
	if entry.Path == "" {
		fmt.Fprintf(out, "✓ Removed application entry for target '%s'\n", tgt.Name)
	} else {
		fmt.Fprintf(out, "✓ Application for target '%s' set to %s\n", tgt.Name, entry.Path)
	}

	return nil
}
