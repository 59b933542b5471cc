package target

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
)

// SetPathCmd should be used to represent the 'target set-path' command.
type SetPathCmd struct {
	*cmd.BaseCmd
	Path string
}

// NewSetPathCmd creates a newly configured (Cobra) command.
func NewSetPathCmd(logger hclog.Logger) *cobra.Command {
	c := &SetPathCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "set-path <target-name>",
		Short: "Overrides where a target's config file is written.",
		Long: "Overrides where a target's config file is written, without touching the target record. " +
			"This is the supported way to redirect a built-in target's config file. " +
			"An empty --path removes the override.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Path,
		"path",
		"",
		"Config file path override (may contain %VAR% placeholders; empty removes the override)",
	)

	return cobraCommand
}

// run is configured (via NewSetPathCmd) to be called by the Cobra framework when the command is executed.
func (c *SetPathCmd) run(cobraCmd *cobra.Command, args []string) error {
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

	st = st.SetConfigPathOverride(tgt.ID, strings.TrimSpace(c.Path))
	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	out := cobraCmd.OutOrStdout()
	if strings.TrimSpace(c.Path) == "" {
		fmt.Fprintf(out, "✓ Removed config path override for target '%s'\n", tgt.Name)
	} else {
		fmt.Fprintf(out, "✓ Config path for target '%s' overridden to %s\n", tgt.Name, c.Path)
	}

	return nil
}
