package target

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
)

// AddCmd should be used to represent the 'target add' command.
type AddCmd struct {
	*cmd.BaseCmd
	ConfigPath string
}

// NewAddCmd creates a newly configured (Cobra) command.
func NewAddCmd(logger hclog.Logger) *cobra.Command {
	c := &AddCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "add <target-name>",
		Short: "Adds a user-defined config target.",
		Long: "Adds a user-defined config target. " +
			"The config path may contain %VAR% environment placeholders; they are expanded " +
			"when a config file is written, not when the path is saved.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.ConfigPath,
		"config-path",
		"",
		"Path of the tool's JSON config file (may contain %VAR% placeholders)",
	)

	return cobraCommand
}

// run is configured (via NewAddCmd) to be called by the Cobra framework when the command is executed.
func (c *AddCmd) run(cobraCmd *cobra.Command, args []string) error {
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

	st, tgt, err := st.CreateConfigTarget(name, c.ConfigPath)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Added config target '%s' (id: %s)\n", tgt.Name, tgt.ID)

	return nil
}
