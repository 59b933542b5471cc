package target

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// UpdateCmd should be used to represent the 'target update' command.
type UpdateCmd struct {
	*cmd.BaseCmd
	Name       string
	ConfigPath string
}

// NewUpdateCmd creates a newly configured (Cobra) command.
func NewUpdateCmd(logger hclog.Logger) *cobra.Command {
	c := &UpdateCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "update <target-name>",
		Short: "Updates a user-defined config target.",
		Long: "Updates a user-defined config target. " +
			"Built-in targets cannot be updated; use 'target set-path' to override their config path.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(&c.Name, "rename", "", "New name for the target")
	cobraCommand.Flags().StringVar(&c.ConfigPath, "config-path", "", "New config file path")

	return cobraCommand
}

// run is configured (via NewUpdateCmd) to be called by the Cobra framework when the command is executed.
func (c *UpdateCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("target name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	update := store.ConfigTargetUpdate{}
	if strings.TrimSpace(c.Name) != "" {
		newName := strings.TrimSpace(c.Name)
		update.Name = &newName
	}
	if cobraCmd.Flags().Changed("config-path") {
		update.ConfigPath = &c.ConfigPath
	}
	if update.Name == nil && update.ConfigPath == nil {
		return fmt.Errorf("nothing to update, supply --rename and/or --config-path")
	}

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

	st, tgt, err = st.UpdateConfigTarget(tgt.ID, update)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Updated config target '%s' (version: %d)\n", tgt.Name, tgt.Version)

	return nil
}
