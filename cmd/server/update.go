package server

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	internalerrors "github.com/mcpswitch/mcpswitch/internal/errors"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// UpdateCmd should be used to represent the 'server update' command.
type UpdateCmd struct {
	*cmd.BaseCmd
	Name  string
	Value string
	Force bool
}

// NewUpdateCmd creates a newly configured (Cobra) command.
func NewUpdateCmd(logger hclog.Logger) *cobra.Command {
	c := &UpdateCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "update <server-name>",
		Short: "Updates an existing MCP server definition.",
		Long: "Updates an existing MCP server definition. " +
			"Only the fields supplied via flags are changed; the rest are preserved.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(&c.Name, "rename", "", "New name for the server")
	cobraCommand.Flags().StringVar(&c.Value, "value", "", "New JSON config blob for the server")
	cobraCommand.Flags().BoolVar(
		&c.Force,
		"force",
		false,
		"Store the value even when it does not match the expected config shape",
	)

	return cobraCommand
}

// run is configured (via NewUpdateCmd) to be called by the Cobra framework when the command is executed.
func (c *UpdateCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("server name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	update := store.ServerUpdate{}
	if strings.TrimSpace(c.Name) != "" {
		newName := strings.TrimSpace(c.Name)
		update.Name = &newName
	}
	if c.Value != "" {
		if !c.Force {
			if err := store.ValidateServerValue(c.Value); err != nil {
				return fmt.Errorf("%w (use --force to store it anyway)", err)
			}
		}
		update.Value = &c.Value
	}
	if update.Name == nil && update.Value == nil {
		return fmt.Errorf("nothing to update, supply --rename and/or --value")
	}

	gateway, err := c.Gateway()
	if err != nil {
		return err
	}
	st, err := gateway.LoadStore()
	if err != nil {
		return err
	}

	srv, ok := st.FindServerByName(name)
	if !ok {
		return fmt.Errorf("%w: server '%s'", internalerrors.ErrNotFound, name)
	}

	st, srv, err = st.UpdateServer(srv.ID, update)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Updated server '%s' (version: %d)\n", srv.Name, srv.Version)

	return nil
}
