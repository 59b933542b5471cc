package server

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// AddCmd should be used to represent the 'server add' command.
type AddCmd struct {
	*cmd.BaseCmd
	Value     string
	ValueFile string
	Force     bool
}

// NewAddCmd creates a newly configured (Cobra) command.
func NewAddCmd(logger hclog.Logger) *cobra.Command {
	c := &AddCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "add <server-name>",
		Short: "Adds an MCP server definition to the store.",
		Long:  c.longDescription(),
		RunE:  c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Value,
		"value",
		"",
		"JSON config blob for the server ({\"command\": ..., \"args\": [...]})",
	)
	cobraCommand.Flags().StringVar(
		&c.ValueFile,
		"value-file",
		"",
		"Path to a file containing the JSON config blob (alternative to --value)",
	)
	cobraCommand.Flags().BoolVar(
		&c.Force,
		"force",
		false,
		"Store the value even when it does not match the expected config shape",
	)

	return cobraCommand
}

// longDescription returns the long version of the command description.
func (c *AddCmd) longDescription() string {
	return `Adds an MCP server definition to the store.
The value blob is validated against the expected shape (command, args, env,
description) before it is accepted; pass --force to store it anyway.`
}

// run is configured (via NewAddCmd) to be called by the Cobra framework when the command is executed.
func (c *AddCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("server name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	value, err := c.resolveValue()
	if err != nil {
		return err
	}

	if !c.Force {
		if err := store.ValidateServerValue(value); err != nil {
			return fmt.Errorf("%w (use --force to store it anyway)", err)
		}
	}

	gateway, err := c.Gateway()
	if err != nil {
		return err
	}
	st, err := gateway.LoadStore()
	if err != nil {
		return err
	}

	st, srv, err := st.CreateServer(name, value)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	c.Logger().Debug("Server added", "name", name, "id", srv.ID)
	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Added server '%s' (id: %s)\n", name, srv.ID)

	return nil
}

func (c *AddCmd) resolveValue() (string, error) {
	hasValue := strings.TrimSpace(c.Value) != ""
	hasFile := strings.TrimSpace(c.ValueFile) != ""

	switch {
	case hasValue && hasFile:
		return "", fmt.Errorf("--value and --value-file are mutually exclusive")
	case hasValue:
		return c.Value, nil
	case hasFile:
		data, err := os.ReadFile(c.ValueFile)
		if err != nil {
			return "", fmt.Errorf("could not read value file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("one of --value or --value-file is required")
	}
}
