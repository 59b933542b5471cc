package key

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
)

// AddCmd should be used to represent the 'key add' command.
type AddCmd struct {
	*cmd.BaseCmd
	Value string
}

// NewAddCmd creates a newly configured (Cobra) command.
func NewAddCmd(logger hclog.Logger) *cobra.Command {
	c := &AddCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "add <key-name>",
		Short: "Adds a key to the store.",
		Long: "Adds a key to the store. " +
			"Bound to a server via 'key bind', its value is injected into the server's " +
			"materialized config as an environment variable.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(&c.Value, "value", "", "The key's value")

	return cobraCommand
}

// run is configured (via NewAddCmd) to be called by the Cobra framework when the command is executed.
func (c *AddCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("key name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	if c.Value == "" {
		return fmt.Errorf("--value is required")
	}

	gateway, err := c.Gateway()
	if err != nil {
		return err
	}
	st, err := gateway.LoadStore()
	if err != nil {
		return err
	}

	st, k, err := st.CreateKey(name, c.Value)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Added key '%s' (id: %s)\n", k.Name, k.ID)

	return nil
}
