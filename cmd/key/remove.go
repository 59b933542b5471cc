package key

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
)

// RemoveCmd should be used to represent the 'key remove' command.
type RemoveCmd struct {
	*cmd.BaseCmd
}

// NewRemoveCmd creates a newly configured (Cobra) command.
func NewRemoveCmd(logger hclog.Logger) *cobra.Command {
	c := &RemoveCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "remove <key-name>",
		Short: "Removes a key from the store.",
		Long: "Removes a key from the store. " +
			"Server bindings that reference it stop contributing to materialized configs.",
		RunE: c.run,
	}

	return cobraCommand
}

// run is configured (via NewRemoveCmd) to be called by the Cobra framework when the command is executed.
func (c *RemoveCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("key name is required and cannot be empty")
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

	k, err := resolveKey(st, name)
	if err != nil {
		return err
	}

	st, err = st.SoftDeleteKey(k.ID)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Removed key '%s'\n", k.Name)

	return nil
}
