package category

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
)

// RemoveCmd should be used to represent the 'category remove' command.
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
		Use:   "remove <category-name>",
		Short: "Removes a category from the store.",
		Long: "Removes a category from the store. " +
			"The record is soft-deleted; its server relations remain addressable but inert. " +
			"A target whose active category is removed reverts to having no active category.",
		RunE: c.run,
	}

	return cobraCommand
}

// run is configured (via NewRemoveCmd) to be called by the Cobra framework when the command is executed.
func (c *RemoveCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("category name is required and cannot be empty")
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

	cat, err := resolveCategory(st, name)
	if err != nil {
		return err
	}

	st, err = st.SoftDeleteCategory(cat.ID)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Removed category '%s'\n", cat.Name)

	return nil
}
