package category

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// AddCmd should be used to represent the 'category add' command.
type AddCmd struct {
	*cmd.BaseCmd
	Description string
	Icon        string
	Target      string
}

// NewAddCmd creates a newly configured (Cobra) command.
func NewAddCmd(logger hclog.Logger) *cobra.Command {
	c := &AddCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "add <category-name>",
		Short: "Adds a category to the store.",
		Long: "Adds a category to the store. " +
			"A category scoped to a target (or to 'all') can later be activated for that target.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(&c.Description, "description", "", "Free-form description")
	cobraCommand.Flags().StringVar(&c.Icon, "icon", "", "Icon identifier shown by UIs")
	cobraCommand.Flags().StringVar(
		&c.Target,
		"target",
		store.TargetAll,
		"Config target this category is scoped to ('all' for every target)",
	)

	return cobraCommand
}

// run is configured (via NewAddCmd) to be called by the Cobra framework when the command is executed.
func (c *AddCmd) run(cobraCmd *cobra.Command, args []string) error {
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

	st, cat, err := st.CreateCategory(name, c.Description, c.Icon, c.Target)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Added category '%s' (id: %s, target: %s)\n", cat.Name, cat.ID, cat.Target)

	return nil
}
