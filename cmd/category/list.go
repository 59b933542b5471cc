package category

import (
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/printer"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// ListCmd should be used to represent the 'category list' command.
type ListCmd struct {
	*cmd.BaseCmd
	Target string
}

// NewListCmd creates a newly configured (Cobra) command.
func NewListCmd(logger hclog.Logger) *cobra.Command {
	c := &ListCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists the categories in the store.",
		Long: "Lists the categories in the store. " +
			"With --target, only categories scoped to that target (or to 'all') are shown.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Target,
		"target",
		"",
		"Show only categories applicable to this config target",
	)

	return cobraCommand
}

// run is configured (via NewListCmd) to be called by the Cobra framework when the command is executed.
func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
	gateway, err := c.Gateway()
	if err != nil {
		return err
	}
	st, err := gateway.LoadStore()
	if err != nil {
		return err
	}

	var categories []store.Category
	if target := strings.TrimSpace(c.Target); target != "" {
		categories = st.CategoriesForTarget(target)
	} else {
		categories = st.ActiveCategoriesList()
	}

	printer.Categories(cobraCmd.OutOrStdout(), st, categories)

	return nil
}
