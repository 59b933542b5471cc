package category

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// UpdateCmd should be used to represent the 'category update' command.
type UpdateCmd struct {
	*cmd.BaseCmd
	Name        string
	Description string
	Icon        string
	Target      string
}

// NewUpdateCmd creates a newly configured (Cobra) command.
func NewUpdateCmd(logger hclog.Logger) *cobra.Command {
	c := &UpdateCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "update <category-name>",
		Short: "Updates an existing category.",
		Long: "Updates an existing category. " +
			"Only the fields supplied via flags are changed; the rest are preserved.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(&c.Name, "rename", "", "New name for the category")
	cobraCommand.Flags().StringVar(&c.Description, "description", "", "New description")
	cobraCommand.Flags().StringVar(&c.Icon, "icon", "", "New icon identifier")
	cobraCommand.Flags().StringVar(&c.Target, "target", "", "New config target scope")

	return cobraCommand
}

// run is configured (via NewUpdateCmd) to be called by the Cobra framework when the command is executed.
func (c *UpdateCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("category name is required and cannot be empty")
	}
	name := strings.TrimSpace(args[0])

	update := store.CategoryUpdate{}
	if strings.TrimSpace(c.Name) != "" {
		newName := strings.TrimSpace(c.Name)
		update.Name = &newName
	}
	if cobraCmd.Flags().Changed("description") {
		update.Description = &c.Description
	}
	if cobraCmd.Flags().Changed("icon") {
		update.Icon = &c.Icon
	}
	if strings.TrimSpace(c.Target) != "" {
		target := strings.TrimSpace(c.Target)
		update.Target = &target
	}
	if update.Name == nil && update.Description == nil && update.Icon == nil && update.Target == nil {
		return fmt.Errorf("nothing to update, supply at least one of --rename, --description, --icon, --target")
	}

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

	st, cat, err = st.UpdateCategory(cat.ID, update)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Updated category '%s' (version: %d)\n", cat.Name, cat.Version)

	return nil
}
