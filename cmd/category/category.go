package category

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	internalerrors "github.com/mcpswitch/mcpswitch/internal/errors"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// NewCategoryCmd groups the category commands.
func NewCategoryCmd(logger hclog.Logger) *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:   "category <command> [args]",
		Short: "Manage categories (named collections of MCP servers).",
	}

	categoryCmd.AddCommand(NewAddCmd(logger))
	categoryCmd.AddCommand(NewUpdateCmd(logger))
	categoryCmd.AddCommand(NewRemoveCmd(logger))
	categoryCmd.AddCommand(NewListCmd(logger))
	categoryCmd.AddCommand(NewAttachCmd(logger))
	categoryCmd.AddCommand(NewDetachCmd(logger))
	categoryCmd.AddCommand(NewActivateCmd(logger))
	categoryCmd.AddCommand(NewImportCmd(logger))
	categoryCmd.AddCommand(NewExportCmd(logger))

	return categoryCmd
}

// resolveCategory looks a category up by name first, then by id.
func resolveCategory(st store.Store, nameOrID string) (store.Category, error) {
	if cat, ok := st.FindCategoryByName(nameOrID); ok {
		return cat, nil
	}
	if cat, ok := st.Categories[nameOrID]; ok && !cat.Deleted() {
		return cat, nil
	}

	return store.Category{}, fmt.Errorf("%w: '%s'", internalerrors.ErrCategoryNotFound, nameOrID)
}
