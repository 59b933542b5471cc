package target

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	internalerrors "github.com/mcpswitch/mcpswitch/internal/errors"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// NewTargetCmd groups the config target commands.
func NewTargetCmd(logger hclog.Logger) *cobra.Command {
	targetCmd := &cobra.Command{
		Use:   "target <command> [args]",
		Short: "Manage config targets (the external tools whose config files are written).",
	}

	targetCmd.AddCommand(NewAddCmd(logger))
	targetCmd.AddCommand(NewUpdateCmd(logger))
	targetCmd.AddCommand(NewRemoveCmd(logger))
	targetCmd.AddCommand(NewListCmd(logger))
	targetCmd.AddCommand(NewSelectCmd(logger))
	targetCmd.AddCommand(NewSetPathCmd(logger))
	targetCmd.AddCommand(NewAppCmd(logger))
	targetCmd.AddCommand(NewStatusCmd(logger))
	targetCmd.AddCommand(NewRestartCmd(logger))

	return targetCmd
}

// resolveTarget looks a config target up by id or name.
func resolveTarget(st store.Store, nameOrID string) (store.ConfigTarget, error) {
	if tgt, ok := st.FindConfigTargetByName(nameOrID); ok {
		return tgt, nil
	}

	return store.ConfigTarget{}, fmt.Errorf("%w: config target '%s'", internalerrors.ErrNotFound, nameOrID)
}
