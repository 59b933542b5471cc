package key

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	internalerrors "github.com/mcpswitch/mcpswitch/internal/errors"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// NewKeyCmd groups the stored key commands.
func NewKeyCmd(logger hclog.Logger) *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key <command> [args]",
		Short: "Manage stored keys injected into server configs as environment variables.",
	}

	keyCmd.AddCommand(NewAddCmd(logger))
	keyCmd.AddCommand(NewRemoveCmd(logger))
	keyCmd.AddCommand(NewListCmd(logger))
	keyCmd.AddCommand(NewBindCmd(logger))
	keyCmd.AddCommand(NewUnbindCmd(logger))

	return keyCmd
}

// resolveKey looks a key up by name first, then by id.
func resolveKey(st store.Store, nameOrID string) (store.Key, error) {
	for _, k := range st.ActiveKeys() {
		if k.Name == nameOrID {
			return k, nil
		}
	}
	if k, ok := st.Keys[nameOrID]; ok && !k.Deleted() {
		return k, nil
	}

	return store.Key{}, fmt.Errorf("%w: key '%s'", internalerrors.ErrNotFound, nameOrID)
}
