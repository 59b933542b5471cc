package key

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	internalerrors "github.com/mcpswitch/mcpswitch/internal/errors"
)

// UnbindCmd should be used to represent the 'key unbind' command.
type UnbindCmd struct {
	*cmd.BaseCmd
	Server string
}

// NewUnbindCmd creates a newly configured (Cobra) command.
func NewUnbindCmd(logger hclog.Logger) *cobra.Command {
	c := &UnbindCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "unbind <key-name>",
		Short: "Unbinds a key from a server.",
		RunE:  c.run,
	}

	cobraCommand.Flags().StringVar(&c.Server, "server", "", "Name of the server to unbind the key from")

	return cobraCommand
}

// run is configured (via NewUnbindCmd) to be called by the Cobra framework when the command is executed.
func (c *UnbindCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("key name is required and cannot be empty")
	}
	if strings.TrimSpace(c.Server) == "" {
		return fmt.Errorf("--server is required")
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

	srv, ok := st.FindServerByName(strings.TrimSpace(c.Server))
	if !ok {
		return fmt.Errorf("%w: server '%s'", internalerrors.ErrNotFound, c.Server)
	}

	st, err = st.DetachKeyFromServer(srv.ID, k.ID)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Unbound key '%s' from server '%s'\n", k.Name, srv.Name)

	return nil
}
