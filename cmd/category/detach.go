package category

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	internalerrors "github.com/mcpswitch/mcpswitch/internal/errors"
)

// DetachCmd should be used to represent the 'category detach' command.
type DetachCmd struct {
	*cmd.BaseCmd
	Server string
}

// NewDetachCmd creates a newly configured (Cobra) command.
func NewDetachCmd(logger hclog.Logger) *cobra.Command {
	c := &DetachCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "detach <category-name>",
		Short: "Detaches a server from a category.",
		Long: "Detaches a server from a category. " +
			"When the server is attached more than once, the oldest attachment is removed.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(&c.Server, "server", "", "Name of the server to detach")

	return cobraCommand
}

// run is configured (via NewDetachCmd) to be called by the Cobra framework when the command is executed.
func (c *DetachCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("category name is required and cannot be empty")
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

	cat, err := resolveCategory(st, name)
	if err != nil {
		return err
	}

	srv, ok := st.FindServerByName(strings.TrimSpace(c.Server))
	if !ok {
		return fmt.Errorf("%w: server '%s'", internalerrors.ErrNotFound, c.Server)
	}

	st, err = st.DetachServerFromCategory(cat.ID, srv.ID)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Detached server '%s' from category '%s'\n", srv.Name, cat.Name)

	return nil
}
