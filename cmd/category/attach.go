package category

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	internalerrors "github.com/mcpswitch/mcpswitch/internal/errors"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// AttachCmd should be used to represent the 'category attach' command.
type AttachCmd struct {
	*cmd.BaseCmd
	Servers []string
	Order   int
}

// NewAttachCmd creates a newly configured (Cobra) command.
func NewAttachCmd(logger hclog.Logger) *cobra.Command {
	c := &AttachCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "attach <category-name>",
		Short: "Attaches one or more servers to a category.",
		Long: "Attaches one or more servers to a category. " +
			"Each attachment is saved independently, so one failure does not roll back the others. " +
			"Attaching the same server twice is permitted.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringArrayVar(
		&c.Servers,
		"server",
		nil,
		"Name of a server to attach (repeatable)",
	)
	cobraCommand.Flags().IntVar(
		&c.Order,
		"order",
		-1,
		"Position of the first attached server (defaults to the end of the category)",
	)

	return cobraCommand
}

// run is configured (via NewAttachCmd) to be called by the Cobra framework when the command is executed.
func (c *AttachCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("category name is required and cannot be empty")
	}
	if len(c.Servers) == 0 {
		return fmt.Errorf("at least one --server is required")
	}
	name := strings.TrimSpace(args[0])

	gateway, err := c.Gateway()
	if err != nil {
		return err
	}

	out := cobraCmd.OutOrStdout()

	var failed int
	for i, serverName := range c.Servers {
		// Each attachment is its own load-mutate-save round trip so a failure
		// in the middle of the batch leaves the earlier ones committed.
		st, err := gateway.LoadStore()
		if err != nil {
			return err
		}

		cat, err := resolveCategory(st, name)
		if err != nil {
			return err
		}

		srv, ok := st.FindServerByName(serverName)
		if !ok {
			fmt.Fprintf(out, "✗ Server '%s' not found, skipping\n", serverName)
			failed++
			continue
		}

		order := c.Order
		if order < 0 {
			order = nextOrder(st, cat.ID)
		} else {
			order += i
		}

		for _, attached := range st.CategoryServers(cat.ID) {
			if attached.Name == srv.Name {
				fmt.Fprintf(out,
					"⚠ Category '%s' already contains a server named '%s'; the materialized config keeps only the last one\n",
					cat.Name, srv.Name)
				break
			}
		}

		st, _, err = st.AttachServerToCategory(cat.ID, srv.ID, order)
		if err != nil {
			fmt.Fprintf(out, "✗ Could not attach '%s': %s\n", serverName, err)
			failed++
			continue
		}

		if err := gateway.SaveStore(st); err != nil {
			return err
		}

		fmt.Fprintf(out, "✓ Attached server '%s' to category '%s' (order: %d)\n", srv.Name, cat.Name, order)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d attachments failed", internalerrors.ErrNotFound, failed, len(c.Servers))
	}

	return nil
}

// nextOrder returns one past the highest order among the category's active
// relations, so a default attachment lands at the end.
func nextOrder(st store.Store, categoryID string) int {
	next := 0
	for _, rel := range st.CategoryServerRelations {
		if rel.Deleted() || rel.CategoryID != categoryID {
			continue
		}
		if rel.Order >= next {
			next = rel.Order + 1
		}
	}

	return next
}
