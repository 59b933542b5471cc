package category

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/materialize"
	"github.com/mcpswitch/mcpswitch/internal/perms"
	"github.com/mcpswitch/mcpswitch/internal/persistence"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// ExportCmd should be used to represent the 'category export' command.
type ExportCmd struct {
	*cmd.BaseCmd
	Format   string
	Output   string
	Rendered bool
}

// NewExportCmd creates a newly configured (Cobra) command.
func NewExportCmd(logger hclog.Logger) *cobra.Command {
	c := &ExportCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "export <category-name>",
		Short: "Exports a category and its servers as a portable bundle.",
		Long: "Exports a category and its servers as a portable bundle. " +
			"Ids are not exported; importing the bundle assigns fresh ones. " +
			"With --rendered, the materialized mcpServers document is printed instead of the bundle.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(&c.Format, "format", "json", "Bundle format: json or yaml")
	cobraCommand.Flags().StringVar(&c.Output, "output", "", "File to write to (defaults to stdout)")
	cobraCommand.Flags().BoolVar(
		&c.Rendered,
		"rendered",
		false,
		"Emit the materialized mcpServers document instead of a bundle",
	)

	return cobraCommand
}

// run is configured (via NewExportCmd) to be called by the Cobra framework when the command is executed.
func (c *ExportCmd) run(cobraCmd *cobra.Command, args []string) error {
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

	var data []byte
	if c.Rendered {
		data, err = c.renderDocument(cobraCmd, gateway, st, cat.ID)
	} else {
		data, err = c.encodeBundle(st, cat.ID)
	}
	if err != nil {
		return err
	}

	if output := strings.TrimSpace(c.Output); output != "" {
		if err := os.WriteFile(output, data, perms.RegularFile); err != nil {
			return fmt.Errorf("could not write export file '%s': %w", output, err)
		}
		fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Exported category '%s' to %s\n", cat.Name, output)
		return nil
	}

	fmt.Fprint(cobraCmd.OutOrStdout(), string(data))

	return nil
}

func (c *ExportCmd) encodeBundle(st store.Store, categoryID string) ([]byte, error) {
	bundle, err := st.ExportBundle(categoryID)
	if err != nil {
		return nil, err
	}

	return store.EncodeBundle(bundle, c.Format)
}

func (c *ExportCmd) renderDocument(
	cobraCmd *cobra.Command,
	gateway persistence.Gateway,
	st store.Store,
	categoryID string,
) ([]byte, error) {
	doc, degraded, err := materialize.New(c.Logger(), gateway).Render(st, categoryID)
	if err != nil {
		return nil, err
	}

	for _, name := range degraded {
		fmt.Fprintf(cobraCmd.ErrOrStderr(),
			"⚠ Server '%s' has a malformed config value and was rendered as a placeholder\n", name)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}
