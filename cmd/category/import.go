package category

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// ImportCmd should be used to represent the 'category import' command.
type ImportCmd struct {
	*cmd.BaseCmd
	Name string
}

// NewImportCmd creates a newly configured (Cobra) command.
func NewImportCmd(logger hclog.Logger) *cobra.Command {
	c := &ImportCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "import <bundle-file>",
		Short: "Imports a category bundle, creating fresh servers and relations.",
		Long: "Imports a category bundle (JSON or YAML), creating a new category with fresh ids. " +
			"Server values that do not match the expected config shape are imported anyway and reported.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(&c.Name, "name", "", "Override the category name from the bundle")

	return cobraCommand
}

// run is configured (via NewImportCmd) to be called by the Cobra framework when the command is executed.
func (c *ImportCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("bundle file is required")
	}
	path := strings.TrimSpace(args[0])

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read bundle file '%s': %w", path, err)
	}

	bundle, err := store.DecodeBundle(data)
	if err != nil {
		return err
	}
	if name := strings.TrimSpace(c.Name); name != "" {
		bundle.Category.Name = name
	}

	out := cobraCmd.OutOrStdout()
	for _, bs := range bundle.Servers {
		if err := store.ValidateServerValue(bs.Value); err != nil {
			fmt.Fprintf(out, "⚠ Server '%s' in the bundle has an unexpected config shape: %s\n", bs.Name, err)
		}
	}

	gateway, err := c.Gateway()
	if err != nil {
		return err
	}
	st, err := gateway.LoadStore()
	if err != nil {
		return err
	}

	st, cat, err := st.ImportBundle(bundle)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Imported category '%s' with %d servers (id: %s)\n", cat.Name, len(bundle.Servers), cat.ID)

	return nil
}
