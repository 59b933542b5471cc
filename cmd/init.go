package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
)

// InitCmd creates the initial store document and settings file.
type InitCmd struct {
	*cmd.BaseCmd
}

// NewInitCmd creates a newly configured (Cobra) command.
func NewInitCmd(logger hclog.Logger) *cobra.Command {
	c := &InitCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	return &cobra.Command{
		Use:   "init",
		Short: "Creates the store document with the built-in config targets.",
		RunE:  c.run,
	}
}

func (c *InitCmd) run(cobraCmd *cobra.Command, _ []string) error {
	gateway, err := c.Gateway()
	if err != nil {
		return err
	}

	if _, err := os.Stat(gateway.Path()); err == nil {
		return fmt.Errorf("%s already exists", gateway.Path())
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", gateway.Path(), err)
	}

	// LoadStore on a missing document yields the seeded default store.
	st, err := gateway.LoadStore()
	if err != nil {
		return err
	}
	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	cfg, err := c.Settings()
	if err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Initialized store at %s\n", gateway.Path())

	return nil
}
