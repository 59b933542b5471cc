package target

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/printer"
)

// ListCmd should be used to represent the 'target list' command.
type ListCmd struct {
	*cmd.BaseCmd
}

// NewListCmd creates a newly configured (Cobra) command.
func NewListCmd(logger hclog.Logger) *cobra.Command {
	c := &ListCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "list",
		Short: "Lists the config targets in the store.",
		RunE:  c.run,
	}

	return cobraCommand
}

// run is configured (via NewListCmd) to be called by the Cobra framework when the command is executed.
func (c *ListCmd) run(cobraCmd *cobra.Command, _ []string) error {
	gateway, err := c.Gateway()
	if err != nil {
		return err
	}
	st, err := gateway.LoadStore()
	if err != nil {
		return err
	}

	printer.ConfigTargets(cobraCmd.OutOrStdout(), st, st.ActiveConfigTargets())

	return nil
}
