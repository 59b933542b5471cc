package target

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
)

// SelectCmd should be used to represent the 'target select' command.
type SelectCmd struct {
	*cmd.BaseCmd
	Clear bool
}

// NewSelectCmd creates a newly configured (Cobra) command.
func NewSelectCmd(logger hclog.Logger) *cobra.Command {
	c := &SelectCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "select <target-name>",
		Short: "Selects the default config target for activations and listings.",
		RunE:  c.run,
	}

	cobraCommand.Flags().BoolVar(&c.Clear, "clear", false, "Clear the selection instead")

	return cobraCommand
}

// run is configured (via NewSelectCmd) to be called by the Cobra framework when the command is executed.
func (c *SelectCmd) run(cobraCmd *cobra.Command, args []string) error {
	gateway, err := c.Gateway()
	if err != nil {
		return err
	}
	st, err := gateway.LoadStore()
	if err != nil {
		return err
	}

	if c.Clear {
		st = st.SetSelectedTarget("")
		if err := gateway.SaveStore(st); err != nil {
			return err
		}
		fmt.Fprintln(cobraCmd.OutOrStdout(), "✓ Cleared the selected target")
		return nil
	}

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("target name is required and cannot be empty")
	}

	tgt, err := resolveTarget(st, strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}

	st = st.SetSelectedTarget(tgt.ID)
	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Selected target '%s'\n", tgt.Name)

	return nil
}
