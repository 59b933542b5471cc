package key

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
)

// ListCmd should be used to represent the 'key list' command.
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
		Short: "Lists the keys in the store. Values are never shown.",
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

	keys := st.ActiveKeys()
	out := cobraCmd.OutOrStdout()
	if len(keys) == 0 {
		fmt.Fprintln(out, "No keys configured.")
		return nil
	}

	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i].Name) < strings.ToLower(keys[j].Name)
	})

	fmt.Fprintf(out, "Keys (%d):\n", len(keys))
	for _, k := range keys {
		fmt.Fprintf(out, "  %s  [%s]\n", k.Name, k.ID)
	}

	return nil
}
