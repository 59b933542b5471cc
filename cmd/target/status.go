package target

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/proc"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// StatusCmd should be used to represent the 'target status' command.
type StatusCmd struct {
	*cmd.BaseCmd
}

// targetStatus pairs a target with its application's process state.
type targetStatus struct {
	target     store.ConfigTarget
	activeName string
	app        string
	running    bool
	hasApp     bool
	err        error
}

// NewStatusCmd creates a newly configured (Cobra) command.
func NewStatusCmd(logger hclog.Logger) *cobra.Command {
	c := &StatusCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "status",
		Short: "Shows each target's active category and whether its application is running.",
		Long: "Shows each target's active category and whether its application is running. " +
			"Process checks for all targets run concurrently.",
		RunE: c.run,
	}

	return cobraCommand
}

// run is configured (via NewStatusCmd) to be called by the Cobra framework when the command is executed.
func (c *StatusCmd) run(cobraCmd *cobra.Command, _ []string) error {
	gateway, err := c.Gateway()
	if err != nil {
		return err
	}
	st, err := gateway.LoadStore()
	if err != nil {
		return err
	}

	cfg, err := c.Settings()
	if err != nil {
		return err
	}

	targets := st.ActiveConfigTargets()
	statuses := make([]targetStatus, len(targets))

	controller := proc.NewController(c.Logger())
	group, ctx := errgroup.WithContext(cobraCmd.Context())

	for i, tgt := range targets {
		statuses[i].target = tgt
		if cat, ok := st.ActiveCategoryFor(tgt.ID); ok {
			statuses[i].activeName = cat.Name
		}

		entry, ok := cfg.App(tgt.ID)
		if !ok {
			continue
		}
		statuses[i].hasApp = true
		statuses[i].app = entry.ProcessName

		group.Go(func() error {
			status, err := controller.Find(ctx, entry.ProcessName)
			if err != nil {
				// A failed check is reported per target, not fatal for the
				// whole listing.
				statuses[i].err = err
				return nil
			}
			statuses[i].running = status.Running

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	sort.Slice(statuses, func(i, j int) bool {
		return strings.ToLower(statuses[i].target.Name) < strings.ToLower(statuses[j].target.Name)
	})

	out := cobraCmd.OutOrStdout()
	for _, s := range statuses {
		active := s.activeName
		if active == "" {
			active = "(none)"
		}

		fmt.Fprintf(out, "%s: active category %s", s.target.Name, active)
		switch {
		case s.err != nil:
			fmt.Fprintf(out, ", process check failed: %s", s.err)
		case !s.hasApp:
			fmt.Fprint(out, ", no application configured")
		case s.running:
			fmt.Fprintf(out, ", %s is running", s.app)
		default:
			fmt.Fprintf(out, ", %s is not running", s.app)
		}
		fmt.Fprintln(out)
	}

	return nil
}
