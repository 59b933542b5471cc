package category

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	internalerrors "github.com/mcpswitch/mcpswitch/internal/errors"
	"github.com/mcpswitch/mcpswitch/internal/materialize"
	"github.com/mcpswitch/mcpswitch/internal/proc"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// ActivateCmd should be used to represent the 'category activate' command.
type ActivateCmd struct {
	*cmd.BaseCmd
	Target    string
	NoRestart bool
}

// NewActivateCmd creates a newly configured (Cobra) command.
func NewActivateCmd(logger hclog.Logger) *cobra.Command {
	c := &ActivateCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "activate <category-name>",
		Short: "Materializes a category's config file for a target and records the activation.",
		Long:  c.longDescription(),
		RunE:  c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Target,
		"target",
		"",
		"Config target to activate for (defaults to the selected target)",
	)
	cobraCommand.Flags().BoolVar(
		&c.NoRestart,
		"no-restart",
		false,
		"Skip restarting the target's application even when one is configured",
	)

	return cobraCommand
}

// longDescription returns the long version of the command description.
func (c *ActivateCmd) longDescription() string {
	return `Materializes a category's config file for a target and records the activation.

The config file is written first; the activation is recorded in the store only
after the write succeeds, so a write failure leaves the previous activation in
place. When an application is configured for the target in the settings file,
it is restarted afterwards; a failed restart does not undo the activation.`
}

// run is configured (via NewActivateCmd) to be called by the Cobra framework when the command is executed.
func (c *ActivateCmd) run(cobraCmd *cobra.Command, args []string) error {
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

	targetName := strings.TrimSpace(c.Target)
	if targetName == "" {
		targetName = st.SelectedTarget
	}
	if targetName == "" {
		return fmt.Errorf("no target given and no target selected, use --target or 'target select'")
	}

	tgt, ok := st.FindConfigTargetByName(targetName)
	if !ok {
		return fmt.Errorf("%w: config target '%s'", internalerrors.ErrNotFound, targetName)
	}

	out := cobraCmd.OutOrStdout()

	if cat.Target != store.TargetAll && cat.Target != tgt.ID {
		fmt.Fprintf(out, "⚠ Category '%s' is scoped to target '%s', activating it for '%s' anyway\n",
			cat.Name, cat.Target, tgt.Name)
	}

	result, err := materialize.New(c.Logger(), gateway).Materialize(st, cat.ID, tgt.ID)
	if err != nil {
		return err
	}

	for _, degraded := range result.Degraded {
		fmt.Fprintf(out, "⚠ Server '%s' has a malformed config value and was written as a placeholder\n", degraded)
	}

	// The file is on disk; only now does the store learn about the switch.
	st = st.SetActiveCategory(tgt.ID, cat.ID)
	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Activated category '%s' for target '%s'\n", cat.Name, tgt.Name)
	fmt.Fprintf(out, "  Wrote %s\n", result.Path)

	if !c.NoRestart {
		c.restartApp(cobraCmd, tgt.ID, tgt.Name)
	}

	return nil
}

// restartApp relaunches the target's desktop application when one is
// configured. Failures are reported but never returned: the activation is
// already committed.
func (c *ActivateCmd) restartApp(cobraCmd *cobra.Command, targetID, targetName string) {
	out := cobraCmd.OutOrStdout()

	cfg, err := c.Settings()
	if err != nil {
		fmt.Fprintf(out, "⚠ Could not load settings, skipping restart: %s\n", err)
		return
	}
	if !cfg.RestartOnActivate {
		return
	}

	entry, ok := cfg.App(targetID)
	if !ok {
		return
	}

	pid, err := proc.NewController(c.Logger()).Restart(cobraCmd.Context(), entry.ProcessName, entry.Path, entry.Args)
	if err != nil {
		fmt.Fprintf(out, "⚠ Could not restart application for target '%s': %s\n", targetName, err)
		return
	}

	fmt.Fprintf(out, "✓ Restarted %s (pid: %d)\n", entry.ProcessName, pid)
}
