package target

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/proc"
)

// RestartCmd should be used to represent the 'target restart' command.
type RestartCmd struct {
	*cmd.BaseCmd
}

// NewRestartCmd creates a newly configured (Cobra) command.
func NewRestartCmd(logger hclog.Logger) *cobra.Command {
	c := &RestartCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "restart <target-name>",
		Short: "Restarts the desktop application configured for a target.",
		Long: "Restarts the desktop application configured for a target: kills the running " +
			"process, waits briefly for teardown, then relaunches it. Requires an application " +
			"entry configured via 'target app'.",
		RunE: c.run,
	}

	return cobraCommand
}

// run is configured (via NewRestartCmd) to be called by the Cobra framework when the command is executed.
func (c *RestartCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("target name is required and cannot be empty")
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

	tgt, err := resolveTarget(st, name)
	if err != nil {
		return err
	}

	cfg, err := c.Settings()
	if err != nil {
		return err
	}

	entry, ok := cfg.App(tgt.ID)
	if !ok {
		return fmt.Errorf("no application configured for target '%s', use 'target app' first", tgt.Name)
	}

	pid, err := proc.NewController(c.Logger()).Restart(cobraCmd.Context(), entry.ProcessName, entry.Path, entry.Args)
	if err != nil {
		return fmt.Errorf("could not restart application for target '%s': %w", tgt.Name, err)
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Restarted %s (pid: %d)\n", entry.ProcessName, pid)

	return nil
}
