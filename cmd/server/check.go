package server

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	internalerrors "github.com/mcpswitch/mcpswitch/internal/errors"
	"github.com/mcpswitch/mcpswitch/internal/probe"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// CheckCmd should be used to represent the 'server check' command.
type CheckCmd struct {
	*cmd.BaseCmd
}

// NewCheckCmd creates a newly configured (Cobra) command.
func NewCheckCmd(logger hclog.Logger) *cobra.Command {
	c := &CheckCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "check <server-name>",
		Short: "Launches a stored server definition and runs the MCP handshake against it.",
		Long: "Launches a stored server definition and runs the MCP handshake against it, " +
			"using the same command, args and env a materialized config would carry.",
		RunE: c.run,
	}

	return cobraCommand
}

// run is configured (via NewCheckCmd) to be called by the Cobra framework when the command is executed.
func (c *CheckCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("server name is required and cannot be empty")
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

	srv, ok := st.FindServerByName(name)
	if !ok {
		return fmt.Errorf("%w: server '%s'", internalerrors.ErrNotFound, name)
	}

	value := store.ParseServerValue(srv.Value)
	if !value.Parsed() {
		return fmt.Errorf("%w: server '%s' has a malformed config value", internalerrors.ErrValidation, name)
	}

	report, err := probe.New(c.Logger()).Probe(cobraCmd.Context(), value.Config, st.ServerEnv(srv.ID))
	if err != nil {
		return fmt.Errorf("server '%s' failed the handshake: %w", name, err)
	}

	out := cobraCmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Server '%s' responded as %s %s\n", name, report.ServerName, report.ServerVersion)
	if len(report.Tools) > 0 {
		fmt.Fprintf(out, "  Tools (%d):\n", len(report.Tools))
		for _, tool := range report.Tools {
			fmt.Fprintf(out, "    %s\n", tool)
		}
	}

	return nil
}
