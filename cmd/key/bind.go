package key

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/internal/cmd"
	internalerrors "github.com/mcpswitch/mcpswitch/internal/errors"
)

// BindCmd should be used to represent the 'key bind' command.
type BindCmd struct {
	*cmd.BaseCmd
	Server  string
	EnvName string
}

// NewBindCmd creates a newly configured (Cobra) command.
func NewBindCmd(logger hclog.Logger) *cobra.Command {
	c := &BindCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	cobraCommand := &cobra.Command{
		Use:   "bind <key-name>",
		Short: "Binds a key to a server as an environment variable.",
		Long: "Binds a key to a server. The key's value is injected into the server's " +
			"materialized config under the given environment variable name. When a server " +
			"has any bound keys, they replace the env carried in its config blob.",
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(&c.Server, "server", "", "Name of the server to bind the key to")
	cobraCommand.Flags().StringVar(
		&c.EnvName,
		"env-name",
		"",
		"Environment variable name for the injected value (defaults to the key name)",
	)

	return cobraCommand
}

// run is configured (via NewBindCmd) to be called by the Cobra framework when the command is executed.
func (c *BindCmd) run(cobraCmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("key name is required and cannot be empty")
	}
	if strings.TrimSpace(c.Server) == "" {
		return fmt.Errorf("--server is required")
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

	k, err := resolveKey(st, name)
	if err != nil {
		return err
	}

	srv, ok := st.FindServerByName(strings.TrimSpace(c.Server))
	if !ok {
		return fmt.Errorf("%w: server '%s'", internalerrors.ErrNotFound, c.Server)
	}

	envName := strings.TrimSpace(c.EnvName)
	if envName == "" {
		envName = k.Name
	}

	st, _, err = st.AttachKeyToServer(srv.ID, k.ID, envName)
	if err != nil {
		return err
	}

	if err := gateway.SaveStore(st); err != nil {
		return err
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Bound key '%s' to server '%s' as %s\n", k.Name, srv.Name, envName)

	return nil
}
