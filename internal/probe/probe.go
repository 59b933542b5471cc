// Package probe starts an MCP server definition as a child process and runs
// the protocol handshake against it, so a definition can be checked before it
// is materialized into a tool's config file.
package probe

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mcpswitch/mcpswitch/internal/store"
)

// DefaultTimeout bounds the Initialize handshake.
const DefaultTimeout = 30 * time.Second

// Report summarizes a successful probe.
type Report struct {
	ServerName    string
	ServerVersion string
	Tools         []string
}

// Prober launches and handshakes MCP server definitions over stdio.
type Prober struct {
	logger  hclog.Logger
	timeout time.Duration
}

// New returns a prober with the default handshake timeout.
func New(logger hclog.Logger) *Prober {
	return &Prober{
		logger:  logger.Named("probe"),
		timeout: DefaultTimeout,
	}
}

// Probe runs the server command, performs the Initialize handshake, and lists
// its tools. extraEnv entries are appended as KEY=VALUE pairs, letting the
// caller inject the same env the materialized config would carry.
func (p *Prober) Probe(ctx context.Context, cfg store.ServerConfig, extraEnv map[string]string) (Report, error) {
	if cfg.Command == "" {
		return Report{}, fmt.Errorf("server config has no command")
	}

	env := make([]string, 0, len(extraEnv)+len(cfg.Env))
	for k, v := range cfg.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	for k, v := range extraEnv {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)

	p.logger.Info("starting MCP server for probe", "command", cfg.Command, "args", cfg.Args)

	stdioClient, err := client.NewStdioMCPClient(cfg.Command, env, cfg.Args...)
	if err != nil {
		return Report{}, fmt.Errorf("error starting MCP server '%s': %w", cfg.Command, err)
	}
	defer func() {
		_ = stdioClient.Close()
	}()

	initializeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	initResult, err := stdioClient.Initialize(
		initializeCtx,
		mcp.InitializeRequest{
			Params: mcp.InitializeParams{
				ProtocolVersion: "latest",
				ClientInfo:      mcp.Implementation{Name: "mcpswitch", Version: "0.1.0"},
			},
		})
	if err != nil {
		return Report{}, fmt.Errorf("error initializing MCP client: %w", err)
	}

	report := Report{
		ServerName:    initResult.ServerInfo.Name,
		ServerVersion: initResult.ServerInfo.Version,
	}

	toolsResult, err := stdioClient.ListTools(initializeCtx, mcp.ListToolsRequest{})
	if err != nil {
		// Some servers implement no tools at all; the handshake alone proves
		// the definition launches.
		p.logger.Warn("server initialized but tool listing failed", "error", err)
		return report, nil
	}

	for _, tool := range toolsResult.Tools {
		report.Tools = append(report.Tools, tool.Name)
	}
	sort.Strings(report.Tools)

	return report, nil
}
