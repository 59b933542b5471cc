package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mcpswitch/mcpswitch/cmd/category"
	"github.com/mcpswitch/mcpswitch/cmd/key"
	"github.com/mcpswitch/mcpswitch/cmd/server"
	"github.com/mcpswitch/mcpswitch/cmd/target"
	"github.com/mcpswitch/mcpswitch/internal/cmd"
	"github.com/mcpswitch/mcpswitch/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

type RootCmd struct {
	*cmd.BaseCmd
}

func Execute() error {
	// A .env next to the working directory participates in config path
	// expansion and key injection. Missing files are fine.
	_ = godotenv.Load()

	logger, err := configureLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error configuring logger: %s\n", err)
		os.Exit(1)
	}

	rootCmd := NewRootCmd(logger)

	return rootCmd.Execute()
}

func NewRootCmd(logger hclog.Logger) *cobra.Command {
	c := &RootCmd{
		BaseCmd: &cmd.BaseCmd{},
	}
	c.SetLogger(logger)

	rootCmd := &cobra.Command{
		Use:          "mcpswitch <command> [args]",
		Short:        "'mcpswitch' maintains named collections of MCP servers and switches which one is active per tool.",
		Long:         c.longDescription(),
		SilenceUsage: true,
		Version:      version,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(NewInitCmd(logger))

	// Resource groups remain grouped commands in the CLI's usage.
	rootCmd.AddCommand(server.NewServerCmd(logger))
	rootCmd.AddCommand(category.NewCategoryCmd(logger))
	rootCmd.AddCommand(key.NewKeyCmd(logger))
	rootCmd.AddCommand(target.NewTargetCmd(logger))

	return rootCmd
}

func (c *RootCmd) longDescription() string {
	return `mcpswitch maintains named collections ("categories") of MCP server definitions
and switches which collection is active for external tools such as Claude
Desktop or Cursor by writing each tool's JSON config file.`
}

func configureLogger() (hclog.Logger, error) {
	logPath := strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))

	// If MCPSWITCH_LOG_PATH is not set, don't log anywhere.
	logOutput := io.Discard

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		logOutput = f
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "mcpswitch",
		Level:  hclog.LevelFromString(getLogLevel()),
		Output: logOutput,
	})

	return logger, nil
}

func getLogLevel() string {
	lvl := strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
	if lvl == "" {
		lvl = flags.DefaultLogLevel
	}

	return lvl
}
