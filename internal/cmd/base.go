package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mcpswitch/mcpswitch/internal/flags"
	"github.com/mcpswitch/mcpswitch/internal/persistence"
	"github.com/mcpswitch/mcpswitch/internal/settings"
)

// BaseCmd carries the pieces every command needs: the logger and access to
// the persistence gateway and settings file selected by the global flags.
type BaseCmd struct {
	logger hclog.Logger
}

// SetLogger updates the command's logger.
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command, building a fallback
// from flags and environment when none was injected.
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, using stderr\n", logPath, err)
		} else {
			output = f
		}
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "mcpswitch-default",
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})

	return c.logger
}

// Gateway returns the persistence gateway for the store document selected by
// the --store-file flag (or its env var / XDG default).
func (c *BaseCmd) Gateway() (*persistence.FileGateway, error) {
	return persistence.NewFileGateway(c.Logger(), flags.StoreFile)
}

// Settings loads the settings file selected by the --settings-file flag (or
// its env var / XDG default).
func (c *BaseCmd) Settings() (*settings.Settings, error) {
	return settings.Load(flags.SettingsFile)
}
