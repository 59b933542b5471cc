package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarStoreFile    = "MCPSWITCH_STORE_FILE"
	EnvVarSettingsFile = "MCPSWITCH_SETTINGS_FILE"
	EnvVarLogPath      = "MCPSWITCH_LOG_PATH"
	EnvVarLogLevel     = "MCPSWITCH_LOG_LEVEL"

	// Defaults
	DefaultLogPath  = ""
	DefaultLogLevel = "info"

	// Flag names
	FlagNameStoreFile    = "store-file"
	FlagNameSettingsFile = "settings-file"
	FlagNameLogPath      = "log-path"
	FlagNameLogLevel     = "log-level"
)

var (
	// StoreFile overrides the path of the store document.
	// Empty means the XDG default is used.
	StoreFile string

	// SettingsFile overrides the path of the settings file.
	// Empty means the XDG default is used.
	SettingsFile string

	LogPath  string
	LogLevel string
)

func InitFlags(fs *pflag.FlagSet) {
	initStoreFile(fs)
	initSettingsFile(fs)
	initLogger(fs)
}

func initStoreFile(fs *pflag.FlagSet) {
	if StoreFile == "" {
		StoreFile = strings.TrimSpace(os.Getenv(EnvVarStoreFile))
	}
	fs.StringVar(&StoreFile, FlagNameStoreFile, StoreFile, "path to the store document")
}

func initSettingsFile(fs *pflag.FlagSet) {
	if SettingsFile == "" {
		SettingsFile = strings.TrimSpace(os.Getenv(EnvVarSettingsFile))
	}
	fs.StringVar(&SettingsFile, FlagNameSettingsFile, SettingsFile, "path to the settings file")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogPath)); env != "" {
			LogPath = env
		} else {
			LogPath = DefaultLogPath
		}
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogLevel)); env != "" {
			LogLevel = strings.ToLower(env)
		} else {
			LogLevel = DefaultLogLevel
		}
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for mcpswitch logs")
}
