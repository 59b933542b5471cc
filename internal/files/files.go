package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcpswitch/mcpswitch/internal/perms"
)

// EnvVarXDGConfigHome is the XDG Base Directory env var name for config files.
const EnvVarXDGConfigHome = "XDG_CONFIG_HOME"

// AppDirName returns the name of the application directory for use in
// user-specific operations where data is being written.
func AppDirName() string {
	return "mcpswitch"
}

// UserSpecificConfigDir returns the directory that should be used to store any
// user-specific configuration, including the store document and settings file.
// It adheres to the XDG Base Directory Specification, respecting the
// XDG_CONFIG_HOME environment variable.
// When XDG_CONFIG_HOME is not set, it defaults to ~/.config/mcpswitch
// See: https://specifications.freedesktop.org/basedir-spec/latest/
func UserSpecificConfigDir() (string, error) {
	// If the relevant environment variable is present and configured, then use it.
	if ch, ok := os.LookupEnv(EnvVarXDGConfigHome); ok && strings.TrimSpace(ch) != "" {
		home := strings.TrimSpace(ch)
		if filepath.IsAbs(home) {
			return filepath.Join(home, AppDirName()), nil
		}

		return "", fmt.Errorf("environment variable '%s' must be an absolute path, got: %s", EnvVarXDGConfigHome, home)
	}

	// Attempt to locate the home directory for the current user and return the path that follows the spec.
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", AppDirName()), nil
}

// EnsureAtLeastSecureDir creates a directory with secure permissions if it
// doesn't exist, and verifies that it has at least the required secure
// permissions if it already exists.
// It does not attempt to repair ownership or permissions: if they are wrong,
// it returns an error.
func EnsureAtLeastSecureDir(path string) error {
	return ensureAtLeastDir(path, perms.SecureDir)
}

// EnsureAtLeastRegularDir creates a directory with standard permissions if it
// doesn't exist, and verifies that it has at least the required regular
// permissions if it already exists. Used for export destinations.
func EnsureAtLeastRegularDir(path string) error {
	return ensureAtLeastDir(path, perms.RegularDir)
}

// ensureAtLeastDir creates a directory with the specified permissions if it
// doesn't exist, and verifies that it has at least the required permissions if
// it already exists. Rejects symlinked directories for security.
//
// NOTE: Only the final directory is secured. Antecedent directories may have
// default permissions (typically 0755), which is sufficient here: the goal is
// to protect the contents of the final directory, not the entire hierarchy.
func ensureAtLeastDir(path string, perm os.FileMode) error {
	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("could not ensure directory exists for '%s': %w", path, err)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("could not stat directory '%s': %w", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("path '%s' is a symlink, not a directory", path)
	}

	if !info.IsDir() {
		return fmt.Errorf("path '%s' is not a directory", path)
	}

	if !isPermissionAcceptable(info.Mode().Perm(), perm) {
		return fmt.Errorf(
			"incorrect permissions for directory '%s' (%#o, want %#o or more restrictive)",
			path, info.Mode().Perm(),
			perm,
		)
	}

	return nil
}

// isPermissionAcceptable checks if the actual permissions are acceptable for
// the required permissions: equal to, or more restrictive than, required.
func isPermissionAcceptable(actual, required os.FileMode) bool {
	return (actual & ^required) == 0
}
