// Package settings stores the small amount of app-level configuration that
// does not belong in the store document: per-target desktop application paths
// used for restarts, and the restart-on-activate switch.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mcpswitch/mcpswitch/internal/files"
	"github.com/mcpswitch/mcpswitch/internal/perms"
)

// FileName is the default settings file name inside the user-specific config
// directory.
const FileName = "settings.toml"

// AppEntry describes how to restart one target's desktop application.
type AppEntry struct {
	// ProcessName is the executable name used for find/kill (e.g. claude.exe).
	ProcessName string `toml:"process_name"`
	// Path is the executable to launch.
	Path string `toml:"path"`
	// Args are passed on launch.
	Args []string `toml:"args,omitempty"`
}

// Settings is the on-disk document.
type Settings struct {
	// RestartOnActivate relaunches a target's application after a successful
	// category activation when an app entry is configured for it.
	RestartOnActivate bool `toml:"restart_on_activate"`

	// Apps maps target ids to their application entries.
	Apps map[string]AppEntry `toml:"apps"`

	filePath string `toml:"-"`
}

// DefaultPath returns the XDG default settings location.
func DefaultPath() (string, error) {
	dir, err := files.UserSpecificConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, FileName), nil
}

// New returns freshly initialized settings bound to the given path.
func New(path string) *Settings {
	return &Settings{
		RestartOnActivate: true,
		Apps:              map[string]AppEntry{},
		filePath:          strings.TrimSpace(path),
	}
}

// Load reads the settings file at path; a missing file yields fresh defaults
// bound to that path so the first save creates it. An empty path selects the
// XDG default location.
func Load(path string) (*Settings, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	s := New(path)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}

		return nil, fmt.Errorf("could not stat settings file '%s': %w", path, err)
	}

	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, fmt.Errorf("settings file '%s' could not be parsed: %w", path, err)
	}
	if s.Apps == nil {
		s.Apps = map[string]AppEntry{}
	}

	return s, nil
}

// App returns the app entry for a target.
func (s *Settings) App(target string) (AppEntry, bool) {
	entry, ok := s.Apps[target]
	return entry, ok
}

// SetApp records the app entry for a target and saves. An entry with an empty
// path removes the mapping.
func (s *Settings) SetApp(target string, entry AppEntry) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("target cannot be empty")
	}

	if strings.TrimSpace(entry.Path) == "" {
		delete(s.Apps, target)
	} else {
		s.Apps[target] = entry
	}

	return s.Save()
}

// Save writes the settings to disk as a TOML file, creating parent
// directories and setting secure file permissions.
func (s *Settings) Save() (err error) {
	path := s.filePath
	if path == "" {
		return fmt.Errorf("settings file path not present")
	}

	if err := files.EnsureAtLeastSecureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perms.SecureFile)
	if err != nil {
		return fmt.Errorf("could not create file '%s': %w", path, err)
	}

	defer func(f *os.File) {
		closeErr := f.Close()
		if closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}(f)

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("could not encode settings to file '%s': %w", path, err)
	}

	return nil
}
