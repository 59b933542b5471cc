// Package persistence implements whole-document load/save for the store and
// raw text file IO for materialized config files. The store document is one
// JSON file; every save replaces it completely.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mcpswitch/mcpswitch/internal/errors"
	"github.com/mcpswitch/mcpswitch/internal/files"
	"github.com/mcpswitch/mcpswitch/internal/perms"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// StoreFileName is the default file name of the store document inside the
// user-specific config directory.
const StoreFileName = "store.json"

// Gateway is the persistence contract consumed by the core: whole-document
// store load/save plus raw file IO for materialized configs.
type Gateway interface {
	LoadStore() (store.Store, error)
	SaveStore(st store.Store) error
	ReadTextFile(path string) (string, error)
	WriteTextFile(path, content string) error
}

// FileGateway persists the store document as a single JSON file. Saves go
// through a temp file and rename, so readers in this single-process model
// never observe a partially written document.
type FileGateway struct {
	path   string
	logger hclog.Logger
}

var _ Gateway = (*FileGateway)(nil)

// NewFileGateway returns a gateway rooted at the given store document path.
// An empty path selects the XDG default location.
func NewFileGateway(logger hclog.Logger, path string) (*FileGateway, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		dir, err := files.UserSpecificConfigDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine store location: %w", err)
		}
		path = filepath.Join(dir, StoreFileName)
	}

	return &FileGateway{
		path:   path,
		logger: logger.Named("persistence"),
	}, nil
}

// Path returns the location of the store document.
func (g *FileGateway) Path() string {
	return g.path
}

// LoadStore returns the previously saved store, or a freshly constructed
// default store when no document exists yet. A document that cannot be
// decoded is treated the same way: the tool must start rather than refuse,
// so corruption falls back to the default store with a logged warning.
func (g *FileGateway) LoadStore() (store.Store, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			g.logger.Debug("no store document found, starting from defaults", "path", g.path)
			return store.New(), nil
		}

		return store.Store{}, fmt.Errorf("%w: could not read '%s': %w", errors.ErrStoreLoad, g.path, err)
	}

	var st store.Store
	if err := json.Unmarshal(data, &st); err != nil {
		g.logger.Warn("store document is corrupted, falling back to defaults", "path", g.path, "error", err)
		return store.New(), nil
	}

	return st.Normalize(), nil
}

// SaveStore persists the entire store document, replacing any prior version.
func (g *FileGateway) SaveStore(st store.Store) error {
	if err := files.EnsureAtLeastSecureDir(filepath.Dir(g.path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode store document: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(g.path), ".store-*.json")
	if err != nil {
		return fmt.Errorf("could not create temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("could not write store document: %w", err)
	}
	if err := tmp.Chmod(perms.SecureFile); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("could not set store document permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("could not close temp store file: %w", err)
	}

	if err := os.Rename(tmpName, g.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("could not replace store document '%s': %w", g.path, err)
	}

	return nil
}

// ReadTextFile reads a raw text file, for inspecting materialized configs.
func (g *FileGateway) ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read '%s': %w", path, err)
	}

	return string(data), nil
}

// WriteTextFile writes a raw text file, creating missing parent directories.
// Materialized configs are written with regular permissions since external
// tools read them.
func (g *FileGateway) WriteTextFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, perms.RegularDir); err != nil {
			return fmt.Errorf("could not create directory for '%s': %w", path, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), perms.RegularFile); err != nil {
		return fmt.Errorf("could not write '%s': %w", path, err)
	}

	return nil
}
