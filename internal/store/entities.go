// Package store implements the relational data model for MCP server
// collections: servers, categories, config targets, the relations between
// them, and the single aggregate document that holds all of them.
//
// Every mutation takes a Store value and returns a new Store value. The caller
// owns the "current" store and is responsible for persisting accepted
// mutations; nothing in this package touches disk.
package store

import "time"

// TargetAll is the sentinel category target meaning "every config target".
const TargetAll = "all"

// Fixed ids of the built-in config targets seeded into every new store.
const (
	BuiltInTargetClaude = "claude"
	BuiltInTargetCursor = "cursor"
)

// SchemaVersion is recorded in Metadata.Version when a new store is created.
const SchemaVersion = "1.0.0"

// Envelope carries the fields shared by every entity kind.
// Version strictly increases by 1 on every mutation of the entity and is
// never reset. DelYn marks logical deletion: entities are never physically
// removed, so historical relations stay addressable by id.
type Envelope struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	DelYn     bool      `json:"delYn"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Deleted reports whether the entity has been soft-deleted.
func (e Envelope) Deleted() bool {
	return e.DelYn
}

// stamp initializes the envelope for a freshly created entity.
func (e *Envelope) stamp(id string, now time.Time) {
	e.ID = id
	e.Version = 1
	e.DelYn = false
	e.CreatedAt = now
	e.UpdatedAt = now
}

// bump records one accepted mutation.
func (e *Envelope) bump(now time.Time) {
	e.Version++
	e.UpdatedAt = now
}

// Server is one MCP server definition. Value holds the configuration blob
// (command, args, optional env and description) as an opaque JSON string,
// parsed on demand; a malformed blob is tolerated here and degraded at
// materialization time.
type Server struct {
	Envelope
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Category is a named, ordered collection of servers, optionally scoped to a
// single config target or to TargetAll.
//
// IsActive is advisory only. The authoritative active state lives in
// Store.ActiveCategories.
type Category struct {
	Envelope
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Target      string `json:"target"`
	IsActive    bool   `json:"isActive"`
}

// ConfigTarget represents one external tool's config file. Built-in targets
// are immutable and undeletable.
//
// ConfigPath may contain %VAR% environment placeholders that are expanded at
// materialization time, not when the path is saved.
type ConfigTarget struct {
	Envelope
	Name       string `json:"name"`
	ConfigPath string `json:"configPath"`
	IsBuiltIn  bool   `json:"isBuiltIn"`
}

// CategoryServerRelation links one category to one server. Order defines both
// presentation and merge order during materialization; a disabled relation
// exists but contributes nothing to the materialized config.
type CategoryServerRelation struct {
	Envelope
	CategoryID string `json:"categoryId"`
	ServerID   string `json:"serverId"`
	Order      int    `json:"order"`
	IsEnabled  bool   `json:"isEnabled"`
}

// ServerKeyRelation links a server to a stored key. KeyName is the
// environment-variable name under which the key's value is injected into the
// server's materialized config. A server may carry several relations.
type ServerKeyRelation struct {
	Envelope
	ServerID string `json:"serverId"`
	KeyID    string `json:"keyId"`
	KeyName  string `json:"keyName"`
}

// Key is a stored credential value referenced by ServerKeyRelations.
type Key struct {
	Envelope
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Metadata describes the store document itself.
type Metadata struct {
	Version     string    `json:"version"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Store is the aggregate root and the unit of persistence: every mutation
// reads the whole store, computes a new whole store, and the caller writes it
// back as one document.
//
// ActiveCategories maps a target id to the currently active category id; an
// empty value (or a JSON null in a persisted document) means no active
// category. The referenced category may be missing or soft-deleted, consumers
// treat that as "no active category".
type Store struct {
	Servers                 map[string]Server                 `json:"servers"`
	Categories              map[string]Category               `json:"categories"`
	ConfigTargets           map[string]ConfigTarget           `json:"configTargets"`
	CategoryServerRelations map[string]CategoryServerRelation `json:"categoryServerRelations"`
	ServerKeyRelations      map[string]ServerKeyRelation      `json:"serverKeyRelations"`
	Keys                    map[string]Key                    `json:"keys"`
	ActiveCategories        map[string]string                 `json:"activeCategories"`
	SelectedTarget          string                            `json:"selectedTarget,omitempty"`
	ConfigPaths             map[string]string                 `json:"configPaths"`
	Metadata                Metadata                          `json:"metadata"`
}

// New returns a default empty store pre-seeded with the two built-in config
// targets. The placeholder paths use Windows-style %APPDATA% tokens; they are
// expanded against the environment when a config file is written.
func New() Store {
	now := time.Now()

	claude := ConfigTarget{
		Name:       "claude",
		ConfigPath: `%APPDATA%\Claude\claude_desktop_config.json`,
		IsBuiltIn:  true,
	}
	claude.stamp(BuiltInTargetClaude, now)

	cursor := ConfigTarget{
		Name:       "cursor",
		ConfigPath: `%APPDATA%\Cursor\config.json`,
		IsBuiltIn:  true,
	}
	cursor.stamp(BuiltInTargetCursor, now)

	return Store{
		Servers:                 map[string]Server{},
		Categories:              map[string]Category{},
		ConfigTargets:           map[string]ConfigTarget{claude.ID: claude, cursor.ID: cursor},
		CategoryServerRelations: map[string]CategoryServerRelation{},
		ServerKeyRelations:      map[string]ServerKeyRelation{},
		Keys:                    map[string]Key{},
		ActiveCategories:        map[string]string{},
		ConfigPaths:             map[string]string{},
		Metadata: Metadata{
			Version:     SchemaVersion,
			LastUpdated: now,
		},
	}
}

// clone returns a deep copy of the store so mutations never alias the maps of
// the store they were derived from.
func (s Store) clone() Store {
	out := s
	out.Servers = cloneMap(s.Servers)
	out.Categories = cloneMap(s.Categories)
	out.ConfigTargets = cloneMap(s.ConfigTargets)
	out.CategoryServerRelations = cloneMap(s.CategoryServerRelations)
	out.ServerKeyRelations = cloneMap(s.ServerKeyRelations)
	out.Keys = cloneMap(s.Keys)
	out.ActiveCategories = cloneMap(s.ActiveCategories)
	out.ConfigPaths = cloneMap(s.ConfigPaths)

	return out
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

// normalize repairs a store decoded from an older or hand-edited document so
// that no map is nil. Persisted documents written by the original tool may
// omit empty sections entirely.
func (s Store) normalize() Store {
	if s.Servers == nil {
		s.Servers = map[string]Server{}
	}
	if s.Categories == nil {
		s.Categories = map[string]Category{}
	}
	if s.ConfigTargets == nil {
		s.ConfigTargets = map[string]ConfigTarget{}
	}
	if s.CategoryServerRelations == nil {
		s.CategoryServerRelations = map[string]CategoryServerRelation{}
	}
	if s.ServerKeyRelations == nil {
		s.ServerKeyRelations = map[string]ServerKeyRelation{}
	}
	if s.Keys == nil {
		s.Keys = map[string]Key{}
	}
	if s.ActiveCategories == nil {
		s.ActiveCategories = map[string]string{}
	}
	if s.ConfigPaths == nil {
		s.ConfigPaths = map[string]string{}
	}
	if s.Metadata.Version == "" {
		s.Metadata.Version = SchemaVersion
	}

	return s
}

// Normalize is the exported form of normalize, used by the persistence layer
// after decoding a store document.
func (s Store) Normalize() Store {
	return s.normalize()
}
