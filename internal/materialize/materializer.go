// Package materialize assembles and writes the external JSON config file for
// a category and target: relational store data in, denormalized mcpServers
// document out. The pipeline runs Validating, Assembling, Writing in order
// and never mutates the store; recording the activation is the caller's
// separate mutation.
package materialize

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/mcpswitch/mcpswitch/internal/errors"
	"github.com/mcpswitch/mcpswitch/internal/persistence"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// Entry is one server's slot in the materialized document. Env is present
// only when non-empty.
type Entry struct {
	Command     string            `json:"command"`
	Args        []string          `json:"args"`
	Env         map[string]string `json:"env,omitempty"`
	Description string            `json:"description,omitempty"`
}

// Document is the external config file shape read by the target tool.
type Document struct {
	MCPServers map[string]Entry `json:"mcpServers"`
}

// Result reports a completed materialization.
type Result struct {
	// Path is the fully expanded destination the document was written to.
	Path string
	// Document is the exact serialized content written.
	Document []byte
	// Degraded lists servers whose value blob failed to parse and were
	// written as placeholder entries.
	Degraded []string
}

// degradedEntry replaces a server whose value blob cannot be parsed. One
// malformed server must not block materialization of the rest.
func degradedEntry() Entry {
	return Entry{
		Command: "echo",
		Args:    []string{"Server configuration error"},
	}
}

// Materializer builds and writes external config documents through a
// persistence gateway.
type Materializer struct {
	gateway persistence.Gateway
	logger  hclog.Logger
}

// New returns a materializer writing through the given gateway.
func New(logger hclog.Logger, gateway persistence.Gateway) *Materializer {
	return &Materializer{
		gateway: gateway,
		logger:  logger.Named("materialize"),
	}
}

// Render validates the category and assembles the document without writing
// anything. Used by export/preview flows and by Materialize itself.
func (m *Materializer) Render(st store.Store, categoryID string) (Document, []string, error) {
	cat, ok := st.Categories[categoryID]
	if !ok || cat.Deleted() {
		return Document{}, nil, fmt.Errorf("%w: '%s'", errors.ErrCategoryNotFound, categoryID)
	}

	doc := Document{MCPServers: map[string]Entry{}}

	var degraded []string
	for _, srv := range st.CategoryServers(categoryID) {
		value := store.ParseServerValue(srv.Value)
		if !value.Parsed() {
			m.logger.Warn("server value blob is malformed, writing placeholder entry",
				"server", srv.Name, "id", srv.ID)
			degraded = append(degraded, srv.Name)
			// Same-named servers overwrite each other in iteration order;
			// the last one wins.
			doc.MCPServers[srv.Name] = degradedEntry()
			continue
		}

		entry := Entry{
			Command:     value.Config.Command,
			Args:        value.Config.Args,
			Env:         value.Config.Env,
			Description: value.Config.Description,
		}

		if env := st.ServerEnv(srv.ID); len(env) > 0 {
			// Key-relation env overrides any env carried in the blob.
			entry.Env = env
		}
		if len(entry.Env) == 0 {
			entry.Env = nil
		}

		doc.MCPServers[srv.Name] = entry
	}

	return doc, degraded, nil
}

// Materialize resolves the destination path for the target, assembles the
// category's document, and writes it. The store is read, never mutated; on
// ErrConfigWrite nothing should be committed by the caller.
func (m *Materializer) Materialize(st store.Store, categoryID, target string) (Result, error) {
	// Validating.
	path, ok := st.ResolveConfigPath(target)
	if !ok {
		return Result{}, fmt.Errorf("%w: target '%s'", errors.ErrTargetPathNotConfigured, target)
	}
	expanded := ExpandPath(path)

	// Assembling (validates the category).
	doc, degraded, err := m.Render(st, categoryID)
	if err != nil {
		return Result{}, err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("could not encode config document: %w", err)
	}
	data = append(data, '\n')

	// Writing.
	if err := m.gateway.WriteTextFile(expanded, string(data)); err != nil {
		return Result{}, fmt.Errorf("%w: %w", errors.ErrConfigWrite, err)
	}

	m.logger.Info("config materialized",
		"category", categoryID, "target", target, "path", expanded, "servers", len(doc.MCPServers))

	return Result{Path: expanded, Document: data, Degraded: degraded}, nil
}
