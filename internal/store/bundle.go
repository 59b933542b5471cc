package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcpswitch/mcpswitch/internal/errors"
)

// Bundle is the portable form of one category and its servers, used by the
// import/export commands. Ids are never exported; import assigns fresh ones.
type Bundle struct {
	Category BundleCategory `json:"category"          yaml:"category"`
	Servers  []BundleServer `json:"servers"           yaml:"servers"`
}

// BundleCategory mirrors the user-editable fields of a category.
type BundleCategory struct {
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string `json:"icon,omitempty"        yaml:"icon,omitempty"`
	Target      string `json:"target,omitempty"      yaml:"target,omitempty"`
}

// BundleServer carries one server definition together with its relation
// attributes inside the exported category.
type BundleServer struct {
	Name    string `json:"name"              yaml:"name"`
	Value   string `json:"value"             yaml:"value"`
	Order   int    `json:"order"             yaml:"order"`
	Enabled bool   `json:"enabled"           yaml:"enabled"`
}

// ExportBundle extracts a category and its attached servers into a portable
// bundle. Disabled relations are included (with Enabled=false); relations
// pointing at soft-deleted servers are dropped.
func (s Store) ExportBundle(categoryID string) (Bundle, error) {
	cat, ok := s.Categories[categoryID]
	if !ok || cat.Deleted() {
		return Bundle{}, fmt.Errorf("%w: category '%s'", errors.ErrCategoryNotFound, categoryID)
	}

	bundle := Bundle{
		Category: BundleCategory{
			Name:        cat.Name,
			Description: cat.Description,
			Icon:        cat.Icon,
			Target:      cat.Target,
		},
	}

	for _, rel := range s.relationsForCategory(categoryID) {
		srv, ok := s.Servers[rel.ServerID]
		if !ok || srv.Deleted() {
			continue
		}
		bundle.Servers = append(bundle.Servers, BundleServer{
			Name:    srv.Name,
			Value:   srv.Value,
			Order:   rel.Order,
			Enabled: rel.IsEnabled,
		})
	}

	return bundle, nil
}

// relationsForCategory returns all active relations of a category, enabled or
// not, in (order, id) order.
func (s Store) relationsForCategory(categoryID string) []CategoryServerRelation {
	rels := make([]CategoryServerRelation, 0)
	for _, rel := range s.CategoryServerRelations {
		if rel.Deleted() || rel.CategoryID != categoryID {
			continue
		}
		rels = append(rels, rel)
	}
	sortRelations(rels)

	return rels
}

// ImportBundle creates a new category, servers, and relations from a bundle.
// Everything gets fresh ids; order and enabled flags are preserved. The
// import is a sequence of ordinary mutations, so each created entity carries
// a normal envelope.
func (s Store) ImportBundle(b Bundle) (Store, Category, error) {
	out, cat, err := s.CreateCategory(b.Category.Name, b.Category.Description, b.Category.Icon, b.Category.Target)
	if err != nil {
		return s, Category{}, err
	}

	for i, bs := range b.Servers {
		var srv Server
		out, srv, err = out.CreateServer(bs.Name, bs.Value)
		if err != nil {
			return s, Category{}, fmt.Errorf("server %d ('%s'): %w", i, bs.Name, err)
		}

		var rel CategoryServerRelation
		out, rel, err = out.AttachServerToCategory(cat.ID, srv.ID, bs.Order)
		if err != nil {
			return s, Category{}, fmt.Errorf("server %d ('%s'): %w", i, bs.Name, err)
		}

		if !bs.Enabled {
			enabled := false
			out, _, err = out.UpdateRelation(rel.ID, RelationUpdate{IsEnabled: &enabled})
			if err != nil {
				return s, Category{}, fmt.Errorf("server %d ('%s'): %w", i, bs.Name, err)
			}
		}
	}

	return out, cat, nil
}

// EncodeBundle serializes a bundle as JSON (default) or YAML.
func EncodeBundle(b Bundle, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "json":
		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(b)
	default:
		return nil, fmt.Errorf("%w: unsupported bundle format '%s'", errors.ErrValidation, format)
	}
}

// DecodeBundle parses bundle content in JSON or YAML form. JSON is attempted
// first since every JSON document is also valid YAML.
func DecodeBundle(data []byte) (Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err == nil {
		return b, nil
	}

	if err := yaml.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("%w: bundle is neither valid JSON nor valid YAML: %w", errors.ErrValidation, err)
	}

	return b, nil
}
