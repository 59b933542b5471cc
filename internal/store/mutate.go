package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcpswitch/mcpswitch/internal/errors"
)

// Mutations never modify the receiver. Each one deep-copies the store,
// applies the change, bumps Metadata.LastUpdated, and returns the new store
// value. On error the original store is the one to keep using.

// touch records an accepted mutation on the aggregate.
func (s *Store) touch(now time.Time) {
	s.Metadata.LastUpdated = now
}

// CreateServer adds a new server definition. Name and value are both
// required; the value blob is stored opaquely and is not parsed here.
func (s Store) CreateServer(name, value string) (Store, Server, error) {
	if strings.TrimSpace(name) == "" {
		return s, Server{}, fmt.Errorf("%w: server name is required", errors.ErrValidation)
	}
	if strings.TrimSpace(value) == "" {
		return s, Server{}, fmt.Errorf("%w: server value is required", errors.ErrValidation)
	}

	out := s.clone()
	now := time.Now()

	srv := Server{Name: name, Value: value}
	srv.stamp(out.freshID(), now)
	out.Servers[srv.ID] = srv
	out.touch(now)

	return out, srv, nil
}

// ServerUpdate carries the replaceable fields of a server. Name and value are
// replaced together at this layer; there is no partial merge of the parsed
// blob sub-fields.
type ServerUpdate struct {
	Name  *string
	Value *string
}

// UpdateServer replaces the given fields on an active server.
func (s Store) UpdateServer(id string, up ServerUpdate) (Store, Server, error) {
	srv, ok := s.Servers[id]
	if !ok || srv.Deleted() {
		return s, Server{}, fmt.Errorf("%w: server '%s'", errors.ErrNotFound, id)
	}

	if up.Name != nil {
		if strings.TrimSpace(*up.Name) == "" {
			return s, Server{}, fmt.Errorf("%w: server name is required", errors.ErrValidation)
		}
		srv.Name = *up.Name
	}
	if up.Value != nil {
		if strings.TrimSpace(*up.Value) == "" {
			return s, Server{}, fmt.Errorf("%w: server value is required", errors.ErrValidation)
		}
		srv.Value = *up.Value
	}

	out := s.clone()
	now := time.Now()
	srv.bump(now)
	out.Servers[id] = srv
	out.touch(now)

	return out, srv, nil
}

// SoftDeleteServer marks a server as deleted. Relations referencing the
// server are not cascaded; the query layer hides the dangling references.
func (s Store) SoftDeleteServer(id string) (Store, error) {
	srv, ok := s.Servers[id]
	if !ok || srv.Deleted() {
		return s, fmt.Errorf("%w: server '%s'", errors.ErrNotFound, id)
	}

	out := s.clone()
	now := time.Now()
	srv.DelYn = true
	srv.bump(now)
	out.Servers[id] = srv
	out.touch(now)

	return out, nil
}

// CreateCategory adds a new category. Target defaults to TargetAll when
// empty; it is not checked against existing config targets, a category may be
// scoped to a target that is created later.
func (s Store) CreateCategory(name, description, icon, target string) (Store, Category, error) {
	if strings.TrimSpace(name) == "" {
		return s, Category{}, fmt.Errorf("%w: category name is required", errors.ErrValidation)
	}
	if strings.TrimSpace(target) == "" {
		target = TargetAll
	}

	out := s.clone()
	now := time.Now()

	cat := Category{Name: name, Description: description, Icon: icon, Target: target}
	cat.stamp(out.freshID(), now)
	out.Categories[cat.ID] = cat
	out.touch(now)

	return out, cat, nil
}

// CategoryUpdate carries the replaceable fields of a category.
type CategoryUpdate struct {
	Name        *string
	Description *string
	Icon        *string
	Target      *string
	IsActive    *bool
}

// UpdateCategory replaces the given fields on an active category.
func (s Store) UpdateCategory(id string, up CategoryUpdate) (Store, Category, error) {
	cat, ok := s.Categories[id]
	if !ok || cat.Deleted() {
		return s, Category{}, fmt.Errorf("%w: category '%s'", errors.ErrNotFound, id)
	}

	if up.Name != nil {
		if strings.TrimSpace(*up.Name) == "" {
			return s, Category{}, fmt.Errorf("%w: category name is required", errors.ErrValidation)
		}
		cat.Name = *up.Name
	}
	if up.Description != nil {
		cat.Description = *up.Description
	}
	if up.Icon != nil {
		cat.Icon = *up.Icon
	}
	if up.Target != nil {
		cat.Target = *up.Target
	}
	if up.IsActive != nil {
		cat.IsActive = *up.IsActive
	}

	out := s.clone()
	now := time.Now()
	cat.bump(now)
	out.Categories[id] = cat
	out.touch(now)

	return out, cat, nil
}

// SoftDeleteCategory marks a category as deleted. Its relations and any
// ActiveCategories entry pointing at it are left in place; consumers treat a
// deleted active category as "no active category".
func (s Store) SoftDeleteCategory(id string) (Store, error) {
	cat, ok := s.Categories[id]
	if !ok || cat.Deleted() {
		return s, fmt.Errorf("%w: category '%s'", errors.ErrNotFound, id)
	}

	out := s.clone()
	now := time.Now()
	cat.DelYn = true
	cat.bump(now)
	out.Categories[id] = cat
	out.touch(now)

	return out, nil
}

// CreateConfigTarget adds a user-defined config target.
func (s Store) CreateConfigTarget(name, configPath string) (Store, ConfigTarget, error) {
	if strings.TrimSpace(name) == "" {
		return s, ConfigTarget{}, fmt.Errorf("%w: target name is required", errors.ErrValidation)
	}
	if strings.TrimSpace(configPath) == "" {
		return s, ConfigTarget{}, fmt.Errorf("%w: target config path is required", errors.ErrValidation)
	}

	out := s.clone()
	now := time.Now()

	tgt := ConfigTarget{Name: name, ConfigPath: configPath, IsBuiltIn: false}
	tgt.stamp(out.freshID(), now)
	out.ConfigTargets[tgt.ID] = tgt
	out.touch(now)

	return out, tgt, nil
}

// ConfigTargetUpdate carries the replaceable fields of a config target.
type ConfigTargetUpdate struct {
	Name       *string
	ConfigPath *string
}

// UpdateConfigTarget replaces the given fields on an active, user-defined
// config target. Built-in targets reject updates unconditionally.
func (s Store) UpdateConfigTarget(id string, up ConfigTargetUpdate) (Store, ConfigTarget, error) {
	tgt, ok := s.ConfigTargets[id]
	if !ok || tgt.Deleted() {
		return s, ConfigTarget{}, fmt.Errorf("%w: config target '%s'", errors.ErrNotFound, id)
	}
	if tgt.IsBuiltIn {
		return s, ConfigTarget{}, fmt.Errorf("%w: '%s'", errors.ErrImmutable, id)
	}

	if up.Name != nil {
		if strings.TrimSpace(*up.Name) == "" {
			return s, ConfigTarget{}, fmt.Errorf("%w: target name is required", errors.ErrValidation)
		}
		tgt.Name = *up.Name
	}
	if up.ConfigPath != nil {
		if strings.TrimSpace(*up.ConfigPath) == "" {
			return s, ConfigTarget{}, fmt.Errorf("%w: target config path is required", errors.ErrValidation)
		}
		tgt.ConfigPath = *up.ConfigPath
	}

	out := s.clone()
	now := time.Now()
	tgt.bump(now)
	out.ConfigTargets[id] = tgt
	out.touch(now)

	return out, tgt, nil
}

// SoftDeleteConfigTarget marks a user-defined config target as deleted.
// Built-in targets reject deletion unconditionally.
func (s Store) SoftDeleteConfigTarget(id string) (Store, error) {
	tgt, ok := s.ConfigTargets[id]
	if !ok || tgt.Deleted() {
		return s, fmt.Errorf("%w: config target '%s'", errors.ErrNotFound, id)
	}
	if tgt.IsBuiltIn {
		return s, fmt.Errorf("%w: '%s'", errors.ErrImmutable, id)
	}

	out := s.clone()
	now := time.Now()
	tgt.DelYn = true
	tgt.bump(now)
	out.ConfigTargets[id] = tgt
	out.touch(now)

	return out, nil
}

// CreateKey adds a stored credential value.
func (s Store) CreateKey(name, value string) (Store, Key, error) {
	if strings.TrimSpace(name) == "" {
		return s, Key{}, fmt.Errorf("%w: key name is required", errors.ErrValidation)
	}
	if value == "" {
		return s, Key{}, fmt.Errorf("%w: key value is required", errors.ErrValidation)
	}

	out := s.clone()
	now := time.Now()

	key := Key{Name: name, Value: value}
	key.stamp(out.freshID(), now)
	out.Keys[key.ID] = key
	out.touch(now)

	return out, key, nil
}

// SoftDeleteKey marks a key as deleted. Server-key relations pointing at it
// are skipped during env assembly rather than cascaded.
func (s Store) SoftDeleteKey(id string) (Store, error) {
	key, ok := s.Keys[id]
	if !ok || key.Deleted() {
		return s, fmt.Errorf("%w: key '%s'", errors.ErrNotFound, id)
	}

	out := s.clone()
	now := time.Now()
	key.DelYn = true
	key.bump(now)
	out.Keys[id] = key
	out.touch(now)

	return out, nil
}

// AttachServerToCategory creates a new relation with the given order and
// isEnabled=true. Duplicate relations for the same (category, server) pair
// are permitted; every active, enabled one contributes at materialization
// time. Neither id is checked for existence, matching the store's tolerance
// of dangling references.
func (s Store) AttachServerToCategory(categoryID, serverID string, order int) (Store, CategoryServerRelation, error) {
	if strings.TrimSpace(categoryID) == "" || strings.TrimSpace(serverID) == "" {
		return s, CategoryServerRelation{}, fmt.Errorf("%w: category id and server id are required", errors.ErrValidation)
	}

	out := s.clone()
	now := time.Now()

	rel := CategoryServerRelation{
		CategoryID: categoryID,
		ServerID:   serverID,
		Order:      order,
		IsEnabled:  true,
	}
	rel.stamp(out.freshID(), now)
	out.CategoryServerRelations[rel.ID] = rel
	out.touch(now)

	return out, rel, nil
}

// DetachServerFromCategory soft-deletes the first active relation matching
// both ids, in relation-id order. When duplicate relations exist only one is
// removed per call.
func (s Store) DetachServerFromCategory(categoryID, serverID string) (Store, error) {
	relID := ""
	for id, rel := range s.CategoryServerRelations {
		if rel.Deleted() || rel.CategoryID != categoryID || rel.ServerID != serverID {
			continue
		}
		if relID == "" || id < relID {
			relID = id
		}
	}
	if relID == "" {
		return s, fmt.Errorf(
			"%w: no active relation between category '%s' and server '%s'",
			errors.ErrNotFound, categoryID, serverID,
		)
	}

	out := s.clone()
	now := time.Now()
	rel := out.CategoryServerRelations[relID]
	rel.DelYn = true
	rel.bump(now)
	out.CategoryServerRelations[relID] = rel
	out.touch(now)

	return out, nil
}

// RelationUpdate carries the replaceable fields of a category-server
// relation.
type RelationUpdate struct {
	Order     *int
	IsEnabled *bool
}

// UpdateRelation replaces order/isEnabled on an active relation.
func (s Store) UpdateRelation(id string, up RelationUpdate) (Store, CategoryServerRelation, error) {
	rel, ok := s.CategoryServerRelations[id]
	if !ok || rel.Deleted() {
		return s, CategoryServerRelation{}, fmt.Errorf("%w: relation '%s'", errors.ErrNotFound, id)
	}

	if up.Order != nil {
		rel.Order = *up.Order
	}
	if up.IsEnabled != nil {
		rel.IsEnabled = *up.IsEnabled
	}

	out := s.clone()
	now := time.Now()
	rel.bump(now)
	out.CategoryServerRelations[id] = rel
	out.touch(now)

	return out, rel, nil
}

// AttachKeyToServer creates a new server-key relation injecting the key's
// value under keyName in the server's materialized env.
func (s Store) AttachKeyToServer(serverID, keyID, keyName string) (Store, ServerKeyRelation, error) {
	if strings.TrimSpace(serverID) == "" || strings.TrimSpace(keyID) == "" {
		return s, ServerKeyRelation{}, fmt.Errorf("%w: server id and key id are required", errors.ErrValidation)
	}
	if strings.TrimSpace(keyName) == "" {
		return s, ServerKeyRelation{}, fmt.Errorf("%w: key name is required", errors.ErrValidation)
	}

	out := s.clone()
	now := time.Now()

	rel := ServerKeyRelation{ServerID: serverID, KeyID: keyID, KeyName: keyName}
	rel.stamp(out.freshID(), now)
	out.ServerKeyRelations[rel.ID] = rel
	out.touch(now)

	return out, rel, nil
}

// DetachKeyFromServer soft-deletes the first active relation matching both
// ids, in relation-id order.
func (s Store) DetachKeyFromServer(serverID, keyID string) (Store, error) {
	relID := ""
	for id, rel := range s.ServerKeyRelations {
		if rel.Deleted() || rel.ServerID != serverID || rel.KeyID != keyID {
			continue
		}
		if relID == "" || id < relID {
			relID = id
		}
	}
	if relID == "" {
		return s, fmt.Errorf(
			"%w: no active relation between server '%s' and key '%s'",
			errors.ErrNotFound, serverID, keyID,
		)
	}

	out := s.clone()
	now := time.Now()
	rel := out.ServerKeyRelations[relID]
	rel.DelYn = true
	rel.bump(now)
	out.ServerKeyRelations[relID] = rel
	out.touch(now)

	return out, nil
}

// SetActiveCategory unconditionally records categoryID as active for the
// target. An empty categoryID clears the entry. The category is not checked
// for existence; consumers treat a dangling reference as "no active
// category".
func (s Store) SetActiveCategory(target, categoryID string) Store {
	out := s.clone()
	out.ActiveCategories[target] = categoryID
	out.touch(time.Now())

	return out
}

// SetSelectedTarget records the last-chosen target filter (TargetAll or a
// target id).
func (s Store) SetSelectedTarget(target string) Store {
	out := s.clone()
	out.SelectedTarget = target
	out.touch(time.Now())

	return out
}

// SetConfigPathOverride records an auxiliary config path override for a
// target. An empty path removes the override.
func (s Store) SetConfigPathOverride(target, path string) Store {
	out := s.clone()
	if strings.TrimSpace(path) == "" {
		delete(out.ConfigPaths, target)
	} else {
		out.ConfigPaths[target] = path
	}
	out.touch(time.Now())

	return out
}
