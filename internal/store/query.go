package store

import (
	"cmp"
	"slices"
)

// Queries are pure, total projections over a store snapshot. Absent or
// invalid input yields empty results, never an error.

// active collects every non-deleted value of an entity map in id order.
// Id order approximates insertion order because ids are timestamp-prefixed.
func active[E interface {
	Deleted() bool
}](m map[string]E, id func(E) string) []E {
	out := make([]E, 0, len(m))
	for _, v := range m {
		if !v.Deleted() {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b E) int {
		return cmp.Compare(id(a), id(b))
	})

	return out
}

// ActiveServers returns all non-deleted servers in id order.
func (s Store) ActiveServers() []Server {
	return active(s.Servers, func(e Server) string { return e.ID })
}

// ActiveCategoriesList returns all non-deleted categories in id order.
// (The ActiveCategories name is taken by the per-target activation map.)
func (s Store) ActiveCategoriesList() []Category {
	return active(s.Categories, func(e Category) string { return e.ID })
}

// ActiveConfigTargets returns all non-deleted config targets in id order.
func (s Store) ActiveConfigTargets() []ConfigTarget {
	return active(s.ConfigTargets, func(e ConfigTarget) string { return e.ID })
}

// ActiveKeys returns all non-deleted keys in id order.
func (s Store) ActiveKeys() []Key {
	return active(s.Keys, func(e Key) string { return e.ID })
}

// CategoriesForTarget returns the active categories visible under a target
// filter: everything for TargetAll, otherwise the categories scoped to that
// target plus the ones scoped to TargetAll.
func (s Store) CategoriesForTarget(target string) []Category {
	cats := s.ActiveCategoriesList()
	if target == TargetAll {
		return cats
	}

	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		if c.Target == target || c.Target == TargetAll {
			out = append(out, c)
		}
	}

	return out
}

// sortRelations orders relations ascending by order, ties broken by relation
// id so the sort stays deterministic across runs.
func sortRelations(rels []CategoryServerRelation) {
	slices.SortFunc(rels, func(a, b CategoryServerRelation) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// CategoryServers returns the ordered server sequence of a category: active,
// enabled relations sorted ascending by order (ties broken by relation id,
// which preserves insertion order), each mapped to its server, dropping
// mappings whose server is missing or soft-deleted.
//
// The sequence order becomes the iteration order when the materialized config
// is assembled, so it must be deterministic.
func (s Store) CategoryServers(categoryID string) []Server {
	rels := make([]CategoryServerRelation, 0, len(s.CategoryServerRelations))
	for _, rel := range s.CategoryServerRelations {
		if rel.Deleted() || !rel.IsEnabled || rel.CategoryID != categoryID {
			continue
		}
		rels = append(rels, rel)
	}

	sortRelations(rels)

	out := make([]Server, 0, len(rels))
	for _, rel := range rels {
		srv, ok := s.Servers[rel.ServerID]
		if !ok || srv.Deleted() {
			continue
		}
		out = append(out, srv)
	}

	return out
}

// ActiveCategoryFor resolves the active category for a target. It returns
// false when no category is recorded, or when the recorded id points at a
// missing or soft-deleted category.
func (s Store) ActiveCategoryFor(target string) (Category, bool) {
	id := s.ActiveCategories[target]
	if id == "" {
		return Category{}, false
	}

	cat, ok := s.Categories[id]
	if !ok || cat.Deleted() {
		return Category{}, false
	}

	return cat, true
}

// ServerEnv assembles the env var mapping for a server from its active key
// relations. Relations whose key is missing or soft-deleted are skipped. An
// empty result means the materialized entry must omit its env field entirely.
//
// When two relations claim the same keyName, the one with the greater
// relation id (the later-created one) wins.
func (s Store) ServerEnv(serverID string) map[string]string {
	rels := make([]ServerKeyRelation, 0, len(s.ServerKeyRelations))
	for _, rel := range s.ServerKeyRelations {
		if rel.Deleted() || rel.ServerID != serverID {
			continue
		}
		rels = append(rels, rel)
	}
	slices.SortFunc(rels, func(a, b ServerKeyRelation) int {
		return cmp.Compare(a.ID, b.ID)
	})

	env := map[string]string{}
	for _, rel := range rels {
		key, ok := s.Keys[rel.KeyID]
		if !ok || key.Deleted() {
			continue
		}
		env[rel.KeyName] = key.Value
	}

	return env
}

// ResolveConfigPath resolves the destination config path for a target:
// an entry in ConfigPaths takes precedence over the target's own configPath.
// It returns false when the target is unknown or no path is configured.
func (s Store) ResolveConfigPath(target string) (string, bool) {
	if p, ok := s.ConfigPaths[target]; ok && p != "" {
		return p, true
	}

	tgt, ok := s.ConfigTargets[target]
	if !ok || tgt.Deleted() || tgt.ConfigPath == "" {
		return "", false
	}

	return tgt.ConfigPath, true
}

// FindCategoryByName returns the first active category with the given name,
// in id order. Used by commands that accept names as well as ids.
func (s Store) FindCategoryByName(name string) (Category, bool) {
	for _, c := range s.ActiveCategoriesList() {
		if c.Name == name {
			return c, true
		}
	}

	return Category{}, false
}

// FindServerByName returns the first active server with the given name, in id
// order. Server names are not required to be globally unique.
func (s Store) FindServerByName(name string) (Server, bool) {
	for _, srv := range s.ActiveServers() {
		if srv.Name == name {
			return srv, true
		}
	}

	return Server{}, false
}

// FindConfigTargetByName returns the active config target with the given id or
// name. Built-in targets have matching ids and names, so both spellings work.
func (s Store) FindConfigTargetByName(name string) (ConfigTarget, bool) {
	if tgt, ok := s.ConfigTargets[name]; ok && !tgt.Deleted() {
		return tgt, true
	}
	for _, tgt := range s.ActiveConfigTargets() {
		if tgt.Name == name {
			return tgt, true
		}
	}

	return ConfigTarget{}, false
}
