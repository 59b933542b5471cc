package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpswitch/mcpswitch/internal/errors"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

func TestCreateServer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		serverName      string
		serverValue     string
		isErrorExpected bool
	}{
		{
			name:        "create with name and value",
			serverName:  "fs",
			serverValue: `{"command":"npx","args":["-y","server-fs"]}`,
		},
		{
			name:        "malformed value is tolerated at create time",
			serverName:  "broken",
			serverValue: "not json",
		},
		{
			name:            "empty name rejected",
			serverName:      "  ",
			serverValue:     `{"command":"npx"}`,
			isErrorExpected: true,
		},
		{
			name:            "empty value rejected",
			serverName:      "fs",
			serverValue:     "",
			isErrorExpected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			st := New()
			next, srv, err := st.CreateServer(tc.serverName, tc.serverValue)

			if tc.isErrorExpected {
				require.ErrorIs(t, err, errors.ErrValidation)
				require.Empty(t, next.Servers)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, srv.ID)
			require.Equal(t, 1, srv.Version)
			require.False(t, srv.DelYn)
			require.Equal(t, srv.CreatedAt, srv.UpdatedAt)
			require.Equal(t, srv, next.Servers[srv.ID])

			// The original store value must be untouched.
			require.Empty(t, st.Servers)
		})
	}
}

func TestUpdateServer_Versioning(t *testing.T) {
	t.Parallel()

	st, srv, err := New().CreateServer("fs", `{"command":"npx"}`)
	require.NoError(t, err)

	// After N successful mutations, version == 1 + N.
	const n = 5
	prev := srv.UpdatedAt
	for i := range n {
		var updated Server
		st, updated, err = st.UpdateServer(srv.ID, ServerUpdate{Value: strPtr(`{"command":"npx"}`)})
		require.NoError(t, err)
		require.Equal(t, 2+i, updated.Version)
		require.False(t, updated.UpdatedAt.Before(prev), "updatedAt must be monotonically non-decreasing")
		prev = updated.UpdatedAt
	}

	require.Equal(t, 1+n, st.Servers[srv.ID].Version)
}

func TestUpdateServer_Errors(t *testing.T) {
	t.Parallel()

	st, srv, err := New().CreateServer("fs", `{"command":"npx"}`)
	require.NoError(t, err)

	t.Run("unknown id", func(t *testing.T) {
		_, _, err := st.UpdateServer("nope", ServerUpdate{Name: strPtr("x")})
		require.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("soft-deleted server rejects update", func(t *testing.T) {
		deleted, err := st.SoftDeleteServer(srv.ID)
		require.NoError(t, err)

		_, _, err = deleted.UpdateServer(srv.ID, ServerUpdate{Name: strPtr("x")})
		require.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("empty replacement name rejected", func(t *testing.T) {
		_, _, err := st.UpdateServer(srv.ID, ServerUpdate{Name: strPtr("  ")})
		require.ErrorIs(t, err, errors.ErrValidation)
	})
}

func TestSoftDeleteServer(t *testing.T) {
	t.Parallel()

	st, srv, err := New().CreateServer("fs", `{"command":"npx"}`)
	require.NoError(t, err)

	next, err := st.SoftDeleteServer(srv.ID)
	require.NoError(t, err)

	// Excluded from the active projection but still addressable by id.
	require.Empty(t, next.ActiveServers())
	kept, ok := next.Servers[srv.ID]
	require.True(t, ok)
	require.True(t, kept.DelYn)
	require.Equal(t, 2, kept.Version)

	// Deleting twice fails, the record is already logically gone.
	_, err = next.SoftDeleteServer(srv.ID)
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestBuiltInTargetImmutability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		op   func(st Store) error
	}{
		{
			name: "update claude",
			op: func(st Store) error {
				_, _, err := st.UpdateConfigTarget(BuiltInTargetClaude, ConfigTargetUpdate{Name: strPtr("x")})
				return err
			},
		},
		{
			name: "delete claude",
			op: func(st Store) error {
				_, err := st.SoftDeleteConfigTarget(BuiltInTargetClaude)
				return err
			},
		},
		{
			name: "update cursor",
			op: func(st Store) error {
				_, _, err := st.UpdateConfigTarget(BuiltInTargetCursor, ConfigTargetUpdate{ConfigPath: strPtr("/tmp/x")})
				return err
			},
		},
		{
			name: "delete cursor",
			op: func(st Store) error {
				_, err := st.SoftDeleteConfigTarget(BuiltInTargetCursor)
				return err
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			st := New()
			before := st.ConfigTargets[BuiltInTargetClaude]
			beforeCursor := st.ConfigTargets[BuiltInTargetCursor]

			err := tc.op(st)
			require.ErrorIs(t, err, errors.ErrImmutable)

			// The store must be left unchanged.
			assert.Equal(t, before, st.ConfigTargets[BuiltInTargetClaude])
			assert.Equal(t, beforeCursor, st.ConfigTargets[BuiltInTargetCursor])
		})
	}
}

func TestConfigTargetLifecycle(t *testing.T) {
	t.Parallel()

	st, tgt, err := New().CreateConfigTarget("vscode", "/home/u/.config/Code/mcp.json")
	require.NoError(t, err)
	require.False(t, tgt.IsBuiltIn)

	st, updated, err := st.UpdateConfigTarget(tgt.ID, ConfigTargetUpdate{Name: strPtr("vs-code")})
	require.NoError(t, err)
	require.Equal(t, "vs-code", updated.Name)
	require.Equal(t, 2, updated.Version)

	st, err = st.SoftDeleteConfigTarget(tgt.ID)
	require.NoError(t, err)
	require.Len(t, st.ActiveConfigTargets(), 2) // only the two built-ins remain active
}

func TestAttachServerToCategory(t *testing.T) {
	t.Parallel()

	st, cat, err := New().CreateCategory("dev", "", "folder", TargetAll)
	require.NoError(t, err)
	st, srv, err := st.CreateServer("fs", `{"command":"npx"}`)
	require.NoError(t, err)

	st, rel, err := st.AttachServerToCategory(cat.ID, srv.ID, 3)
	require.NoError(t, err)
	require.True(t, rel.IsEnabled)
	require.Equal(t, 3, rel.Order)

	// Duplicate relations for the same pair are permitted.
	st, rel2, err := st.AttachServerToCategory(cat.ID, srv.ID, 4)
	require.NoError(t, err)
	require.NotEqual(t, rel.ID, rel2.ID)

	active := 0
	for _, r := range st.CategoryServerRelations {
		if !r.Deleted() {
			active++
		}
	}
	require.Equal(t, 2, active)
}

func TestDetachServerFromCategory(t *testing.T) {
	t.Parallel()

	st, cat, err := New().CreateCategory("dev", "", "folder", TargetAll)
	require.NoError(t, err)
	st, srv, err := st.CreateServer("fs", `{"command":"npx"}`)
	require.NoError(t, err)

	t.Run("no relation", func(t *testing.T) {
		_, err := st.DetachServerFromCategory(cat.ID, srv.ID)
		require.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("detach removes one relation per call", func(t *testing.T) {
		attached, _, err := st.AttachServerToCategory(cat.ID, srv.ID, 0)
		require.NoError(t, err)
		attached, _, err = attached.AttachServerToCategory(cat.ID, srv.ID, 1)
		require.NoError(t, err)

		once, err := attached.DetachServerFromCategory(cat.ID, srv.ID)
		require.NoError(t, err)
		require.Len(t, once.CategoryServers(cat.ID), 1)

		twice, err := once.DetachServerFromCategory(cat.ID, srv.ID)
		require.NoError(t, err)
		require.Empty(t, twice.CategoryServers(cat.ID))

		_, err = twice.DetachServerFromCategory(cat.ID, srv.ID)
		require.ErrorIs(t, err, errors.ErrNotFound)
	})
}

func TestSetActiveCategory(t *testing.T) {
	t.Parallel()

	st := New()
	before := st.Metadata.LastUpdated

	// No existence check: the category id may be dangling.
	next := st.SetActiveCategory(BuiltInTargetClaude, "does-not-exist")
	require.Equal(t, "does-not-exist", next.ActiveCategories[BuiltInTargetClaude])
	require.False(t, next.Metadata.LastUpdated.Before(before))

	// Consumers resolve a dangling reference as "no active category".
	_, ok := next.ActiveCategoryFor(BuiltInTargetClaude)
	require.False(t, ok)
}

func TestSetSelectedTarget(t *testing.T) {
	t.Parallel()

	st := New().SetSelectedTarget(BuiltInTargetCursor)
	require.Equal(t, BuiltInTargetCursor, st.SelectedTarget)

	st = st.SetSelectedTarget(TargetAll)
	require.Equal(t, TargetAll, st.SelectedTarget)
}

func TestUpdateRelation(t *testing.T) {
	t.Parallel()

	st, cat, err := New().CreateCategory("dev", "", "folder", TargetAll)
	require.NoError(t, err)
	st, srv, err := st.CreateServer("fs", `{"command":"npx"}`)
	require.NoError(t, err)
	st, rel, err := st.AttachServerToCategory(cat.ID, srv.ID, 0)
	require.NoError(t, err)

	st, updated, err := st.UpdateRelation(rel.ID, RelationUpdate{Order: intPtr(7), IsEnabled: boolPtr(false)})
	require.NoError(t, err)
	require.Equal(t, 7, updated.Order)
	require.False(t, updated.IsEnabled)
	require.Equal(t, 2, updated.Version)

	// Disabled relation no longer contributes servers.
	require.Empty(t, st.CategoryServers(cat.ID))
}

func TestKeyLifecycle(t *testing.T) {
	t.Parallel()

	st, key, err := New().CreateKey("supabase", "secret123")
	require.NoError(t, err)

	st, srv, err := st.CreateServer("db", `{"command":"npx"}`)
	require.NoError(t, err)

	st, rel, err := st.AttachKeyToServer(srv.ID, key.ID, "SUPABASE_KEY")
	require.NoError(t, err)
	require.Equal(t, "SUPABASE_KEY", rel.KeyName)

	require.Equal(t, map[string]string{"SUPABASE_KEY": "secret123"}, st.ServerEnv(srv.ID))

	st, err = st.DetachKeyFromServer(srv.ID, key.ID)
	require.NoError(t, err)
	require.Empty(t, st.ServerEnv(srv.ID))
}

func TestGenerateID(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for range 1000 {
		id := GenerateID()
		require.NotEmpty(t, id)
		require.False(t, strings.ContainsAny(id, " \t\n"))
		_, dup := seen[id]
		require.False(t, dup, "generated ids must not collide: %s", id)
		seen[id] = struct{}{}
	}
}
