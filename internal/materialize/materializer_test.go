package materialize

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mcpswitch/mcpswitch/internal/errors"
	"github.com/mcpswitch/mcpswitch/internal/persistence"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

func newTestMaterializer(t *testing.T) *Materializer {
	t.Helper()

	g, err := persistence.NewFileGateway(hclog.NewNullLogger(), filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	return New(hclog.NewNullLogger(), g)
}

// seedOneServer creates a store with one category containing one well-formed
// server and a config target pointing at a file in dir.
func seedOneServer(t *testing.T, dir string) (store.Store, store.Category, store.Server, store.ConfigTarget) {
	t.Helper()

	st, srv, err := store.New().CreateServer("fs", `{"command":"npx","args":["-y","server-fs"]}`)
	require.NoError(t, err)
	st, cat, err := st.CreateCategory("dev", "", "folder", store.TargetAll)
	require.NoError(t, err)
	st, _, err = st.AttachServerToCategory(cat.ID, srv.ID, 0)
	require.NoError(t, err)
	st, tgt, err := st.CreateConfigTarget("testtool", filepath.Join(dir, "cfg.json"))
	require.NoError(t, err)

	return st, cat, srv, tgt
}

func TestMaterialize_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMaterializer(t)
	st, cat, _, tgt := seedOneServer(t, dir)

	res, err := m.Materialize(st, cat.ID, tgt.ID)
	require.NoError(t, err)
	require.Empty(t, res.Degraded)
	require.Equal(t, filepath.Join(dir, "cfg.json"), res.Path)

	expected := `{
  "mcpServers": {
    "fs": {
      "command": "npx",
      "args": [
        "-y",
        "server-fs"
      ]
    }
  }
}
`
	require.Equal(t, expected, string(res.Document))

	written, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	require.Equal(t, expected, string(written))
}

func TestMaterialize_EnvInjection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMaterializer(t)
	st, cat, srv, tgt := seedOneServer(t, dir)

	st, key, err := st.CreateKey("api", "secret123")
	require.NoError(t, err)
	st, _, err = st.AttachKeyToServer(srv.ID, key.ID, "API_KEY")
	require.NoError(t, err)

	res, err := m.Materialize(st, cat.ID, tgt.ID)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(res.Document, &doc))
	require.Equal(t, map[string]string{"API_KEY": "secret123"}, doc.MCPServers["fs"].Env)
}

func TestMaterialize_EnvOmittedWhenEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMaterializer(t)
	st, cat, _, tgt := seedOneServer(t, dir)

	res, err := m.Materialize(st, cat.ID, tgt.ID)
	require.NoError(t, err)
	require.NotContains(t, string(res.Document), `"env"`)
}

func TestMaterialize_RelationEnvOverridesBlobEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMaterializer(t)

	st, srv, err := store.New().CreateServer("db", `{"command":"npx","args":[],"env":{"API_KEY":"from-blob","OTHER":"kept?"}}`)
	require.NoError(t, err)
	st, cat, err := st.CreateCategory("dev", "", "folder", store.TargetAll)
	require.NoError(t, err)
	st, _, err = st.AttachServerToCategory(cat.ID, srv.ID, 0)
	require.NoError(t, err)
	st, tgt, err := st.CreateConfigTarget("testtool", filepath.Join(dir, "cfg.json"))
	require.NoError(t, err)

	st, key, err := st.CreateKey("api", "from-relation")
	require.NoError(t, err)
	st, _, err = st.AttachKeyToServer(srv.ID, key.ID, "API_KEY")
	require.NoError(t, err)

	res, err := m.Materialize(st, cat.ID, tgt.ID)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(res.Document, &doc))
	// A non-empty relation env replaces the blob env wholesale.
	require.Equal(t, map[string]string{"API_KEY": "from-relation"}, doc.MCPServers["db"].Env)
}

func TestMaterialize_MalformedServerResilience(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMaterializer(t)

	st, broken, err := store.New().CreateServer("broken", "not json")
	require.NoError(t, err)
	st, good, err := st.CreateServer("good", `{"command":"npx","args":["-y","server-fs"]}`)
	require.NoError(t, err)
	st, cat, err := st.CreateCategory("dev", "", "folder", store.TargetAll)
	require.NoError(t, err)
	st, _, err = st.AttachServerToCategory(cat.ID, broken.ID, 0)
	require.NoError(t, err)
	st, _, err = st.AttachServerToCategory(cat.ID, good.ID, 1)
	require.NoError(t, err)
	st, tgt, err := st.CreateConfigTarget("testtool", filepath.Join(dir, "cfg.json"))
	require.NoError(t, err)

	res, err := m.Materialize(st, cat.ID, tgt.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"broken"}, res.Degraded)

	var doc Document
	require.NoError(t, json.Unmarshal(res.Document, &doc))
	require.Equal(t, Entry{Command: "echo", Args: []string{"Server configuration error"}}, doc.MCPServers["broken"])
	require.Equal(t, "npx", doc.MCPServers["good"].Command)
}

func TestMaterialize_SameNameLastWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMaterializer(t)

	st, first, err := store.New().CreateServer("dup", `{"command":"first","args":[]}`)
	require.NoError(t, err)
	st, second, err := st.CreateServer("dup", `{"command":"second","args":[]}`)
	require.NoError(t, err)
	st, cat, err := st.CreateCategory("dev", "", "folder", store.TargetAll)
	require.NoError(t, err)
	st, _, err = st.AttachServerToCategory(cat.ID, first.ID, 0)
	require.NoError(t, err)
	st, _, err = st.AttachServerToCategory(cat.ID, second.ID, 1)
	require.NoError(t, err)
	st, tgt, err := st.CreateConfigTarget("testtool", filepath.Join(dir, "cfg.json"))
	require.NoError(t, err)

	res, err := m.Materialize(st, cat.ID, tgt.ID)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(res.Document, &doc))
	require.Len(t, doc.MCPServers, 1)
	require.Equal(t, "second", doc.MCPServers["dup"].Command)
}

func TestMaterialize_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMaterializer(t)
	st, cat, _, tgt := seedOneServer(t, dir)

	first, err := m.Materialize(st, cat.ID, tgt.ID)
	require.NoError(t, err)
	second, err := m.Materialize(st, cat.ID, tgt.ID)
	require.NoError(t, err)

	require.Equal(t, first.Document, second.Document)
}

func TestMaterialize_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMaterializer(t)
	st, cat, _, tgt := seedOneServer(t, dir)

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()

		_, err := m.Materialize(st, "missing", tgt.ID)
		require.ErrorIs(t, err, errors.ErrCategoryNotFound)
	})

	t.Run("soft-deleted category", func(t *testing.T) {
		t.Parallel()

		deleted, err := st.SoftDeleteCategory(cat.ID)
		require.NoError(t, err)

		_, err = m.Materialize(deleted, cat.ID, tgt.ID)
		require.ErrorIs(t, err, errors.ErrCategoryNotFound)
	})

	t.Run("unknown target", func(t *testing.T) {
		t.Parallel()

		_, err := m.Materialize(st, cat.ID, "missing")
		require.ErrorIs(t, err, errors.ErrTargetPathNotConfigured)
	})

	t.Run("write failure", func(t *testing.T) {
		// Point the target at a path under a regular file.
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

		st2, tgt2, err := st.CreateConfigTarget("blocked", filepath.Join(blocker, "cfg.json"))
		require.NoError(t, err)

		_, err = m.Materialize(st2, cat.ID, tgt2.ID)
		require.ErrorIs(t, err, errors.ErrConfigWrite)
	})
}

func TestMaterialize_PathPlaceholderExpansion(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MCPSWITCH_TEST_DIR", dir)

	m := newTestMaterializer(t)

	st, srv, err := store.New().CreateServer("fs", `{"command":"npx","args":[]}`)
	require.NoError(t, err)
	st, cat, err := st.CreateCategory("dev", "", "folder", store.TargetAll)
	require.NoError(t, err)
	st, _, err = st.AttachServerToCategory(cat.ID, srv.ID, 0)
	require.NoError(t, err)
	st, tgt, err := st.CreateConfigTarget("testtool", `%MCPSWITCH_TEST_DIR%/cfg.json`)
	require.NoError(t, err)

	res, err := m.Materialize(st, cat.ID, tgt.ID)
	require.NoError(t, err)
	require.Equal(t, dir+"/cfg.json", res.Path)

	_, err = os.Stat(res.Path)
	require.NoError(t, err)
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		env      map[string]string
		expected string
	}{
		{
			name:     "single placeholder",
			path:     `%APPDATA%\Claude\claude_desktop_config.json`,
			env:      map[string]string{"APPDATA": `C:\Users\u\AppData\Roaming`},
			expected: `C:\Users\u\AppData\Roaming\Claude\claude_desktop_config.json`,
		},
		{
			name:     "unset placeholder expands to empty",
			path:     `%MCPSWITCH_UNSET_VAR%/cfg.json`,
			expected: `/cfg.json`,
		},
		{
			name:     "no placeholder",
			path:     `/etc/tool/cfg.json`,
			expected: `/etc/tool/cfg.json`,
		},
		{
			name:     "multiple placeholders",
			path:     `%MCPSWITCH_A%/%MCPSWITCH_B%/cfg.json`,
			env:      map[string]string{"MCPSWITCH_A": "a", "MCPSWITCH_B": "b"},
			expected: `a/b/cfg.json`,
		},
		{
			name:     "lone percent signs are left alone",
			path:     `/tmp/100%/cfg.json`,
			expected: `/tmp/100%/cfg.json`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			require.Equal(t, tc.expected, ExpandPath(tc.path))
		})
	}
}
