package server

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpswitch/mcpswitch/internal/flags"
	"github.com/mcpswitch/mcpswitch/internal/persistence"
	"github.com/mcpswitch/mcpswitch/internal/store"
)

// tempStore points the global store flag at a fresh file and restores it when
// the test ends.
func tempStore(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	// t.TempDir honours the process umask (0o755 under the usual 0o022), but
	// the gateway requires the store's parent directory to be 0o700 or tighter.
	require.NoError(t, os.Chmod(dir, 0o700))
	prev := flags.StoreFile
	path := filepath.Join(dir, "store.json")
	flags.StoreFile = path
	t.Cleanup(func() {
		flags.StoreFile = prev
	})

	return path
}

// loadStore reads the persisted store back for assertions.
func loadStore(t *testing.T, path string) store.Store {
	t.Helper()

	gateway, err := persistence.NewFileGateway(hclog.NewNullLogger(), path)
	require.NoError(t, err)

	st, err := gateway.LoadStore()
	require.NoError(t, err)

	return st
}

func TestAddCmd_CreatesServer(t *testing.T) {
	path := tempStore(t)

	cmd := NewAddCmd(hclog.NewNullLogger())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"fs", "--value", `{"command":"npx","args":["-y","server-filesystem"]}`})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "✓ Added server 'fs'")

	st := loadStore(t, path)
	srv, ok := st.FindServerByName("fs")
	require.True(t, ok)
	assert.Equal(t, 1, srv.Version)
}

func TestAddCmd_RejectsInvalidValue(t *testing.T) {
	path := tempStore(t)

	cmd := NewAddCmd(hclog.NewNullLogger())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fs", "--value", `{"args":["no command"]}`})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	st := loadStore(t, path)
	_, ok := st.FindServerByName("fs")
	assert.False(t, ok)
}

func TestAddCmd_ForceStoresInvalidValue(t *testing.T) {
	path := tempStore(t)

	cmd := NewAddCmd(hclog.NewNullLogger())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"broken", "--value", `not json at all`, "--force"})

	require.NoError(t, cmd.Execute())

	st := loadStore(t, path)
	srv, ok := st.FindServerByName("broken")
	require.True(t, ok)
	assert.Equal(t, "not json at all", srv.Value)
}

func TestAddCmd_RequiresValue(t *testing.T) {
	tempStore(t)

	cmd := NewAddCmd(hclog.NewNullLogger())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fs"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--value")
}
