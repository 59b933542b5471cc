package category

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpswitch/mcpswitch/internal/store"
)

func TestActivateCmd_WritesConfigAndRecordsActivation(t *testing.T) {
	path := tempStore(t)
	cat, _ := seed(t, path, "dev", "fs", `{"command":"npx","args":["-y","server-filesystem"]}`)

	configPath := filepath.Join(t.TempDir(), "claude_desktop_config.json")
	gateway := gatewayFor(t, path)
	st, err := gateway.LoadStore()
	require.NoError(t, err)
	require.NoError(t, gateway.SaveStore(st.SetConfigPathOverride(store.BuiltInTargetClaude, configPath)))

	out, err := execute(t, NewActivateCmd(hclog.NewNullLogger()),
		"dev", "--target", "claude", "--no-restart")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Activated category 'dev' for target 'claude'")
	assert.Contains(t, out, configPath)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Contains(t, doc["mcpServers"], "fs")

	st = loadStore(t, path)
	assert.Equal(t, cat.ID, st.ActiveCategories[store.BuiltInTargetClaude])
}

func TestActivateCmd_WriteFailureLeavesActivationUnchanged(t *testing.T) {
	path := tempStore(t)
	seed(t, path, "dev", "fs", `{"command":"npx"}`)

	// A regular file where a directory is needed blocks the config write.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	configPath := filepath.Join(blocker, "config.json")

	gateway := gatewayFor(t, path)
	st, err := gateway.LoadStore()
	require.NoError(t, err)
	require.NoError(t, gateway.SaveStore(st.SetConfigPathOverride(store.BuiltInTargetClaude, configPath)))

	_, err = execute(t, NewActivateCmd(hclog.NewNullLogger()),
		"dev", "--target", "claude", "--no-restart")
	require.Error(t, err)

	st = loadStore(t, path)
	assert.Empty(t, st.ActiveCategories[store.BuiltInTargetClaude])
}

func TestActivateCmd_DefaultsToSelectedTarget(t *testing.T) {
	path := tempStore(t)
	cat, _ := seed(t, path, "dev", "fs", `{"command":"npx"}`)

	configPath := filepath.Join(t.TempDir(), "config.json")
	gateway := gatewayFor(t, path)
	st, err := gateway.LoadStore()
	require.NoError(t, err)
	st = st.SetConfigPathOverride(store.BuiltInTargetCursor, configPath)
	st = st.SetSelectedTarget(store.BuiltInTargetCursor)
	require.NoError(t, gateway.SaveStore(st))

	_, err = execute(t, NewActivateCmd(hclog.NewNullLogger()), "dev", "--no-restart")
	require.NoError(t, err)

	st = loadStore(t, path)
	assert.Equal(t, cat.ID, st.ActiveCategories[store.BuiltInTargetCursor])
	assert.FileExists(t, configPath)
}

func TestActivateCmd_NoTarget(t *testing.T) {
	path := tempStore(t)
	seed(t, path, "dev", "fs", `{"command":"npx"}`)

	_, err := execute(t, NewActivateCmd(hclog.NewNullLogger()), "dev", "--no-restart")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no target")
}

func TestActivateCmd_UnknownCategory(t *testing.T) {
	tempStore(t)

	_, err := execute(t, NewActivateCmd(hclog.NewNullLogger()), "ghost", "--target", "claude", "--no-restart")
	require.Error(t, err)
}

func TestActivateCmd_ReportsDegradedServers(t *testing.T) {
	path := tempStore(t)
	cat, _ := seed(t, path, "dev", "broken", `{not json`)

	configPath := filepath.Join(t.TempDir(), "config.json")
	gateway := gatewayFor(t, path)
	st, err := gateway.LoadStore()
	require.NoError(t, err)
	require.NoError(t, gateway.SaveStore(st.SetConfigPathOverride(store.BuiltInTargetClaude, configPath)))

	out, err := execute(t, NewActivateCmd(hclog.NewNullLogger()),
		"dev", "--target", "claude", "--no-restart")
	require.NoError(t, err)
	assert.Contains(t, out, "⚠ Server 'broken' has a malformed config value")

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Server configuration error")

	st = loadStore(t, path)
	assert.Equal(t, cat.ID, st.ActiveCategories[store.BuiltInTargetClaude])
}
