package category

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachCmd_AttachesServers(t *testing.T) {
	path := tempStore(t)
	cat, _ := seed(t, path, "dev", "fs", `{"command":"npx"}`)

	gateway := gatewayFor(t, path)
	st, err := gateway.LoadStore()
	require.NoError(t, err)
	st, _, err = st.CreateServer("git", `{"command":"uvx","args":["mcp-server-git"]}`)
	require.NoError(t, err)
	require.NoError(t, gateway.SaveStore(st))

	out, err := execute(t, NewAttachCmd(hclog.NewNullLogger()), "dev", "--server", "git")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Attached server 'git' to category 'dev' (order: 1)")

	names := make([]string, 0, 2)
	for _, srv := range loadStore(t, path).CategoryServers(cat.ID) {
		names = append(names, srv.Name)
	}
	assert.Equal(t, []string{"fs", "git"}, names)
}

func TestAttachCmd_BatchReportsPerServer(t *testing.T) {
	path := tempStore(t)
	cat, _ := seed(t, path, "dev", "fs", `{"command":"npx"}`)

	gateway := gatewayFor(t, path)
	st, err := gateway.LoadStore()
	require.NoError(t, err)
	st, _, err = st.CreateServer("git", `{"command":"uvx"}`)
	require.NoError(t, err)
	require.NoError(t, gateway.SaveStore(st))

	out, err := execute(t, NewAttachCmd(hclog.NewNullLogger()),
		"dev", "--server", "git", "--server", "ghost", "--server", "fs")
	require.Error(t, err)

	assert.Contains(t, out, "✓ Attached server 'git'")
	assert.Contains(t, out, "✗ Server 'ghost' not found, skipping")
	// The failure in the middle does not roll back the rest of the batch.
	assert.Contains(t, out, "✓ Attached server 'fs'")

	assert.Len(t, loadStore(t, path).CategoryServers(cat.ID), 3)
}

func TestAttachCmd_WarnsOnNameCollision(t *testing.T) {
	path := tempStore(t)
	seed(t, path, "dev", "fs", `{"command":"npx"}`)

	out, err := execute(t, NewAttachCmd(hclog.NewNullLogger()), "dev", "--server", "fs")
	require.NoError(t, err)
	assert.Contains(t, out, "already contains a server named 'fs'")
}

func TestDetachCmd_RemovesOldestAttachment(t *testing.T) {
	path := tempStore(t)
	cat, _ := seed(t, path, "dev", "fs", `{"command":"npx"}`)

	_, err := execute(t, NewAttachCmd(hclog.NewNullLogger()), "dev", "--server", "fs")
	require.NoError(t, err)
	require.Len(t, loadStore(t, path).CategoryServers(cat.ID), 2)

	out, err := execute(t, NewDetachCmd(hclog.NewNullLogger()), "dev", "--server", "fs")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Detached server 'fs' from category 'dev'")

	assert.Len(t, loadStore(t, path).CategoryServers(cat.ID), 1)
}

func TestDetachCmd_NotAttached(t *testing.T) {
	path := tempStore(t)
	seed(t, path, "dev", "fs", `{"command":"npx"}`)

	gateway := gatewayFor(t, path)
	st, err := gateway.LoadStore()
	require.NoError(t, err)
	st, _, err = st.CreateServer("git", `{"command":"uvx"}`)
	require.NoError(t, err)
	require.NoError(t, gateway.SaveStore(st))

	_, err = execute(t, NewDetachCmd(hclog.NewNullLogger()), "dev", "--server", "git")
	require.Error(t, err)
}
