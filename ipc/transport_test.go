package ipc_test

import (
	"path/filepath"
	"testing"

	"github.com/ignis-sh/ignis/errors"
	"github.com/ignis-sh/ignis/ipc"
	"github.com/ignis-sh/ignis/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRoundTrip(t *testing.T) {
	path := testutil.SocketPath(t, "cmd.sock")
	testutil.ServeCommands(t, path, func(req string) string {
		assert.Equal(t, "j/workspaces", req)
		return `[{"id":1}]`
	})

	resp, err := ipc.Command(path, []byte("j/workspaces"))
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(resp))
}

func TestCommandMissingSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.sock")

	_, err := ipc.Command(path, []byte("j/workspaces"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeIPCUnavailable))
}

func TestAvailable(t *testing.T) {
	path := testutil.SocketPath(t, "cmd.sock")
	assert.False(t, ipc.Available(path))
	assert.False(t, ipc.Available(""))

	testutil.ServeCommands(t, path, func(string) string { return "" })
	assert.True(t, ipc.Available(path))

	// A regular file is not a socket
	regular := filepath.Join(t.TempDir(), "file")
	writeFile(t, regular)
	assert.False(t, ipc.Available(regular))
}

func TestEachCommandUsesFreshConnection(t *testing.T) {
	path := testutil.SocketPath(t, "cmd.sock")
	srv := testutil.ServeCommands(t, path, func(req string) string { return "ok" })

	for i := 0; i < 3; i++ {
		_, err := ipc.Command(path, []byte("dispatch workspace 1"))
		require.NoError(t, err)
	}

	assert.Len(t, srv.WaitForRequests(3), 3)
}
