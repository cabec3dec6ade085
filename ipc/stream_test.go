package ipc_test

import (
	"bytes"
	"net"
	"os"
	"testing"
	"time"

	"github.com/ignis-sh/ignis/errors"
	"github.com/ignis-sh/ignis/ipc"
	"github.com/ignis-sh/ignis/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestStreamDeliversRecords(t *testing.T) {
	path := testutil.SocketPath(t, "ev.sock")
	srv := testutil.ServeEvents(t, path)

	stream, err := ipc.OpenStream(path, nil)
	require.NoError(t, err)
	defer stream.Close()

	srv.EmitLine("workspace>>2")
	srv.EmitLine("activewindow>>firefox,Mozilla Firefox")

	line, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "workspace>>2", line)

	line, err = stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "activewindow>>firefox,Mozilla Firefox", line)
}

func TestStreamReassemblesSplitRecord(t *testing.T) {
	path := testutil.SocketPath(t, "ev.sock")
	srv := testutil.ServeEvents(t, path)

	stream, err := ipc.OpenStream(path, nil)
	require.NoError(t, err)
	defer stream.Close()

	// One JSON record delivered across two socket writes must decode
	// identically to a single write
	srv.Emit(`{"Wor`)
	time.Sleep(20 * time.Millisecond)
	srv.Emit("kspaceActivated\":{\"id\":7}}\n")

	line, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, `{"WorkspaceActivated":{"id":7}}`, line)
}

func TestStreamSkipsBlankRecords(t *testing.T) {
	path := testutil.SocketPath(t, "ev.sock")
	srv := testutil.ServeEvents(t, path)

	stream, err := ipc.OpenStream(path, nil)
	require.NoError(t, err)
	defer stream.Close()

	srv.Emit("\n\n  \nworkspace>>3\n")

	line, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "workspace>>3", line)
}

func TestStreamHandshake(t *testing.T) {
	path := testutil.SocketPath(t, "ev.sock")
	srv := testutil.ServeEvents(t, path)

	stream, err := ipc.OpenStream(path, []byte("\"EventStream\"\n"))
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, `"EventStream"`, srv.ReadHandshake())
}

func TestOpenStreamHandshakeDeliveryFailure(t *testing.T) {
	path := testutil.SocketPath(t, "ev.sock")

	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	defer ln.Close()

	// The peer drops the connection without reading, so a handshake larger
	// than the socket buffer cannot be delivered.
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	handshake := bytes.Repeat([]byte("x"), 4*1024*1024)
	_, err = ipc.OpenStream(path, handshake)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeIPCUnavailable))
}

func TestStreamCloseUnblocksNext(t *testing.T) {
	path := testutil.SocketPath(t, "ev.sock")
	srv := testutil.ServeEvents(t, path)

	stream, err := ipc.OpenStream(path, nil)
	require.NoError(t, err)
	srv.AwaitClient()

	done := make(chan error, 1)
	go func() {
		_, err := stream.Next()
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, stream.Close())

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, errors.ErrCodeIPCUnavailable))
	case <-time.After(5 * time.Second):
		t.Fatal("Next did not unblock after Close")
	}
}

func TestOpenStreamMissingSocket(t *testing.T) {
	_, err := ipc.OpenStream(testutil.SocketPath(t, "missing.sock"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeIPCUnavailable))
}
