// Package testutil provides fake compositor sockets for tests: a scripted
// command responder and a controllable event stream.
package testutil

import (
	"bufio"
	"io"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// SocketPath returns a unix socket path inside the test's temp directory.
// The name is kept short because unix socket paths have a hard length limit.
func SocketPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// CommandServer answers one-shot command connections: each accepted
// connection is read until the client half-closes, passed to the handler,
// and answered with the handler's response.
type CommandServer struct {
	t        *testing.T
	listener net.Listener

	mu       sync.Mutex
	requests []string
}

// ServeCommands starts a CommandServer on the given socket path. It is shut
// down automatically when the test ends.
func ServeCommands(t *testing.T, path string, handler func(request string) string) *CommandServer {
	t.Helper()

	ln, err := net.Listen("unix", path)
	require.NoError(t, err)

	srv := &CommandServer{t: t, listener: ln}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go srv.handle(conn, handler)
		}
	}()

	return srv
}

func (s *CommandServer) handle(conn net.Conn, handler func(string) string) {
	defer conn.Close()

	data, err := io.ReadAll(conn)
	if err != nil {
		return
	}

	req := strings.TrimRight(string(data), "\n")
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	_, _ = conn.Write([]byte(handler(req)))
}

// Requests returns every request received so far, in order.
func (s *CommandServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// WaitForRequests blocks until at least n requests have been received.
func (s *CommandServer) WaitForRequests(n int) []string {
	s.t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		count := len(s.requests)
		s.mu.Unlock()
		if count >= n {
			return s.Requests()
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.t.Fatalf("timed out waiting for %d requests, got %d", n, len(s.Requests()))
	return nil
}

// EventServer owns the event socket: it accepts a single client connection
// and lets the test push raw event records to it.
type EventServer struct {
	t        *testing.T
	listener net.Listener

	mu   sync.Mutex
	conn net.Conn
	rd   *bufio.Reader

	accepted chan struct{}
}

// ServeEvents starts an EventServer on the given socket path.
func ServeEvents(t *testing.T, path string) *EventServer {
	t.Helper()

	ln, err := net.Listen("unix", path)
	require.NoError(t, err)

	srv := &EventServer{t: t, listener: ln, accepted: make(chan struct{})}
	t.Cleanup(func() { srv.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		srv.mu.Lock()
		srv.conn = conn
		srv.rd = bufio.NewReader(conn)
		srv.mu.Unlock()
		close(srv.accepted)
	}()

	return srv
}

// AwaitClient blocks until a client has connected.
func (s *EventServer) AwaitClient() {
	s.t.Helper()
	select {
	case <-s.accepted:
	case <-time.After(5 * time.Second):
		s.t.Fatal("timed out waiting for event stream client")
	}
}

// ReadHandshake reads one newline-terminated handshake message from the
// connected client.
func (s *EventServer) ReadHandshake() string {
	s.t.Helper()
	s.AwaitClient()

	line, err := s.rd.ReadString('\n')
	require.NoError(s.t, err)
	return strings.TrimRight(line, "\n")
}

// Emit writes raw bytes to the connected client. Records normally end with
// a newline, but Emit does not add one so tests can split a record across
// multiple writes.
func (s *EventServer) Emit(raw string) {
	s.t.Helper()
	s.AwaitClient()

	_, err := s.conn.Write([]byte(raw))
	require.NoError(s.t, err)
}

// EmitLine writes one complete newline-terminated event record.
func (s *EventServer) EmitLine(record string) {
	s.Emit(record + "\n")
}

// Close tears down the client connection and the listener.
func (s *EventServer) Close() {
	_ = s.listener.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}
