// Package ipc implements the Unix domain socket transport shared by the
// compositor backends: one-shot command round trips and a long-lived,
// line-delimited event stream.
package ipc

import (
	"io"
	"net"
	"os"
	"time"

	"github.com/ignis-sh/ignis/errors"
)

// DefaultTimeout bounds a single command round trip. Commands are short
// lived; a compositor that does not answer within this window is treated
// as failed rather than retried.
const DefaultTimeout = 5 * time.Second

// Available reports whether the socket path currently exists. The
// compositor may start after this process, so callers re-check before
// every command instead of caching the result.
func Available(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSocket != 0
}

// Command opens a fresh connection to the socket, writes the payload, and
// reads the response until the peer closes its write side. The connection
// is closed before returning; the protocol is not session-oriented for
// commands.
func Command(path string, payload []byte) ([]byte, error) {
	return CommandWithTimeout(path, payload, DefaultTimeout)
}

// CommandWithTimeout is Command with an explicit deadline for the entire
// round trip.
func CommandWithTimeout(path string, payload []byte, timeout time.Duration) ([]byte, error) {
	conn, err := net.DialTimeout("unix", path, timeout)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIPCUnavailable, "could not connect to compositor socket").
			WithDetail("socket", path)
	}
	defer conn.Close()

	// Deadline covers the entire exchange
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to set socket deadline")
	}

	if _, err := conn.Write(payload); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIPCUnavailable, "failed to send request").
			WithDetail("socket", path)
	}

	// Signal end of request to peers that read until EOF
	if uc, ok := conn.(*net.UnixConn); ok {
		_ = uc.CloseWrite()
	}

	resp, err := io.ReadAll(conn)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIPCUnavailable, "failed to read response").
			WithDetail("socket", path)
	}

	return resp, nil
}
