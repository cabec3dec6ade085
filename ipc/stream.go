package ipc

import (
	"bufio"
	"net"
	"strings"
	"time"

	"github.com/ignis-sh/ignis/errors"
)

const (
	// Workspace and window listings can be large; allow event records up
	// to maxRecordSize before treating the stream as corrupt.
	initialBufSize = 64 * 1024
	maxRecordSize  = 1024 * 1024
)

// Stream is a long-lived event connection delivering newline-delimited
// records. A record split across socket reads is buffered and reassembled;
// blank lines are skipped.
type Stream struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

// OpenStream connects to the socket and, if handshake is non-empty, writes
// it before any reads (some protocols require a subscription message to
// start the stream). The connection lives until Close.
func OpenStream(path string, handshake []byte) (*Stream, error) {
	conn, err := net.DialTimeout("unix", path, DefaultTimeout)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIPCUnavailable, "could not connect to event socket").
			WithDetail("socket", path)
	}

	if len(handshake) > 0 {
		// The stream only starts once the handshake is delivered, so a
		// deadline failure is an error, never a reason to skip the write.
		if err := conn.SetWriteDeadline(time.Now().Add(DefaultTimeout)); err != nil {
			conn.Close()
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to set handshake deadline").
				WithDetail("socket", path)
		}
		if _, err := conn.Write(handshake); err != nil {
			conn.Close()
			return nil, errors.Wrap(err, errors.ErrCodeIPCUnavailable, "failed to send stream handshake").
				WithDetail("socket", path)
		}
		if err := conn.SetWriteDeadline(time.Time{}); err != nil {
			conn.Close()
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to clear handshake deadline").
				WithDetail("socket", path)
		}
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, initialBufSize), maxRecordSize)

	return &Stream{conn: conn, scanner: scanner}, nil
}

// Next blocks until the next non-blank record arrives and returns it
// without the trailing newline. It returns an error when the connection is
// closed or the scan fails; the stream is not restartable after that.
func (s *Stream) Next() (string, error) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		return line, nil
	}

	if err := s.scanner.Err(); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeIPCUnavailable, "event stream read failed")
	}
	return "", errors.New(errors.ErrCodeIPCUnavailable, "event stream closed")
}

// Close closes the underlying connection, unblocking any pending Next.
func (s *Stream) Close() error {
	return s.conn.Close()
}
