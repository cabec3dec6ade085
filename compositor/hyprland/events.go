package hyprland

import (
	"strings"

	"github.com/ignis-sh/ignis/compositor"
	"github.com/ignis-sh/ignis/errors"
	"github.com/ignis-sh/ignis/ipc"
	"github.com/sirupsen/logrus"
)

// eventSep separates the event name from its payload on .socket2.sock,
// e.g. "workspace>>2" or "urgent>>5934277460f0".
const eventSep = ">>"

// eventKinds maps wire event names to the state they invalidate. Hyprland
// emits far more event types than these; anything absent here is reported
// as unknown and skipped.
var eventKinds = map[string]compositor.EventKind{
	"workspace":        compositor.EventWorkspacesChanged,
	"createworkspace":  compositor.EventWorkspacesChanged,
	"destroyworkspace": compositor.EventWorkspacesChanged,
	"focusedmon":       compositor.EventMonitorFocusChanged,
	"activelayout":     compositor.EventKeyboardLayoutChanged,
	"activewindow":     compositor.EventActiveWindowChanged,
	"urgent":           compositor.EventWindowUrgent,
}

// OpenEvents connects to .socket2.sock. No handshake is required; Hyprland
// starts streaming immediately.
func (b *Backend) OpenEvents() (compositor.EventSource, error) {
	if !b.Available() {
		return nil, errors.IPCUnavailable(b.Name(), b.commandSocket)
	}

	stream, err := ipc.OpenStream(b.eventSocket, nil)
	if err != nil {
		return nil, err
	}

	return &eventSource{stream: stream, log: b.log}, nil
}

type eventSource struct {
	stream *ipc.Stream
	log    *logrus.Entry
}

// Next returns the next classified event. Malformed records are logged and
// skipped; a single bad record never terminates the stream.
func (s *eventSource) Next() (compositor.Event, error) {
	for {
		line, err := s.stream.Next()
		if err != nil {
			return compositor.Event{}, err
		}

		name, payload, found := strings.Cut(line, eventSep)
		if !found || name == "" {
			s.log.WithError(errors.MalformedEvent(nil, line)).Warn("skipping event record")
			continue
		}

		kind, ok := eventKinds[name]
		if !ok {
			return compositor.Event{Kind: compositor.EventUnknown, Raw: name}, nil
		}

		ev := compositor.Event{Kind: kind, Raw: name}
		if kind == compositor.EventWindowUrgent {
			ev.UrgentWindow = payload
		}
		return ev, nil
	}
}

func (s *eventSource) Close() error {
	return s.stream.Close()
}
