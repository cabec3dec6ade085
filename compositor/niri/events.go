package niri

import (
	"encoding/json"
	"strconv"

	"github.com/ignis-sh/ignis/compositor"
	"github.com/ignis-sh/ignis/errors"
	"github.com/ignis-sh/ignis/ipc"
	"github.com/sirupsen/logrus"
)

// eventStreamHandshake subscribes the connection to the event stream. Niri
// acknowledges it with an {"Ok":{"Handled":null}} line before the events
// start.
var eventStreamHandshake = []byte("\"EventStream\"\n")

// eventKinds maps top-level event keys to the state they invalidate. Niri
// emits more event types than these; anything absent here is reported as
// unknown and skipped.
var eventKinds = map[string]compositor.EventKind{
	"WorkspacesChanged":            compositor.EventWorkspacesChanged,
	"WorkspaceActivated":           compositor.EventWorkspacesChanged,
	"KeyboardLayoutsChanged":       compositor.EventKeyboardLayoutChanged,
	"KeyboardLayoutSwitched":       compositor.EventKeyboardLayoutChanged,
	"WorkspaceActiveWindowChanged": compositor.EventFocusChanged,
	"WindowFocusChanged":           compositor.EventFocusChanged,
	"WindowOpenedOrChanged":        compositor.EventActiveWindowChanged,
	"WindowUrgencyChanged":         compositor.EventWindowUrgent,
}

// OpenEvents opens a dedicated connection and subscribes it to the event
// stream.
func (b *Backend) OpenEvents() (compositor.EventSource, error) {
	if !b.Available() {
		return nil, errors.IPCUnavailable(b.Name(), b.socket)
	}

	stream, err := ipc.OpenStream(b.socket, eventStreamHandshake)
	if err != nil {
		return nil, err
	}

	return &eventSource{stream: stream, log: b.log}, nil
}

type eventSource struct {
	stream *ipc.Stream
	log    *logrus.Entry
}

// Next returns the next classified event. Reply envelopes and malformed
// records are logged and skipped; a single bad record never terminates the
// stream.
func (s *eventSource) Next() (compositor.Event, error) {
	for {
		line, err := s.stream.Next()
		if err != nil {
			return compositor.Event{}, err
		}

		var record map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &record); err != nil || len(record) != 1 {
			s.log.WithError(errors.MalformedEvent(err, line)).Warn("skipping event record")
			continue
		}

		name, payload := singleEntry(record)
		if name == "Ok" || name == "Err" {
			// Handshake acknowledgement, not an event.
			continue
		}

		kind, ok := eventKinds[name]
		if !ok {
			return compositor.Event{Kind: compositor.EventUnknown, Raw: name}, nil
		}

		if kind == compositor.EventWindowUrgent {
			var urgency urgencyChangedPayload
			if err := json.Unmarshal(payload, &urgency); err != nil {
				s.log.WithError(errors.MalformedEvent(err, line)).Warn("skipping urgency event")
				continue
			}
			if !urgency.Urgent {
				// Urgency only clears when the window gains focus.
				continue
			}
			return compositor.Event{
				Kind:         kind,
				UrgentWindow: strconv.FormatUint(urgency.ID, 10),
				Raw:          name,
			}, nil
		}

		return compositor.Event{Kind: kind, Raw: name}, nil
	}
}

func (s *eventSource) Close() error {
	return s.stream.Close()
}

func singleEntry(record map[string]json.RawMessage) (string, json.RawMessage) {
	for name, payload := range record {
		return name, payload
	}
	return "", nil
}
