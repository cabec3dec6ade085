// Package niri implements the compositor backend for niri's IPC: newline
// terminated JSON requests on $NIRI_SOCKET with Ok/Err reply envelopes, and
// an event stream opened by an "EventStream" handshake on a second
// connection.
package niri

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/ignis-sh/ignis/compositor"
	"github.com/ignis-sh/ignis/config"
	"github.com/ignis-sh/ignis/errors"
	"github.com/ignis-sh/ignis/ipc"
	"github.com/ignis-sh/ignis/logging"
	"github.com/sirupsen/logrus"
)

const socketEnv = "NIRI_SOCKET"

// Backend talks to a running niri instance. Commands and the event stream
// use independent connections to the same socket; niri does not answer
// requests on a connection that subscribed to the event stream.
type Backend struct {
	socket string
	log    *logrus.Entry
}

// New creates a niri backend. The socket path comes from $NIRI_SOCKET
// unless overridden in the configuration.
func New(cfg config.NiriConfig) *Backend {
	socket := cfg.Socket
	if socket == "" {
		socket = os.Getenv(socketEnv)
	}
	return &Backend{
		socket: socket,
		log:    logging.NewLogger("niri"),
	}
}

// Detected reports whether a niri instance appears to be running for this
// session.
func Detected() bool {
	return ipc.Available(os.Getenv(socketEnv))
}

func (b *Backend) Name() string   { return "niri" }
func (b *Backend) Socket() string { return b.socket }

// Available re-checks the socket on every call; niri may start after this
// process.
func (b *Backend) Available() bool {
	return ipc.Available(b.socket)
}

// Send sends one raw JSON request (without trailing newline) and returns
// the raw reply line.
func (b *Backend) Send(command string) ([]byte, error) {
	if !b.Available() {
		return nil, errors.IPCUnavailable(b.Name(), b.socket)
	}
	return ipc.Command(b.socket, append([]byte(command), '\n'))
}

// request marshals a request value, sends it, and unwraps the reply
// envelope. An Err envelope means the transport reached niri but the
// operation was rejected.
func (b *Backend) request(req interface{}) (map[string]json.RawMessage, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode request")
	}

	resp, err := b.Send(string(payload))
	if err != nil {
		return nil, err
	}

	var reply wireReply
	if err := json.Unmarshal(resp, &reply); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCommandFailed, "failed to decode reply").
			WithDetail("request", string(payload))
	}
	if reply.Err != nil {
		return nil, errors.CommandFailed(b.Name(), string(payload), *reply.Err)
	}
	return reply.Ok, nil
}

// requestInto issues a named request ("Workspaces", "FocusedWindow", ...)
// and decodes the matching key of the Ok payload.
func (b *Backend) requestInto(name string, out interface{}) error {
	ok, err := b.request(name)
	if err != nil {
		return err
	}

	payload, found := ok[name]
	if !found {
		return errors.CommandFailed(b.Name(), name, "reply missing payload")
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrap(err, errors.ErrCodeCommandFailed, "failed to decode reply payload").
			WithDetail("request", name)
	}
	return nil
}

// SyncWorkspaces fetches the full workspace configuration.
func (b *Backend) SyncWorkspaces() ([]compositor.Workspace, error) {
	var wire []wireWorkspace
	if err := b.requestInto("Workspaces", &wire); err != nil {
		return nil, err
	}

	workspaces := make([]compositor.Workspace, 0, len(wire))
	for _, w := range wire {
		name := ""
		if w.Name != nil {
			name = *w.Name
		}
		workspaces = append(workspaces, compositor.Workspace{
			ID:        int(w.ID),
			Index:     w.Idx,
			Name:      name,
			Output:    w.Output,
			IsActive:  w.IsActive,
			IsFocused: w.IsFocused,
		})
	}
	return workspaces, nil
}

// SyncActiveWindow fetches the focused window; niri answers null when
// nothing is focused.
func (b *Backend) SyncActiveWindow() (*compositor.Window, error) {
	var wire *wireWindow
	if err := b.requestInto("FocusedWindow", &wire); err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, nil
	}

	workspaceID := 0
	if wire.WorkspaceID != nil {
		workspaceID = int(*wire.WorkspaceID)
	}
	return &compositor.Window{
		Address:     strconv.FormatUint(wire.ID, 10),
		Title:       wire.Title,
		Class:       wire.AppID,
		Width:       int(wire.Layout.WindowSize[0]),
		Height:      int(wire.Layout.WindowSize[1]),
		WorkspaceID: workspaceID,
		Floating:    wire.IsFloating,
	}, nil
}

// SyncKeyboardLayout fetches the configured layout names and the active
// index, replaced wholesale.
func (b *Backend) SyncKeyboardLayout() (compositor.KeyboardLayout, error) {
	var wire wireKeyboardLayouts
	if err := b.requestInto("KeyboardLayouts", &wire); err != nil {
		return compositor.KeyboardLayout{}, err
	}
	return compositor.KeyboardLayout{
		Names:      wire.Names,
		CurrentIdx: wire.CurrentIdx,
	}, nil
}

// SyncActiveOutput fetches the focused output; null when none is focused.
func (b *Backend) SyncActiveOutput() (*compositor.Output, error) {
	var wire *wireOutput
	if err := b.requestInto("FocusedOutput", &wire); err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, nil
	}
	return &compositor.Output{Name: wire.Name, Focused: true}, nil
}

// WindowWorkspace resolves a window's workspace through the window list.
// Urgency events carry only the window id; the workspace is recovered here.
func (b *Backend) WindowWorkspace(address string) (int, error) {
	var windows []wireWindow
	if err := b.requestInto("Windows", &windows); err != nil {
		return 0, err
	}

	for _, w := range windows {
		if strconv.FormatUint(w.ID, 10) == address && w.WorkspaceID != nil {
			return int(*w.WorkspaceID), nil
		}
	}
	return 0, nil
}

// SwitchToWorkspace focuses a workspace by index.
func (b *Backend) SwitchToWorkspace(target int) error {
	var action focusWorkspaceAction
	action.FocusWorkspace.Reference = workspaceReference{Index: target}

	_, err := b.request(actionRequest{Action: action})
	return err
}

// NextKeyboardLayout switches to the next configured layout.
func (b *Backend) NextKeyboardLayout() error {
	var action switchLayoutAction
	action.SwitchLayout.Layout = "Next"

	_, err := b.request(actionRequest{Action: action})
	return err
}
