// Package hyprland implements the compositor backend for Hyprland's IPC:
// hyprctl-style text commands on .socket.sock (JSON responses via the j/
// prefix) and >>-delimited event lines on .socket2.sock.
package hyprland

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ignis-sh/ignis/compositor"
	"github.com/ignis-sh/ignis/config"
	"github.com/ignis-sh/ignis/errors"
	"github.com/ignis-sh/ignis/ipc"
	"github.com/ignis-sh/ignis/logging"
	"github.com/sirupsen/logrus"
)

const (
	runtimeEnv = "XDG_RUNTIME_DIR"
	sigEnv     = "HYPRLAND_INSTANCE_SIGNATURE"

	commandSockName = ".socket.sock"
	eventSockName   = ".socket2.sock"
)

// Backend talks to a running Hyprland instance.
type Backend struct {
	commandSocket string
	eventSocket   string
	log           *logrus.Entry
}

// New creates a Hyprland backend. Socket paths come from
// $XDG_RUNTIME_DIR/hypr/$HYPRLAND_INSTANCE_SIGNATURE unless overridden in
// the configuration.
func New(cfg config.HyprlandConfig) *Backend {
	b := &Backend{
		commandSocket: cfg.CommandSocket,
		eventSocket:   cfg.EventSocket,
		log:           logging.NewLogger("hyprland"),
	}

	if b.commandSocket == "" || b.eventSocket == "" {
		dir := socketDir()
		if b.commandSocket == "" && dir != "" {
			b.commandSocket = filepath.Join(dir, commandSockName)
		}
		if b.eventSocket == "" && dir != "" {
			b.eventSocket = filepath.Join(dir, eventSockName)
		}
	}

	return b
}

// Detected reports whether a Hyprland instance appears to be running for
// this session.
func Detected() bool {
	dir := socketDir()
	return dir != "" && ipc.Available(filepath.Join(dir, commandSockName))
}

func socketDir() string {
	runtime := os.Getenv(runtimeEnv)
	sig := os.Getenv(sigEnv)
	if runtime == "" || sig == "" {
		return ""
	}
	return filepath.Join(runtime, "hypr", sig)
}

func (b *Backend) Name() string   { return "hyprland" }
func (b *Backend) Socket() string { return b.commandSocket }

// Available re-checks the command socket on every call; Hyprland may start
// after this process.
func (b *Backend) Available() bool {
	return ipc.Available(b.commandSocket)
}

// Send sends one hyprctl-style command and returns the raw response. Use
// the j/ prefix for JSON responses.
func (b *Backend) Send(command string) ([]byte, error) {
	if !b.Available() {
		return nil, errors.IPCUnavailable(b.Name(), b.commandSocket)
	}
	return ipc.Command(b.commandSocket, []byte(command))
}

// jsonCommand sends a j/-prefixed command and decodes the JSON response.
func (b *Backend) jsonCommand(command string, out interface{}) error {
	resp, err := b.Send("j/" + command)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return errors.Wrap(err, errors.ErrCodeCommandFailed, "failed to decode response").
			WithDetail("command", command)
	}
	return nil
}

// checkedCommand sends a command whose success response is the literal
// "ok"; anything else is an application-level rejection.
func (b *Backend) checkedCommand(command string) error {
	resp, err := b.Send(command)
	if err != nil {
		return err
	}
	if reply := strings.TrimSpace(string(resp)); reply != "ok" {
		return errors.CommandFailed(b.Name(), command, reply)
	}
	return nil
}

// SyncWorkspaces fetches the workspace list and the active workspace in
// one round trip each. Hyprland's workspace id is its user-facing ordinal,
// so it doubles as the sort index.
func (b *Backend) SyncWorkspaces() ([]compositor.Workspace, error) {
	var wire []wireWorkspace
	if err := b.jsonCommand("workspaces", &wire); err != nil {
		return nil, err
	}

	var active wireWorkspace
	if err := b.jsonCommand("activeworkspace", &active); err != nil {
		return nil, err
	}

	workspaces := make([]compositor.Workspace, 0, len(wire))
	for _, w := range wire {
		workspaces = append(workspaces, compositor.Workspace{
			ID:        w.ID,
			Index:     w.ID,
			Name:      w.Name,
			Output:    w.Monitor,
			IsActive:  w.ID == active.ID,
			IsFocused: w.ID == active.ID,
		})
	}
	return workspaces, nil
}

// SyncActiveWindow fetches the focused window. Hyprland answers with an
// empty object when nothing is focused.
func (b *Backend) SyncActiveWindow() (*compositor.Window, error) {
	var wire wireWindow
	if err := b.jsonCommand("activewindow", &wire); err != nil {
		return nil, err
	}
	if wire.Address == "" {
		return nil, nil
	}

	return &compositor.Window{
		Address:     strings.TrimPrefix(wire.Address, "0x"),
		Title:       wire.Title,
		Class:       wire.Class,
		X:           wire.At[0],
		Y:           wire.At[1],
		Width:       wire.Size[0],
		Height:      wire.Size[1],
		WorkspaceID: wire.Workspace.ID,
		Floating:    wire.Floating,
		Fullscreen:  wire.Fullscreen != 0,
	}, nil
}

// SyncKeyboardLayout reads the main keyboard's active keymap. Hyprland
// only reports the active keymap name, so the layout list has a single
// entry.
func (b *Backend) SyncKeyboardLayout() (compositor.KeyboardLayout, error) {
	kb, err := b.mainKeyboard()
	if err != nil {
		return compositor.KeyboardLayout{}, err
	}

	return compositor.KeyboardLayout{
		Names:      []string{kb.ActiveKeymap},
		CurrentIdx: 0,
	}, nil
}

// SyncActiveOutput finds the focused monitor.
func (b *Backend) SyncActiveOutput() (*compositor.Output, error) {
	var monitors []wireMonitor
	if err := b.jsonCommand("monitors", &monitors); err != nil {
		return nil, err
	}

	for _, m := range monitors {
		if m.Focused {
			return &compositor.Output{Name: m.Name, Focused: true}, nil
		}
	}
	return nil, nil
}

// WindowWorkspace resolves a window's workspace through the client list.
// Urgent events carry only the window address; the workspace is recovered
// here.
func (b *Backend) WindowWorkspace(address string) (int, error) {
	var clients []wireClient
	if err := b.jsonCommand("clients", &clients); err != nil {
		return 0, err
	}

	for _, c := range clients {
		if strings.TrimPrefix(c.Address, "0x") == address {
			return c.Workspace.ID, nil
		}
	}
	return 0, nil
}

// SwitchToWorkspace dispatches a workspace switch by id.
func (b *Backend) SwitchToWorkspace(target int) error {
	return b.checkedCommand(fmt.Sprintf("dispatch workspace %d", target))
}

// NextKeyboardLayout cycles the main keyboard to its next layout.
func (b *Backend) NextKeyboardLayout() error {
	kb, err := b.mainKeyboard()
	if err != nil {
		return err
	}
	return b.checkedCommand(fmt.Sprintf("switchxkblayout %s next", kb.Name))
}

func (b *Backend) mainKeyboard() (wireKeyboard, error) {
	var devices wireDevices
	if err := b.jsonCommand("devices", &devices); err != nil {
		return wireKeyboard{}, err
	}

	for _, kb := range devices.Keyboards {
		if kb.Main {
			return kb, nil
		}
	}
	return wireKeyboard{}, errors.CommandFailed(b.Name(), "j/devices", "no main keyboard")
}
