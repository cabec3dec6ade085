package hyprland_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignis-sh/ignis/compositor"
	"github.com/ignis-sh/ignis/compositor/hyprland"
	"github.com/ignis-sh/ignis/config"
	"github.com/ignis-sh/ignis/errors"
	"github.com/ignis-sh/ignis/testutil"
)

// fixture wires a backend to fake command and event sockets.
func fixture(t *testing.T, handler func(request string) string) (*hyprland.Backend, *testutil.CommandServer, *testutil.EventServer) {
	t.Helper()

	cmdSock := testutil.SocketPath(t, "cmd.sock")
	evSock := testutil.SocketPath(t, "ev.sock")

	cmds := testutil.ServeCommands(t, cmdSock, handler)
	events := testutil.ServeEvents(t, evSock)

	b := hyprland.New(config.HyprlandConfig{
		CommandSocket: cmdSock,
		EventSocket:   evSock,
	})
	return b, cmds, events
}

// queryHandler answers the j/ state queries with a small fixed scene.
func queryHandler(request string) string {
	switch request {
	case "j/workspaces":
		return `[
			{"id": 3, "name": "3", "monitor": "DP-1"},
			{"id": 1, "name": "web", "monitor": "DP-1"},
			{"id": 2, "name": "2", "monitor": "HDMI-A-1"}
		]`
	case "j/activeworkspace":
		return `{"id": 1, "name": "web", "monitor": "DP-1"}`
	case "j/activewindow":
		return `{
			"address": "0x5934277460f0",
			"title": "editor",
			"class": "foot",
			"at": [10, 20],
			"size": [800, 600],
			"floating": false,
			"fullscreen": 0,
			"workspace": {"id": 1}
		}`
	case "j/devices":
		return `{"keyboards": [
			{"name": "virtual-kbd", "layout": "us,de", "active_keymap": "English (US)", "main": false},
			{"name": "at-keyboard", "layout": "us,de", "active_keymap": "German", "main": true}
		]}`
	case "j/clients":
		return `[
			{"address": "0x5934277460f0", "workspace": {"id": 1}},
			{"address": "0x5934277470a0", "workspace": {"id": 2}}
		]`
	case "j/monitors":
		return `[
			{"name": "HDMI-A-1", "focused": false},
			{"name": "DP-1", "focused": true}
		]`
	default:
		return "ok"
	}
}

func TestSyncWorkspacesMarksActive(t *testing.T) {
	b, _, _ := fixture(t, queryHandler)

	workspaces, err := b.SyncWorkspaces()
	require.NoError(t, err)
	require.Len(t, workspaces, 3)

	for _, ws := range workspaces {
		assert.Equal(t, ws.ID, ws.Index)
		assert.Equal(t, ws.ID == 1, ws.IsActive)
		assert.Equal(t, ws.ID == 1, ws.IsFocused)
	}
}

func TestSyncActiveWindowStripsAddressPrefix(t *testing.T) {
	b, _, _ := fixture(t, queryHandler)

	window, err := b.SyncActiveWindow()
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, "5934277460f0", window.Address)
	assert.Equal(t, "foot", window.Class)
	assert.Equal(t, 1, window.WorkspaceID)
	assert.Equal(t, 800, window.Width)
	assert.False(t, window.Fullscreen)
}

func TestSyncActiveWindowNoneFocused(t *testing.T) {
	b, _, _ := fixture(t, func(string) string { return "{}" })

	window, err := b.SyncActiveWindow()
	require.NoError(t, err)
	assert.Nil(t, window)
}

func TestSyncKeyboardLayoutUsesMainKeyboard(t *testing.T) {
	b, _, _ := fixture(t, queryHandler)

	layout, err := b.SyncKeyboardLayout()
	require.NoError(t, err)
	assert.Equal(t, []string{"German"}, layout.Names)
	assert.Equal(t, "German", layout.Active())
}

func TestSyncKeyboardLayoutNoMainKeyboard(t *testing.T) {
	b, _, _ := fixture(t, func(string) string { return `{"keyboards": []}` })

	_, err := b.SyncKeyboardLayout()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCommandFailed, errors.GetCode(err))
}

func TestWindowWorkspaceResolvesViaClientList(t *testing.T) {
	b, cmds, _ := fixture(t, queryHandler)

	id, err := b.WindowWorkspace("5934277470a0")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
	assert.Equal(t, []string{"j/clients"}, cmds.Requests())

	// A window that closed before the lookup resolves to no workspace.
	id, err = b.WindowWorkspace("deadbeef")
	require.NoError(t, err)
	assert.Equal(t, 0, id)
}

func TestSyncActiveOutput(t *testing.T) {
	b, _, _ := fixture(t, queryHandler)

	output, err := b.SyncActiveOutput()
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "DP-1", output.Name)
}

func TestSwitchToWorkspaceWireFormat(t *testing.T) {
	b, cmds, _ := fixture(t, func(string) string { return "ok" })

	require.NoError(t, b.SwitchToWorkspace(3))
	assert.Equal(t, []string{"dispatch workspace 3"}, cmds.Requests())
}

func TestSwitchToWorkspaceRejected(t *testing.T) {
	b, _, _ := fixture(t, func(string) string { return "Invalid dispatcher" })

	err := b.SwitchToWorkspace(99)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCommandFailed, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Invalid dispatcher")
}

func TestNextKeyboardLayoutTargetsMainKeyboard(t *testing.T) {
	b, cmds, _ := fixture(t, queryHandler)

	require.NoError(t, b.NextKeyboardLayout())
	requests := cmds.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "j/devices", requests[0])
	assert.Equal(t, "switchxkblayout at-keyboard next", requests[1])
}

func TestCommandsUnavailableWithoutSocket(t *testing.T) {
	b := hyprland.New(config.HyprlandConfig{
		CommandSocket: testutil.SocketPath(t, "gone.sock"),
		EventSocket:   testutil.SocketPath(t, "gone2.sock"),
	})

	assert.False(t, b.Available())

	_, err := b.Send("j/version")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIPCUnavailable, errors.GetCode(err))

	_, err = b.OpenEvents()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIPCUnavailable, errors.GetCode(err))
}

func TestEventClassification(t *testing.T) {
	b, _, events := fixture(t, queryHandler)

	src, err := b.OpenEvents()
	require.NoError(t, err)
	defer src.Close()

	events.EmitLine("workspace>>2")
	events.EmitLine("this line has no separator")
	events.EmitLine("activelayout>>at-keyboard,German")
	events.EmitLine("openlayer>>waybar")
	events.EmitLine("urgent>>5934277460f0")

	ev, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, compositor.EventWorkspacesChanged, ev.Kind)

	// The malformed line is skipped entirely.
	ev, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, compositor.EventKeyboardLayoutChanged, ev.Kind)

	ev, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, compositor.EventUnknown, ev.Kind)
	assert.Equal(t, "openlayer", ev.Raw)

	ev, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, compositor.EventWindowUrgent, ev.Kind)
	assert.Equal(t, "5934277460f0", ev.UrgentWindow)
}

func TestClientWorkspaceEventTriggersResync(t *testing.T) {
	b, cmds, events := fixture(t, queryHandler)

	c := compositor.New(b)
	require.NoError(t, c.Start())
	defer c.Close()

	// Start issues one query per topic, plus the paired activeworkspace
	// fetch: workspaces, activeworkspace, activewindow, devices, monitors.
	cmds.WaitForRequests(5)

	ch := c.Subscribe(compositor.TopicWorkspaces)
	defer c.Unsubscribe(ch)

	events.EmitLine("workspace>>2")

	select {
	case change := <-ch:
		assert.Equal(t, compositor.TopicWorkspaces, change.Topic)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for workspace change")
	}

	requests := cmds.WaitForRequests(7)[5:]
	assert.Contains(t, requests, "j/workspaces")
	assert.Contains(t, requests, "j/activeworkspace")

	workspaces := c.Workspaces()
	require.Len(t, workspaces, 3)
	// Cached order is by index regardless of wire order.
	assert.Equal(t, 1, workspaces[0].ID)
	assert.Equal(t, 2, workspaces[1].ID)
	assert.Equal(t, 3, workspaces[2].ID)
}
