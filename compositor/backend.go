package compositor

// EventKind classifies a decoded compositor event by the state it
// invalidates. Backends translate their wire discriminators into kinds; the
// Client maps kinds to resync routines.
type EventKind int

const (
	// EventUnknown is a discriminator with no dispatch entry. It is logged
	// and skipped, never treated as an error, so new compositor protocol
	// additions stay harmless.
	EventUnknown EventKind = iota
	// EventWorkspacesChanged invalidates the workspace topology and the
	// active workspace.
	EventWorkspacesChanged
	// EventActiveWindowChanged invalidates the focused window.
	EventActiveWindowChanged
	// EventFocusChanged invalidates both the focused window and the
	// focused output (window focus moves output focus with it).
	EventFocusChanged
	// EventMonitorFocusChanged invalidates the workspace topology and the
	// focused output.
	EventMonitorFocusChanged
	// EventKeyboardLayoutChanged invalidates the keyboard layout state.
	EventKeyboardLayoutChanged
	// EventWindowUrgent flags the window in UrgentWindow as urgent. No
	// resync is needed; the event carries the full payload.
	EventWindowUrgent
)

// Event is one decoded record from the compositor's event stream.
type Event struct {
	Kind EventKind
	// UrgentWindow is the window address for EventWindowUrgent.
	UrgentWindow string
	// Raw is the wire discriminator, kept for logging.
	Raw string
}

// EventSource is a live event stream. Next blocks until an event arrives
// and fails permanently once the connection is lost; Close unblocks a
// pending Next.
type EventSource interface {
	Next() (Event, error)
	Close() error
}

// Backend is one wire encoding of the compositor contract. Two
// implementations exist (hyprland, niri); all dispatch and caching logic is
// backend-agnostic and lives in Client.
//
// Sync methods perform one command round trip returning the canonical
// current value for their topic. Command methods (SwitchToWorkspace,
// NextKeyboardLayout, Send) never mutate cached state; the resulting
// compositor event does.
type Backend interface {
	// Name identifies the backend ("hyprland", "niri").
	Name() string
	// Socket returns the command socket path.
	Socket() string
	// Available re-checks whether the compositor socket exists right now.
	// The compositor may start after this process, so the result is never
	// cached.
	Available() bool

	// OpenEvents opens the long-lived event stream connection.
	OpenEvents() (EventSource, error)

	SyncWorkspaces() ([]Workspace, error)
	SyncActiveWindow() (*Window, error)
	SyncKeyboardLayout() (KeyboardLayout, error)
	SyncActiveOutput() (*Output, error)

	// WindowWorkspace resolves the workspace a window currently sits on.
	// Returns 0 without error when the window is not found (it may have
	// closed between the event and the lookup).
	WindowWorkspace(address string) (int, error)

	SwitchToWorkspace(target int) error
	NextKeyboardLayout() error

	// Send passes a raw backend-specific command through and returns the
	// raw response.
	Send(command string) ([]byte, error)
}
