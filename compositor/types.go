// Package compositor mirrors Wayland compositor state (workspaces, windows,
// keyboard layout, outputs) into an in-memory snapshot with per-topic change
// notifications, and issues commands back to the compositor. The wire
// protocols live in the backend subpackages; this package holds the
// backend-agnostic types, state cache, and dispatch loop.
package compositor

// Topic names a category of mirrored state. Observers subscribe to topics
// individually.
type Topic string

const (
	TopicWorkspaces      Topic = "workspaces"
	TopicActiveWorkspace Topic = "active-workspace"
	TopicActiveWindow    Topic = "active-window"
	TopicKeyboardLayout  Topic = "keyboard-layout"
	TopicActiveOutput    Topic = "active-output"
	TopicUrgentWindows   Topic = "urgent-windows"
)

// Topics lists every topic in a stable order.
func Topics() []Topic {
	return []Topic{
		TopicWorkspaces,
		TopicActiveWorkspace,
		TopicActiveWindow,
		TopicKeyboardLayout,
		TopicActiveOutput,
		TopicUrgentWindows,
	}
}

// Workspace is a compositor workspace. Identity originates from the
// compositor; the client only mirrors it.
type Workspace struct {
	// ID is unique within the compositor's lifetime.
	ID int `json:"id"`
	// Index is the position of the workspace on its output. Display order
	// sorts by Index ascending, never by arrival order.
	Index int `json:"index"`
	Name  string `json:"name"`
	// Output is the name of the output the workspace belongs to.
	Output string `json:"output"`
	// IsActive marks the visible workspace per output.
	IsActive bool `json:"is_active"`
	// IsFocused marks the single globally focused workspace. A focused
	// workspace is always active.
	IsFocused bool `json:"is_focused"`
}

// Window is a mapped toplevel window.
type Window struct {
	// Address is an opaque identifier, unique while the window is mapped.
	Address     string `json:"address"`
	Title       string `json:"title"`
	Class       string `json:"class"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	WorkspaceID int    `json:"workspace_id"`
	Floating    bool   `json:"floating"`
	Fullscreen  bool   `json:"fullscreen"`
}

// KeyboardLayout is the configured layout list plus the active index. It is
// replaced wholesale on layout-change events, never partially updated.
type KeyboardLayout struct {
	Names      []string `json:"names"`
	CurrentIdx int      `json:"current_idx"`
}

// Active returns the name of the currently active layout.
func (k KeyboardLayout) Active() string {
	if k.CurrentIdx < 0 || k.CurrentIdx >= len(k.Names) {
		return ""
	}
	return k.Names[k.CurrentIdx]
}

// Output is a display output.
type Output struct {
	Name    string `json:"name"`
	Focused bool   `json:"focused"`
}

// Change is delivered to subscribers when a topic's cached value is
// replaced.
type Change struct {
	Topic Topic
}
