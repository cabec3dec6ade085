package niri

import "encoding/json"

// Wire structs for the niri IPC protocol. Requests are single JSON values
// terminated by a newline; replies are an envelope with either an Ok
// payload keyed by the request name or an Err string.

type wireReply struct {
	Ok  map[string]json.RawMessage `json:"Ok"`
	Err *string                    `json:"Err"`
}

type wireWorkspace struct {
	ID             uint64  `json:"id"`
	Idx            int     `json:"idx"`
	Name           *string `json:"name"`
	Output         string  `json:"output"`
	IsActive       bool    `json:"is_active"`
	IsFocused      bool    `json:"is_focused"`
	ActiveWindowID *uint64 `json:"active_window_id"`
}

type wireWindow struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	AppID       string  `json:"app_id"`
	WorkspaceID *uint64 `json:"workspace_id"`
	IsFocused   bool    `json:"is_focused"`
	IsFloating  bool    `json:"is_floating"`
	IsUrgent    bool    `json:"is_urgent"`
	Layout      struct {
		WindowSize [2]float64 `json:"window_size"`
	} `json:"layout"`
}

type wireKeyboardLayouts struct {
	Names      []string `json:"names"`
	CurrentIdx int      `json:"current_idx"`
}

type wireOutput struct {
	Name string `json:"name"`
}

// Action requests. Field order matters only for readability; every level
// has a single key.

type actionRequest struct {
	Action interface{} `json:"Action"`
}

type focusWorkspaceAction struct {
	FocusWorkspace struct {
		Reference workspaceReference `json:"reference"`
	} `json:"FocusWorkspace"`
}

type workspaceReference struct {
	Index int `json:"Index"`
}

type switchLayoutAction struct {
	SwitchLayout struct {
		Layout string `json:"layout"`
	} `json:"SwitchLayout"`
}

// Event records: one JSON object per line whose single top-level key names
// the event type. Only the payloads the client inspects are decoded.

type urgencyChangedPayload struct {
	ID     uint64 `json:"id"`
	Urgent bool   `json:"urgent"`
}
