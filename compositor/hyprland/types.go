package hyprland

// Wire structs for the JSON responses of the j/-prefixed hyprctl commands.
// Only the fields the client mirrors are decoded.

type wireWorkspace struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Monitor string `json:"monitor"`
}

type wireWindow struct {
	Address    string `json:"address"`
	Title      string `json:"title"`
	Class      string `json:"class"`
	At         [2]int `json:"at"`
	Size       [2]int `json:"size"`
	Floating   bool   `json:"floating"`
	Fullscreen int    `json:"fullscreen"`
	Workspace  struct {
		ID int `json:"id"`
	} `json:"workspace"`
}

type wireClient struct {
	Address   string `json:"address"`
	Workspace struct {
		ID int `json:"id"`
	} `json:"workspace"`
}

type wireDevices struct {
	Keyboards []wireKeyboard `json:"keyboards"`
}

type wireKeyboard struct {
	Name         string `json:"name"`
	Layout       string `json:"layout"`
	ActiveKeymap string `json:"active_keymap"`
	Main         bool   `json:"main"`
}

type wireMonitor struct {
	Name    string `json:"name"`
	Focused bool   `json:"focused"`
}
