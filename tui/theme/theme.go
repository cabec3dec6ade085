// Package theme centralizes the lipgloss styles shared by the CLI help
// renderer, the log formatter, and the status view.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// --- Kanagawa Dragon (dark) palette ---
const (
	green      = "#98BB6C"
	yellow     = "#FF9E3B"
	red        = "#FF5D62"
	cyan       = "#7E9CD8"
	blue       = "#7FB4CA"
	violet     = "#957FB8"
	lightText  = "#DCD7BA"
	mutedText  = "#727169"
	borderGray = "#363646"
	selected   = "#223249"
)

// Theme holds the styles used across ignisctl output.
type Theme struct {
	// Headers and titles
	Header lipgloss.Style
	Title  lipgloss.Style

	// Status indicators
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Text styles - visual hierarchy
	Accent   lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	// Container styles
	Box lipgloss.Style
}

// DefaultTheme is the theme instance used by all ignisctl surfaces.
var DefaultTheme = initDefaultTheme()

func initDefaultTheme() *Theme {
	return &Theme{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cyan)),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(lightText)),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color(green)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(red)),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(yellow)),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color(blue)),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(violet)),
		Bold:     lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(mutedText)),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color(selected)),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(borderGray)).
			Padding(0, 1),
	}
}

// RenderHeader renders text using the default header style.
func RenderHeader(title string) string {
	return DefaultTheme.Header.Render(title)
}

// RenderStatus renders text with the style matching the given status.
func RenderStatus(status, text string) string {
	switch status {
	case "success":
		return DefaultTheme.Success.Render(text)
	case "error":
		return DefaultTheme.Error.Render(text)
	case "warning":
		return DefaultTheme.Warning.Render(text)
	default:
		return DefaultTheme.Info.Render(text)
	}
}
