// Package statusview renders a live compositor status panel: workspaces,
// the focused window, the keyboard layout, and urgency flags, updated from
// the client's change stream.
package statusview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ignis-sh/ignis/compositor"
	"github.com/ignis-sh/ignis/tui/theme"
)

// changeMsg carries one store notification into the bubbletea loop.
type changeMsg compositor.Change

// subscriptionClosedMsg signals that the client shut down underneath us.
type subscriptionClosedMsg struct{}

// Model is the bubbletea model for the status panel.
type Model struct {
	client *compositor.Client
	sub    chan compositor.Change

	width int
	err   error
}

// New creates a status view bound to a started client.
func New(client *compositor.Client) *Model {
	return &Model{
		client: client,
		sub:    client.Subscribe(),
	}
}

// Init starts pumping store notifications into the update loop.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		change, open := <-m.sub
		if !open {
			return subscriptionClosedMsg{}
		}
		return changeMsg(change)
	}
}

// Update handles notifications and key presses. Workspace switching and
// layout cycling go through the client; the view itself only re-reads the
// cache when notified.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changeMsg:
		return m, m.waitForChange()

	case subscriptionClosedMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			m.client.Unsubscribe(m.sub)
			return m, tea.Quit
		case "l":
			m.err = m.client.NextKeyboardLayout()
			return m, nil
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.err = m.client.SwitchToWorkspace(int(key[0] - '0'))
			return m, nil
		}
	}

	return m, nil
}

// View renders the current cache snapshot.
func (m *Model) View() string {
	t := theme.DefaultTheme

	var b strings.Builder
	b.WriteString(t.Header.Render("ignis") + " " + t.Muted.Render(m.client.Backend().Name()) + "\n\n")

	b.WriteString(t.Title.Render("Workspaces") + "\n")
	b.WriteString(m.renderWorkspaces(t) + "\n\n")

	b.WriteString(t.Title.Render("Window") + "\n")
	if w := m.client.ActiveWindow(); w != nil {
		title := w.Title
		if title == "" {
			title = w.Class
		}
		line := title
		if w.Class != "" && w.Class != title {
			line += " " + t.Muted.Render("("+w.Class+")")
		}
		b.WriteString(line + "\n\n")
	} else {
		b.WriteString(t.Muted.Render("none focused") + "\n\n")
	}

	b.WriteString(t.Title.Render("Layout") + "  ")
	if layout := m.client.KeyboardLayout(); layout.Active() != "" {
		b.WriteString(layout.Active())
	} else {
		b.WriteString(t.Muted.Render("unknown"))
	}
	if output := m.client.ActiveOutput(); output != nil {
		b.WriteString("    " + t.Title.Render("Output") + "  " + output.Name)
	}
	b.WriteString("\n")

	if urgent := m.client.UrgentWindows(); len(urgent) > 0 {
		b.WriteString("\n" + t.Warning.Render(fmt.Sprintf("%d window(s) want attention", len(urgent))) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + t.Error.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + t.Muted.Render("1-9 switch workspace · l next layout · q quit") + "\n")

	return t.Box.Render(b.String())
}

func (m *Model) renderWorkspaces(t *theme.Theme) string {
	workspaces := m.client.Workspaces()
	if len(workspaces) == 0 {
		return t.Muted.Render("none")
	}

	cells := make([]string, 0, len(workspaces))
	for _, ws := range workspaces {
		label := ws.Name
		if label == "" {
			label = fmt.Sprintf("%d", ws.Index)
		}

		style := t.Muted
		switch {
		case ws.IsFocused:
			style = t.Selected.Bold(true)
		case m.client.Store().IsWorkspaceUrgent(ws.ID):
			style = t.Error.Bold(true)
		case ws.IsActive:
			style = t.Success
		}
		cells = append(cells, style.Render(" "+label+" "))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
