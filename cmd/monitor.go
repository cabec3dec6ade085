package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ignis-sh/ignis/cli"
	"github.com/ignis-sh/ignis/tui/statusview"
)

// NewMonitorCmd creates the `monitor` command
func NewMonitorCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"monitor",
		"Interactive live view of the compositor state",
	)
	cmd.Long = `This command launches an interactive TUI showing workspaces, the
focused window, the keyboard layout and urgency flags, updated live
from the compositor's event stream.`

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		client, err := newStartedClient(cmd)
		if err != nil {
			return handleError(cmd, err)
		}
		defer client.Close()

		p := tea.NewProgram(statusview.New(client), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
			return err
		}
		return nil
	}

	return cmd
}
