package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignis-sh/ignis/cli"
	"github.com/ignis-sh/ignis/tui/theme"
)

// NewLayoutCmd creates the `layout` command
func NewLayoutCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"layout",
		"Show or cycle the keyboard layout",
	)
	cmd.Example = `  # Show the configured layouts
  ignisctl layout

  # Cycle to the next one
  ignisctl layout next`

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend(cmd)
		if err != nil {
			return handleError(cmd, err)
		}

		layout, err := backend.SyncKeyboardLayout()
		if err != nil {
			return handleError(cmd, err)
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			data, err := json.MarshalIndent(layout, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		t := theme.DefaultTheme
		for i, name := range layout.Names {
			if i == layout.CurrentIdx {
				fmt.Println("* " + t.Bold.Render(name))
			} else {
				fmt.Println("  " + t.Muted.Render(name))
			}
		}
		return nil
	}

	cmd.AddCommand(newLayoutNextCmd())

	return cmd
}

// newLayoutNextCmd creates the `layout next` subcommand
func newLayoutNextCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"next",
		"Switch to the next keyboard layout",
	)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend(cmd)
		if err != nil {
			return handleError(cmd, err)
		}
		return handleError(cmd, backend.NextKeyboardLayout())
	}

	return cmd
}
