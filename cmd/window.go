package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignis-sh/ignis/cli"
)

// NewWindowCmd creates the `window` command
func NewWindowCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"window",
		"Show the focused window",
	)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend(cmd)
		if err != nil {
			return handleError(cmd, err)
		}

		window, err := backend.SyncActiveWindow()
		if err != nil {
			return handleError(cmd, err)
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			data, err := json.MarshalIndent(window, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if window == nil {
			fmt.Println("no window focused")
			return nil
		}

		fmt.Printf("Title:     %s\n", window.Title)
		fmt.Printf("Class:     %s\n", window.Class)
		fmt.Printf("Address:   %s\n", window.Address)
		fmt.Printf("Workspace: %d\n", window.WorkspaceID)
		if window.Width > 0 || window.Height > 0 {
			fmt.Printf("Size:      %dx%d\n", window.Width, window.Height)
		}
		if window.Floating {
			fmt.Println("Floating:  yes")
		}
		if window.Fullscreen {
			fmt.Println("Fullscreen: yes")
		}
		return nil
	}

	return cmd
}
