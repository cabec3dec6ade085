package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ignis-sh/ignis/cli"
	"github.com/ignis-sh/ignis/compositor"
	"github.com/ignis-sh/ignis/tui/theme"
)

// NewWorkspacesCmd creates the `workspaces` command
func NewWorkspacesCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"workspaces",
		"List workspaces known to the compositor",
	)
	cmd.Long = `List every workspace the compositor reports, sorted by index.
The focused workspace is highlighted; with --active only workspaces
currently visible on an output are shown.`
	cmd.Example = `  # All workspaces
  ignisctl workspaces

  # Only the visible ones, as JSON
  ignisctl workspaces --active --json`

	cmd.Flags().Bool("active", false, "Only show workspaces visible on an output")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend(cmd)
		if err != nil {
			return handleError(cmd, err)
		}

		workspaces, err := backend.SyncWorkspaces()
		if err != nil {
			return handleError(cmd, err)
		}
		sort.SliceStable(workspaces, func(i, j int) bool {
			return workspaces[i].Index < workspaces[j].Index
		})

		if activeOnly, _ := cmd.Flags().GetBool("active"); activeOnly {
			filtered := workspaces[:0]
			for _, ws := range workspaces {
				if ws.IsActive {
					filtered = append(filtered, ws)
				}
			}
			workspaces = filtered
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			data, err := json.MarshalIndent(workspaces, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		printWorkspaces(workspaces)
		return nil
	}

	cmd.AddCommand(newWorkspaceSwitchCmd())

	return cmd
}

func printWorkspaces(workspaces []compositor.Workspace) {
	t := theme.DefaultTheme
	for _, ws := range workspaces {
		marker := " "
		style := t.Muted
		switch {
		case ws.IsFocused:
			marker = "*"
			style = t.Bold
		case ws.IsActive:
			marker = "·"
			style = t.Success
		}

		name := ws.Name
		if name == "" {
			name = strconv.Itoa(ws.Index)
		}
		fmt.Printf("%s %s %s\n", marker, style.Render(fmt.Sprintf("%-12s", name)), t.Muted.Render(ws.Output))
	}
}

// newWorkspaceSwitchCmd creates the `workspaces switch` subcommand
func newWorkspaceSwitchCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"switch <index>",
		"Switch to a workspace by index",
	)
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("workspace index must be a number: %q", args[0])
		}

		backend, err := newBackend(cmd)
		if err != nil {
			return handleError(cmd, err)
		}

		return handleError(cmd, backend.SwitchToWorkspace(target))
	}

	return cmd
}
