package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ignis-sh/ignis/cli"
)

// NewMsgCmd creates the `msg` command
func NewMsgCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"msg <command...>",
		"Send a raw command to the compositor",
	)
	cmd.Long = `Send a command verbatim over the compositor's IPC socket and print
the raw reply. The command syntax depends on the backend: hyprctl-style
text for Hyprland, a JSON request for niri.`
	cmd.Example = `  # Hyprland
  ignisctl msg j/version

  # Niri
  ignisctl msg '"FocusedWindow"'`
	cmd.Args = cobra.MinimumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend(cmd)
		if err != nil {
			return handleError(cmd, err)
		}

		reply, err := backend.Send(strings.Join(args, " "))
		if err != nil {
			return handleError(cmd, err)
		}

		fmt.Println(strings.TrimRight(string(reply), "\n"))
		return nil
	}

	return cmd
}
