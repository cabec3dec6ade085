package main

import (
	"os"

	"github.com/ignis-sh/ignis/cli"
	"github.com/ignis-sh/ignis/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"ignisctl",
		"Query and control Hyprland and niri over their IPC sockets",
	)

	rootCmd.AddCommand(cmd.NewWorkspacesCmd())
	rootCmd.AddCommand(cmd.NewWindowCmd())
	rootCmd.AddCommand(cmd.NewLayoutCmd())
	rootCmd.AddCommand(cmd.NewListenCmd())
	rootCmd.AddCommand(cmd.NewMonitorCmd())
	rootCmd.AddCommand(cmd.NewMsgCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
