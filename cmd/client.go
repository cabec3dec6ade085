// Package cmd implements the ignisctl subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ignis-sh/ignis/cli"
	"github.com/ignis-sh/ignis/compositor"
	"github.com/ignis-sh/ignis/compositor/auto"
)

// newBackend resolves the configured or detected compositor backend.
func newBackend(cmd *cobra.Command) (compositor.Backend, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return auto.Detect(cfg)
}

// newStartedClient builds a client with a running event loop, for commands
// that observe state over time. One-shot queries go straight to the backend
// instead.
func newStartedClient(cmd *cobra.Command) (*compositor.Client, error) {
	backend, err := newBackend(cmd)
	if err != nil {
		return nil, err
	}

	client := compositor.New(backend)
	if err := client.Start(); err != nil {
		return nil, err
	}
	return client, nil
}

// handleError routes an error through the shared handler for a friendly
// message, then returns it so Execute exits nonzero.
func handleError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	return cli.NewErrorHandler(verbose).Handle(err)
}
