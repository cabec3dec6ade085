package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ignis-sh/ignis/cli"
	"github.com/ignis-sh/ignis/compositor"
)

// NewListenCmd creates the `listen` command
func NewListenCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"listen",
		"Print compositor state changes as they happen",
	)
	cmd.Long = `Subscribe to the compositor's event stream and print one line per
state change until interrupted. Intended for status bars and scripts;
with --json each line is a JSON object carrying the changed topic and
its new value.`
	cmd.Example = `  # Watch everything
  ignisctl listen

  # Only workspace changes, machine readable
  ignisctl listen --topic workspaces --json

  # Survive a compositor restart at login
  ignisctl listen --wait`

	cmd.Flags().StringSlice("topic", nil, "Topics to watch (default: all)")
	cmd.Flags().Bool("wait", false, "Wait for the compositor socket to appear instead of failing")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend(cmd)
		if err != nil {
			return handleError(cmd, err)
		}

		if wait, _ := cmd.Flags().GetBool("wait"); wait {
			if err := compositor.WaitAvailable(cmd.Context(), backend); err != nil {
				return handleError(cmd, err)
			}
		}

		client := compositor.New(backend)
		if err := client.Start(); err != nil {
			return handleError(cmd, err)
		}
		defer client.Close()

		names, _ := cmd.Flags().GetStringSlice("topic")
		topics := make([]compositor.Topic, 0, len(names))
		for _, name := range names {
			topics = append(topics, compositor.Topic(name))
		}

		ch := client.Subscribe(topics...)
		defer client.Unsubscribe(ch)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

		jsonOutput, _ := cmd.Flags().GetBool("json")
		for {
			select {
			case <-sigs:
				return nil
			case <-cmd.Context().Done():
				return nil
			case change, open := <-ch:
				if !open {
					return nil
				}
				printChange(client, change, jsonOutput)
			}
		}
	}

	return cmd
}

func printChange(client *compositor.Client, change compositor.Change, jsonOutput bool) {
	if !jsonOutput {
		fmt.Println(string(change.Topic))
		return
	}

	record := map[string]interface{}{"topic": change.Topic}
	switch change.Topic {
	case compositor.TopicWorkspaces:
		record["workspaces"] = client.Workspaces()
	case compositor.TopicActiveWorkspace:
		record["active_workspaces"] = client.ActiveWorkspaces()
	case compositor.TopicActiveWindow:
		record["window"] = client.ActiveWindow()
	case compositor.TopicKeyboardLayout:
		record["layout"] = client.KeyboardLayout()
	case compositor.TopicActiveOutput:
		record["output"] = client.ActiveOutput()
	case compositor.TopicUrgentWindows:
		record["urgent"] = client.UrgentWindows()
		record["urgent_workspaces"] = client.UrgentWorkspaces()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	fmt.Println(string(data))
}
