package cli

import (
	"fmt"
	"os"

	"github.com/ignis-sh/ignis/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeIPCUnavailable:
		if ipcErr, ok := err.(*errors.IPCError); ok {
			fmt.Fprintf(os.Stderr, "❌ Compositor not reachable (socket: %v)\n", ipcErr.Details["socket"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ Compositor not reachable\n")
		}
		fmt.Fprintf(os.Stderr, "Make sure Hyprland or niri is running in this session.\n")
		return err

	case errors.ErrCodeCommandFailed:
		if ipcErr, ok := err.(*errors.IPCError); ok {
			fmt.Fprintf(os.Stderr, "❌ The compositor rejected the command: %s\n", ipcErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "❌ The compositor rejected the command\n")
		}
		return err

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create ignis.yml under $XDG_CONFIG_HOME/ignis or pass --config.\n")
		return err

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if ipcErr, ok := err.(*errors.IPCError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", ipcErr.ToJSON())
			}
		}
		return err
	}
}
