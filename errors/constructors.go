package errors

import (
	"fmt"
)

// IPCUnavailable creates an error for a compositor socket that does not
// exist or refuses connections
func IPCUnavailable(backend, socket string) *IPCError {
	return New(ErrCodeIPCUnavailable,
		fmt.Sprintf("%s IPC is not available at %s", backend, socket)).
		WithDetail("backend", backend).
		WithDetail("socket", socket)
}

// CommandFailed creates an error for a command the compositor rejected
func CommandFailed(backend, command, reason string) *IPCError {
	return New(ErrCodeCommandFailed,
		fmt.Sprintf("%s rejected command: %s", backend, reason)).
		WithDetail("backend", backend).
		WithDetail("command", command)
}

// MalformedEvent creates an error for an event record that failed to decode
func MalformedEvent(err error, record string) *IPCError {
	return Wrap(err, ErrCodeMalformedEvent, "failed to decode event record").
		WithDetail("record", record)
}

// UnknownEvent creates an error for a discriminator with no dispatch entry
func UnknownEvent(name string) *IPCError {
	return New(ErrCodeUnknownEvent, fmt.Sprintf("no handler for event %q", name)).
		WithDetail("event", name)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *IPCError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *IPCError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}
