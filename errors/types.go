package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// IPC transport errors
	ErrCodeIPCUnavailable ErrorCode = "IPC_UNAVAILABLE"
	ErrCodeCommandFailed  ErrorCode = "COMMAND_FAILED"

	// Event stream errors
	ErrCodeMalformedEvent ErrorCode = "MALFORMED_EVENT"
	ErrCodeUnknownEvent   ErrorCode = "UNKNOWN_EVENT"

	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// IPCError represents a structured error with context
type IPCError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *IPCError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *IPCError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *IPCError) WithDetail(key string, value interface{}) *IPCError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *IPCError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new IPCError
func New(code ErrorCode, message string) *IPCError {
	return &IPCError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an IPCError
func Wrap(err error, code ErrorCode, message string) *IPCError {
	return &IPCError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error carries a specific IPCError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	ipcErr, ok := err.(*IPCError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return ipcErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	ipcErr, ok := err.(*IPCError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return ipcErr.Code
}
