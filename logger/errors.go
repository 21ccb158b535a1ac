package logger

import (
	"errors"
	"fmt"
)

// ErrorCode is the category of a logger failure.
type ErrorCode string

const (
	// CodeInitialization means the log directory or file could not be
	// created or opened. The logger continues console-only.
	CodeInitialization ErrorCode = "INITIALIZATION_ERROR"

	// CodeWrite means a record could not be persisted to the file sink.
	// The file sink is marked degraded.
	CodeWrite ErrorCode = "WRITE_ERROR"
)

// ErrUnrecoverable is returned by Fatal and Fatalf. It is advisory: the
// logger has written the record and leaves the exit decision to the caller.
var ErrUnrecoverable = errors.New("unrecoverable condition")

// LogError is a logger failure with a code and an optional cause.
type LogError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *LogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As.
func (e *LogError) Unwrap() error {
	return e.Cause
}

// Is matches another *LogError with the same code.
func (e *LogError) Is(target error) bool {
	if t, ok := target.(*LogError); ok {
		return e.Code == t.Code
	}
	return false
}

func newInitError(message string, cause error) *LogError {
	return &LogError{Code: CodeInitialization, Message: message, Cause: cause}
}

func newWriteError(message string, cause error) *LogError {
	return &LogError{Code: CodeWrite, Message: message, Cause: cause}
}

// IsInitializationError reports whether err is an initialization failure.
func IsInitializationError(err error) bool {
	return errors.Is(err, &LogError{Code: CodeInitialization})
}

// IsWriteError reports whether err is a file write failure.
func IsWriteError(err error) bool {
	return errors.Is(err, &LogError{Code: CodeWrite})
}
