// Package errors provides structured error types for the molrender application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP service
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INPUT_*: Structure reference resolution failures
//   - CONFIG_*: Render configuration failures
//   - ENGINE_*: Rendering engine discovery and execution failures
//   - QUEUE_*: Folder queue failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInputNotFound, "structure not found: %s", path)
//	if errors.Is(err, errors.ErrCodeInputNotFound) {
//	    // Handle missing input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInputNetwork, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Structure reference resolution errors
	ErrCodeInputMalformed Code = "INPUT_MALFORMED"
	ErrCodeInputNetwork   Code = "INPUT_NETWORK"
	ErrCodeInputNotFound  Code = "INPUT_NOT_FOUND"

	// Render configuration errors
	ErrCodeUnknownPreset Code = "CONFIG_UNKNOWN_PRESET"
	ErrCodeInvalidValue  Code = "CONFIG_INVALID_VALUE"

	// Engine errors
	ErrCodeEngineNotFound  Code = "ENGINE_NOT_FOUND"
	ErrCodeEngineExecution Code = "ENGINE_EXECUTION"
	ErrCodeOutputMissing   Code = "OUTPUT_MISSING"

	// Folder queue errors
	ErrCodeQueueDirNotFound Code = "QUEUE_DIR_NOT_FOUND"
	ErrCodeQueueEmpty       Code = "QUEUE_EMPTY"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ExecutionError carries the full captured output of a failed engine run.
// It is always wrapped in an *Error with ErrCodeEngineExecution so the
// diagnosis payload survives up to the caller.
type ExecutionError struct {
	Command  string // Command line that was executed
	ExitCode int    // Process exit code (-1 if the process never started)
	Stdout   string // Full captured standard output
	Stderr   string // Full captured standard error
}

// Error implements the error interface. The captured streams are included
// verbatim since an engine failure is only diagnosable from its output.
func (e *ExecutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "engine failed (exit %d)", e.ExitCode)
	if e.Command != "" {
		fmt.Fprintf(&b, "\ncommand: %s", e.Command)
	}
	if e.Stdout != "" {
		fmt.Fprintf(&b, "\nstdout:\n%s", e.Stdout)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, "\nstderr:\n%s", e.Stderr)
	}
	return b.String()
}
