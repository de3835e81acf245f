// Package errors provides structured error types for arborheat.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - UNSUPPORTED_*: Requests the tool knows it cannot serve
//   - *_NOT_FOUND: Missing files or external tools
//   - EXTERNAL_TOOL / INTERNAL_*: Failures while doing the work
//
// # Typed Errors
//
// Three failure kinds carry extra context and have their own types:
// [DegenerateInputError], [UnsupportedFormatError] and [ToolError]. Each
// implements Code() so [Is] and [GetCode] treat them like [*Error].
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "angles must be positive, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidGeometry, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidColormap Code = "INVALID_COLORMAP"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeDegenerateInput Code = "DEGENERATE_INPUT"

	// Unsupported requests
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeToolNotFound Code = "TOOL_NOT_FOUND"

	// Execution errors
	ErrCodeExternalTool Code = "EXTERNAL_TOOL"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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

// coded is implemented by the typed errors of this package.
type coded interface {
	error
	Code() Code
}

// Is reports whether any error in err's chain carries the given code.
func Is(err error, code Code) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if ownCode(err) == code {
			return true
		}
	}
	return false
}

// GetCode extracts the code of the first coded error in err's chain.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for ; err != nil; err = errors.Unwrap(err) {
		if c := ownCode(err); c != "" {
			return c
		}
	}
	return ""
}

func ownCode(err error) Code {
	switch e := err.(type) {
	case *Error:
		return e.Code
	case coded:
		return e.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed by
// the user message of its cause. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}

// DegenerateInputError reports a normalization maximum of exactly zero,
// which would otherwise turn every color value into NaN.
type DegenerateInputError struct {
	Max     float64 // the offending maximum
	Samples int     // number of values that were being normalized
}

// Error implements the error interface.
func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input: normalization maximum is %g for %d values", e.Max, e.Samples)
}

// Code returns the error code for this error type.
func (e *DegenerateInputError) Code() Code {
	return ErrCodeDegenerateInput
}

// UnsupportedFormatError reports an output extension no encoder or renderer handles.
type UnsupportedFormatError struct {
	Ext       string   // extension as given, including the dot
	Supported []string // extensions that would have been accepted
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	ext := e.Ext
	if ext == "" {
		ext = "(none)"
	}
	if len(e.Supported) == 0 {
		return fmt.Sprintf("unsupported output format %s", ext)
	}
	return fmt.Sprintf("unsupported output format %s (must be one of: %s)", ext, strings.Join(e.Supported, ", "))
}

// Code returns the error code for this error type.
func (e *UnsupportedFormatError) Code() Code {
	return ErrCodeUnsupportedFormat
}

// ToolError reports a non-zero exit from an external command.
type ToolError struct {
	Command  string // the command line as it was invoked
	ExitCode int    // exit status, -1 if the process did not exit normally
	Stderr   string // captured standard error, trimmed
	Err      error  // underlying error from os/exec
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Unwrap returns the underlying os/exec error.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// Code returns the error code for this error type.
func (e *ToolError) Code() Code {
	return ErrCodeExternalTool
}

// NewToolError builds a ToolError from the result of running command.
// The exit status is taken from *exec.ExitError when present.
func NewToolError(command string, err error, stderr string) *ToolError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &ToolError{
		Command:  command,
		ExitCode: code,
		Stderr:   strings.TrimSpace(stderr),
		Err:      err,
	}
}
