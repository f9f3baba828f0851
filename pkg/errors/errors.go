// Package errors provides structured error types for depscout.
//
// Two kinds of failure dominate lockfile processing and are modeled
// explicitly:
//
//   - Format errors (malformed lockfile text, descriptors that fail the
//     grammar): always fatal, created with [New] or [Wrap] using
//     [ErrCodeInvalidLockfile].
//   - Unsupported resolutions (well-formed but not representable, e.g. an
//     unknown protocol or a private-registry binding): recoverable, modeled
//     as [UnsupportedResolutionError] so callers can skip the entry and
//     continue.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidLockfile, "a mapping is expected")
//	if errors.Is(err, errors.ErrCodeInvalidLockfile) {
//	    // Abort the walk.
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Lockfile and descriptor validation errors
	ErrCodeInvalidLockfile       Code = "INVALID_LOCKFILE"
	ErrCodeUnsupportedResolution Code = "UNSUPPORTED_RESOLUTION"
	ErrCodeUnsupportedDependency Code = "UNSUPPORTED_DEPENDENCY"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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
// It unwraps the error chain looking for a coded error with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var u *UnsupportedResolutionError
	if errors.As(err, &u) {
		return u.Code()
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

// UnsupportedResolutionError marks a resolution that parsed cleanly but
// cannot be represented as a dependency identity: an unhandled protocol,
// or an npm resolution bound to a private registry. Walkers drop the
// offending entry and continue.
type UnsupportedResolutionError struct {
	Resolution string // The offending resolution string
}

// Error implements the error interface.
func (e *UnsupportedResolutionError) Error() string {
	return fmt.Sprintf("unsupported resolution: %s", e.Resolution)
}

// Code returns the error code for this error type.
func (e *UnsupportedResolutionError) Code() Code {
	return ErrCodeUnsupportedResolution
}

// IsUnsupportedResolution reports whether err is (or wraps) an
// [UnsupportedResolutionError].
func IsUnsupportedResolution(err error) bool {
	var u *UnsupportedResolutionError
	return errors.As(err, &u)
}
