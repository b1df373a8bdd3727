// Package errors provides structured error types for padring.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Layout failures are configuration errors, never transient ones. Each layout
// code corresponds to a typed error in the floorplan or geom package that
// carries the side, instance and numeric quantities involved:
//   - INVALID_GRID: non-positive snap grid
//   - DIE_SIZING: die dimensions off-grid or an empty core area
//   - INSUFFICIENT_SPACE: pads do not fit along a side
//   - UNFILLABLE_GAP: a gap smaller than the smallest filler
//   - MACRO_OVERLAP: a macro collides with the ring or another instance
//   - OVERLAP: two placed instances overlap
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "unknown side %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout errors
	ErrCodeInvalidGrid       Code = "INVALID_GRID"
	ErrCodeDieSizing         Code = "DIE_SIZING"
	ErrCodeInsufficientSpace Code = "INSUFFICIENT_SPACE"
	ErrCodeUnfillableGap     Code = "UNFILLABLE_GAP"
	ErrCodeMacroOverlap      Code = "MACRO_OVERLAP"
	ErrCodeOverlap           Code = "OVERLAP"

	// Input validation errors
	ErrCodeInvalidPolicy Code = "INVALID_POLICY"
	ErrCodeUnknownCell   Code = "UNKNOWN_CELL"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// Coder is implemented by typed errors that carry their own code.
type Coder interface {
	error
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a Coder with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
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

// IsConfiguration reports whether err is a layout or input error, i.e. one
// that retrying cannot fix.
func IsConfiguration(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidGrid, ErrCodeDieSizing, ErrCodeInsufficientSpace,
		ErrCodeUnfillableGap, ErrCodeMacroOverlap, ErrCodeOverlap,
		ErrCodeInvalidPolicy, ErrCodeUnknownCell, ErrCodeInvalidConfig,
		ErrCodeInvalidFormat:
		return true
	}
	return false
}
