// Package errors provides structured error types for the collage editor.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the editor and the preview server
//   - Machine-readable error codes for recovery policies
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each code maps to one recovery policy:
//   - INVALID_LAYOUT: the layout request fails; the scene keeps its previous layout
//   - EMPTY_INPUT: no photo sources; callers fall back to the placeholder image
//   - IMAGE_LOAD: unreadable photo; the previous photo stays displayed
//   - SWAP_TARGET_NOT_FOUND: a drop that hit no frame; ignored without state change
//   - EXPORT_WRITE: the output could not be written; the scene is unaffected
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidLayout, "token %q has zero photos", tok)
//	if errors.Is(err, errors.ErrCodeInvalidLayout) {
//	    // keep the previous layout
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeImageLoad, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidAspect Code = "INVALID_ASPECT"

	// Source errors
	ErrCodeEmptyInput Code = "EMPTY_INPUT"
	ErrCodeImageLoad  Code = "IMAGE_LOAD"

	// Interaction errors
	ErrCodeSwapTargetNotFound Code = "SWAP_TARGET_NOT_FOUND"

	// Output errors
	ErrCodeExportWrite Code = "EXPORT_WRITE"

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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// Recoverable reports whether err belongs to a category the editor handles
// locally without aborting the current session.
func Recoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeImageLoad, ErrCodeSwapTargetNotFound, ErrCodeInvalidLayout, ErrCodeExportWrite:
		return true
	}
	return false
}
