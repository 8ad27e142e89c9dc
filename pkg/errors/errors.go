// Package errors provides structured error types for cardforge.
//
// Every failure surfaced by the compositor, the sheet packer and the
// exporters carries a machine-readable [Code] and, where one exists, the
// identifier of the offending item (region name, card name, file path) in
// [Error.Subject]. The CLI prints [UserMessage]; programmatic callers branch
// on [Is] or [GetCode].
//
// # Error Codes
//
// Codes are grouped by prefix:
//   - INVALID_*: malformed input data or configuration
//   - *_NOT_FOUND / *_UNREADABLE: missing or undecodable assets
//   - INTERNAL_*: unexpected failures (encoding, file system)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGeometry, "card width %.1fmm exceeds printable width", w)
//	if errors.Is(err, errors.ErrCodeInvalidGeometry) {
//	    // configuration problem, nothing was written
//	}
//
//	err := errors.Wrap(errors.ErrCodeFrameUnreadable, cause, "decode frame").WithSubject(path)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeInvalidCard     Code = "INVALID_CARD"
	ErrCodeInvalidColor    Code = "INVALID_COLOR"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Asset errors
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeAssetNotFound   Code = "ASSET_NOT_FOUND"
	ErrCodeFrameUnreadable Code = "FRAME_UNREADABLE"
	ErrCodeFontUnreadable  Code = "FONT_UNREADABLE"
	ErrCodeImageUnreadable Code = "IMAGE_UNREADABLE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
	ErrCodeEncode   Code = "ENCODE_FAILED"
)

// Error is a structured error with a code, the offending identifier and an
// optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Subject string // Offending identifier (region, card, path); may be empty
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Subject != "" {
		msg = fmt.Sprintf("%s: %s [%s]", e.Code, e.Message, e.Subject)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithSubject records the offending identifier and returns e.
func (e *Error) WithSubject(subject string) *Error {
	e.Subject = subject
	return e
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
// Only the outermost *Error in the chain is consulted.
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

// SubjectOf returns the offending identifier recorded on err, if any.
func SubjectOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Subject
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (and subject) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Subject != "" {
			return fmt.Sprintf("%s (%s)", e.Message, e.Subject)
		}
		return e.Message
	}
	return err.Error()
}
