package wsclient

import (
	"errors"
	"fmt"
)

// ErrorCode represents a categorized error type.
type ErrorCode int

const (
	ErrorUnknown ErrorCode = iota

	// Caller-facing errors, returned before any state is touched.
	ErrorSyntax
	ErrorInvalidAccess
	ErrorInvalidState

	// Client-side setup errors
	ErrorInvalidConfig
	ErrorConnection
)

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrorUnknown:
		return "unknown"
	case ErrorSyntax:
		return "syntax_error"
	case ErrorInvalidAccess:
		return "invalid_access"
	case ErrorInvalidState:
		return "invalid_state"
	case ErrorInvalidConfig:
		return "invalid_config"
	case ErrorConnection:
		return "connection_error"
	default:
		return fmt.Sprintf("unknown_code_%d", e)
	}
}

// Sentinels for errors.Is. Matching is by code, so any *Error with the same
// code compares equal.
var (
	ErrSyntax        = NewError(ErrorSyntax, "syntax error")
	ErrInvalidAccess = NewError(ErrorInvalidAccess, "invalid access")
	ErrInvalidState  = NewError(ErrorInvalidState, "invalid state")
)

// Error is a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s (wrapped: %v)", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Unwrap support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface for error comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with an Error.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// CodeOf reports the ErrorCode carried by err, or ErrorUnknown.
func CodeOf(err error) ErrorCode {
	var e *Error
	if !errors.As(err, &e) {
		return ErrorUnknown
	}
	return e.Code
}
