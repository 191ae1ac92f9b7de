package errors

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// Configuration errors - missing or invalid configuration
	ErrorTypeConfig ErrorType = iota
	// Parse errors - commit metadata that cannot be interpreted
	ErrorTypeParse
	// External errors - failures of the git subprocess or filesystem
	ErrorTypeExternal
	// Internal errors - unexpected internal state
	ErrorTypeInternal
)

// Error represents a structured error with a category
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error type
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Type: errType, Message: message, Cause: err}
}

// Convenience constructors for common error types

// ConfigError creates a configuration error
func ConfigError(message string) *Error {
	return New(ErrorTypeConfig, message)
}

// ConfigErrorf creates a configuration error with formatting
func ConfigErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeConfig, fmt.Sprintf(format, args...))
}

// ParseError wraps a parse error
func ParseError(err error, message string) *Error {
	return Wrap(err, ErrorTypeParse, message)
}

// ParseErrorf creates a parse error with formatting
func ParseErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeParse, fmt.Sprintf(format, args...))
}

// ExternalError wraps a subprocess or filesystem error
func ExternalError(err error, message string) *Error {
	return Wrap(err, ErrorTypeExternal, message)
}

// ExternalErrorf wraps a subprocess or filesystem error with formatting
func ExternalErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeExternal, fmt.Sprintf(format, args...))
}

// InternalErrorf creates an internal error with formatting
func InternalErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeInternal, fmt.Sprintf(format, args...))
}

// GetType returns the type of an error
func GetType(err error) ErrorType {
	if err == nil {
		return ErrorTypeInternal
	}
	if e, ok := err.(*Error); ok {
		return e.Type
	}
	return ErrorTypeInternal
}
