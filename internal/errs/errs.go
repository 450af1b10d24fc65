// Package errs defines the error kinds shared by the store, use-case and
// service layers.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error for callers.
type Kind int

const (
	// Internal covers store failures, serialization failures and anything unexpected.
	Internal Kind = iota
	// NotFound means the requested entity has no matching row.
	NotFound
	// InvalidArgs means caller input failed a business rule.
	InvalidArgs
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case InvalidArgs:
		return "invalid args"
	default:
		return "internal"
	}
}

// Error is the error type returned across layer boundaries.
type Error struct {
	Kind     Kind
	Messages []string // Human readable, safe to return to clients
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Cause != nil {
		if msg == "" {
			return e.Cause.Error()
		}
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound    = &Error{Kind: NotFound}
	ErrInvalidArgs = &Error{Kind: InvalidArgs}
	ErrInternal    = &Error{Kind: Internal}
)

// NewNotFound returns a NotFound error with a formatted message.
func NewNotFound(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Messages: []string{fmt.Sprintf(format, args...)}}
}

// NewInvalidArgs returns an InvalidArgs error carrying one or more messages.
func NewInvalidArgs(messages ...string) *Error {
	return &Error{Kind: InvalidArgs, Messages: messages}
}

// WrapInvalidArgs returns an InvalidArgs error that keeps its cause.
func WrapInvalidArgs(message string, cause error) *Error {
	return &Error{Kind: InvalidArgs, Messages: []string{message}, Cause: cause}
}

// NewInternal returns an Internal error wrapping cause.
func NewInternal(message string, cause error) *Error {
	return &Error{Kind: Internal, Messages: []string{message}, Cause: cause}
}

// KindOf returns the kind of err. Errors that are not *Error are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Messages returns the client-facing messages of err.
func Messages(err error) []string {
	var e *Error
	if errors.As(err, &e) && len(e.Messages) > 0 {
		return e.Messages
	}
	return []string{"internal error"}
}
