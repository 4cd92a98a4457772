package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every classified failure unwraps to exactly one of these so
// callers can branch with errors.Is regardless of how deeply it was wrapped.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Error carries a client-facing message together with its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

// BadRequest reports malformed or missing input.
func BadRequest(msg string) error { return &Error{Kind: ErrBadRequest, Message: msg} }

// Unauthorized reports a failed authentication or authorization decision.
func Unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }

// NotFound reports a lookup by key that yielded no row.
func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func BadRequestf(format string, args ...any) error { return BadRequest(fmt.Sprintf(format, args...)) }

func NotFoundf(format string, args ...any) error { return NotFound(fmt.Sprintf(format, args...)) }

func Unauthorizedf(format string, args ...any) error {
	return Unauthorized(fmt.Sprintf(format, args...))
}

// Message returns the client-facing text of a classified error, or the
// empty string when err carries no *Error.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Error()
	}
	return ""
}
