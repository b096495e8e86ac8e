// Package apperr defines the error taxonomy shared by every feature.
// Use cases wrap these sentinels with context; the HTTP boundary maps them to status codes
// with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict is returned when a unique identity (email, username) is already taken.
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated covers bad login credentials and missing, invalid or expired tokens.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound is returned both for absent records and for records owned by another user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference is returned when a pipeline id does not exist or is not owned by the caller.
	ErrInvalidReference = errors.New("pipeline does not exist or is not owned by caller")

	// ErrInvalidStage is returned when a stage is not a member of the referenced pipeline.
	ErrInvalidStage = errors.New("stage is not part of the pipeline")

	// ErrValidation is returned when required fields are missing or malformed.
	ErrValidation = errors.New("validation error")

	// ErrForbidden is returned when an authenticated caller lacks the role a route requires.
	ErrForbidden = errors.New("forbidden")

	// ErrConfiguration is fatal and only produced at startup.
	ErrConfiguration = errors.New("configuration error")
)

// Error is a taxonomy error carrying a client-safe message.
// errors.Is matches it against its kind sentinel.
type Error struct {
	kind error
	msg  string
}

// New returns an error of the given kind whose message is msg.
func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Newf is New with a formatted message.
func Newf(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }
