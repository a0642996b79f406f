package store

import "fmt"

// Error is a storage error with a user-facing message.
type Error struct {
	Message string
	Err     error // underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithMessage wraps the error with an entity-specific message while
// keeping the original reachable through errors.Is.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Message: msg, Err: e}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Message: e.Message, Err: err}
}

// Sentinel errors. Compare with errors.Is.
var (
	ErrNotFound      = &Error{Message: "record not found"}
	ErrAlreadyExists = &Error{Message: "record already exists"}
)
