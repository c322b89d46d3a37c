package entities

import (
	"errors"
	"strings"
)

// ErrPasswordHashAccess is returned whenever code tries to read a stored
// password hash as a plain value.
var ErrPasswordHashAccess = errors.New("password hashes may not be viewed")

// ValidationError collects every rule an entity failed.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) add(msg string) {
	e.Messages = append(e.Messages, msg)
}

// errOrNil returns nil when no rule failed, so callers never get a typed nil.
func (e *ValidationError) errOrNil() error {
	if len(e.Messages) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a ValidationError from the given messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// IsValidation reports whether err carries a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
