package usecases

import "errors"

var (
	// ErrUnauthorized covers every failed credential or session check.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSaveFailed hides store failures that are not the client's fault.
	ErrSaveFailed = errors.New("unable to save record")
)
