package profiles

import "errors"

var (
	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPersist indicates the profile document could not be saved.
	ErrPersist = errors.New("persist profiles")
)
