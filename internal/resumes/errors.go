package resumes

import "errors"

var (
	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnreadableDocument indicates the upload could not be read as its declared type.
	ErrUnreadableDocument = errors.New("unreadable document")
)
