package uploads

import "errors"

var (
	// ErrNotFound indicates no stored file exists under the requested name.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidInput indicates a missing or unreadable upload.
	ErrInvalidInput = errors.New("invalid input")
)
