package reimbursements

import "errors"

var (
	// ErrNotFound indicates no record exists with the requested id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates an empty or uncoercible payload.
	ErrInvalidInput = errors.New("invalid input")
)
