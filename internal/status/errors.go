package status

import "errors"

// ErrInvalidInput indicates a missing client name.
var ErrInvalidInput = errors.New("invalid input")
