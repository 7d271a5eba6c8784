package errors

import "errors"

var (
	// ErrRowNotFound is returned by a store when the backend reports the
	// row as missing instead of treating the delete as a no-op.
	ErrRowNotFound = errors.New("booking row not found")

	// ErrBadStatus is returned when the sheet API answers outside 2xx.
	ErrBadStatus = errors.New("unexpected store response status")
)
