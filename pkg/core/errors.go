package core

import "errors"

// Common errors.
var (
	ErrInvalidDay        = errors.New("invalid day")
	ErrOutOfRange        = errors.New("day is outside the calendar range")
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	ErrArchiveNotFound   = errors.New("archive not found")
)
