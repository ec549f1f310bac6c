package services

import "errors"

// Domain errors. Handlers map these onto HTTP status codes with errors.Is;
// an operation that returns one of them has made no state change.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid booking transition")
	ErrUnauthorized      = errors.New("not permitted for this user")
	ErrNotFound          = errors.New("record not found")
)
