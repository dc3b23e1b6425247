package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("booking not found")
	ErrForbidden         = errors.New("forbidden")
	ErrOwnPost           = errors.New("cannot book own post")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("booking changed concurrently")
)
