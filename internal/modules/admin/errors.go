package admin

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("section not found")
	ErrUnknownType = errors.New("unknown section type")
)
