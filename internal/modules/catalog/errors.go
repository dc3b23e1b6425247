package catalog

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("category not found")
	ErrConflict   = errors.New("slug already in use")
)
