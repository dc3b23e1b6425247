package moderation

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("post not found")
	ErrForbidden  = errors.New("forbidden")
	ErrUpstream   = errors.New("moderation service unavailable")
)
