package auth

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBanned             = errors.New("account banned")
	ErrNotFound           = errors.New("user not found")
)
