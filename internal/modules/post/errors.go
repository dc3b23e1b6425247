package post

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("post not found")
	ErrForbidden        = errors.New("forbidden")
	ErrNotRejected      = errors.New("only rejected posts can be appealed")
	ErrAppealInFlight   = errors.New("appeal already submitted")
	ErrIncompleteWizard = errors.New("wizard step incomplete")
)
