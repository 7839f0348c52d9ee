package catalog

import "errors"

var (
	ErrNotFound        = errors.New("equipment not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidCategory = errors.New("invalid category")
	ErrValidation      = errors.New("validation error")
)
