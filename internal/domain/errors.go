package domain

import "errors"

// Common errors
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("record not found")
	ErrForbidden  = errors.New("access forbidden: you don't own this resource")
	ErrUpstream   = errors.New("upstream dependency failed")
)
