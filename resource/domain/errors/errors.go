package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrResourceNotFound = errors.New("resource not found")
	ErrCodeConflict     = errors.New("resource code already exists")
)
