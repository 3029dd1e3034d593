package generation

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPersistence  = errors.New("generation persistence failed")
)
