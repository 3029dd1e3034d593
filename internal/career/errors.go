package career

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPersistence  = errors.New("career persistence failed")
)
