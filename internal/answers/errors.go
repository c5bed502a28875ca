package answers

import "errors"

var (
	ErrNotFound     = errors.New("answer not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("question already answered")
)
