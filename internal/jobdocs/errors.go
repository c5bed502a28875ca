package jobdocs

import "errors"

var (
	ErrNotFound     = errors.New("job document not found")
	ErrInvalidInput = errors.New("invalid input")
)
