package interviews

import "errors"

var (
	ErrNotFound         = errors.New("interview not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyCompleted = errors.New("interview already completed")
	ErrBadQuestions     = errors.New("invalid question format received")
)
