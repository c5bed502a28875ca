package schedule

import "errors"

var (
	ErrNotFound     = errors.New("schedule not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("an interview is already scheduled for this candidate")
)
