package answers

import "context"

// AnswersRepo defines persistence operations for answers.
type AnswersRepo interface {
	Create(ctx context.Context, a Answer) error
	ListByMockID(ctx context.Context, mockID string) ([]Answer, error)
	// ExistsForQuestion reports whether an answer to this exact question text
	// was already saved for the interview.
	ExistsForQuestion(ctx context.Context, mockID, question string) (bool, error)
}
