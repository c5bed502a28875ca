package interviews

import (
	"context"
	"time"
)

// InterviewsRepo defines persistence operations for interview sessions.
type InterviewsRepo interface {
	Create(ctx context.Context, iv Interview) error
	GetByMockID(ctx context.Context, mockID string) (Interview, error)
	ListByUser(ctx context.Context, createdBy string) ([]Interview, error)
	// SetQuestions records the outcome of question generation.
	SetQuestions(ctx context.Context, mockID string, questions []Question, status QuestionsStatus, genErr string) error
	// Complete transitions Pending to Completed with the final score. It
	// reports whether a row was transitioned; false means the interview was
	// missing or already completed.
	Complete(ctx context.Context, mockID string, score float64, completedAt time.Time) (bool, error)
}
