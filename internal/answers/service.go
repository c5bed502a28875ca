package answers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"interview-backend/internal/scoring"
	"interview-backend/internal/shared/metrics"
	"interview-backend/internal/shared/telemetry"
)

// Service contains business logic for answers.
type Service struct {
	Repo AnswersRepo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo AnswersRepo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// SaveInput carries a scored answer ready for persistence.
type SaveInput struct {
	MockIDRef        string
	Question         string
	CorrectAns       string
	UserAns          string
	Feedback         string
	Rating           float64
	DetailedAnalysis scoring.DetailedAnalysis
	KeyPoints        []string
	MissingPoints    []string
	Improvements     []string
	Strengths        []string
	UserEmail        string
}

// Save persists an answer after a checked-then-create duplicate guard. An
// existing answer to the same question text is never overwritten.
func (s *Service) Save(ctx context.Context, in SaveInput) (Answer, error) {
	in.Question = strings.TrimSpace(in.Question)
	if in.MockIDRef == "" || in.Question == "" || in.UserEmail == "" {
		return Answer{}, fmt.Errorf("%w: mock id, question and user email are required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.UserAns) == "" {
		return Answer{}, fmt.Errorf("%w: answer text is required", ErrInvalidInput)
	}
	if in.Rating < 0 || in.Rating > 10 {
		return Answer{}, fmt.Errorf("%w: rating must be within [0,10]", ErrInvalidInput)
	}

	exists, err := s.Repo.ExistsForQuestion(ctx, in.MockIDRef, in.Question)
	if err != nil {
		return Answer{}, err
	}
	if exists {
		metrics.IncAnswerRejected()
		return Answer{}, ErrDuplicate
	}

	a := Answer{
		ID:               uuid.NewString(),
		MockIDRef:        in.MockIDRef,
		Question:         in.Question,
		CorrectAns:       in.CorrectAns,
		UserAns:          in.UserAns,
		Feedback:         in.Feedback,
		Rating:           in.Rating,
		DetailedAnalysis: in.DetailedAnalysis,
		KeyPoints:        in.KeyPoints,
		MissingPoints:    in.MissingPoints,
		Improvements:     in.Improvements,
		Strengths:        in.Strengths,
		UserEmail:        in.UserEmail,
		CreatedAt:        s.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return Answer{}, err
	}

	metrics.IncAnswerSaved()
	telemetry.Info("answer.saved", map[string]any{
		"mock_id":   a.MockIDRef,
		"answer_id": a.ID,
		"rating":    a.Rating,
	})
	return a, nil
}

// List returns all answers for an interview.
func (s *Service) List(ctx context.Context, mockID string) ([]Answer, error) {
	if mockID == "" {
		return nil, fmt.Errorf("%w: mock id required", ErrInvalidInput)
	}
	return s.Repo.ListByMockID(ctx, mockID)
}

// AverageRating computes the arithmetic mean of answer ratings rounded to one
// decimal. An empty slice yields 0.
func AverageRating(items []Answer) float64 {
	if len(items) == 0 {
		return 0
	}
	total := 0.0
	for _, a := range items {
		total += a.Rating
	}
	return scoring.RoundOne(total / float64(len(items)))
}
