package interviews

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"interview-backend/internal/llm"
	"interview-backend/internal/queue"
	"interview-backend/internal/scoring"
	"interview-backend/internal/shared/metrics"
	"interview-backend/internal/shared/telemetry"
)

const generationTimeout = 2 * time.Minute

// Service contains business logic for interview sessions.
type Service struct {
	Repo          InterviewsRepo
	LLM           llm.Client
	Queue         queue.Client // optional; nil runs generation in-process
	QuestionCount int
	Now           func() time.Time
}

// NewService constructs a Service with defaults applied.
func NewService(repo InterviewsRepo, client llm.Client, q queue.Client, questionCount int) *Service {
	if questionCount <= 0 {
		questionCount = 10
	}
	return &Service{
		Repo:          repo,
		LLM:           client,
		Queue:         q,
		QuestionCount: questionCount,
		Now:           time.Now,
	}
}

// CreateInput carries the fields needed to start a new mock interview.
type CreateInput struct {
	JobPosition   string
	JobDesc       string
	JobExperience string
	CreatedBy     string
}

// Create records a new interview and kicks off question generation. The
// questions arrive asynchronously; callers poll the interview until its
// question status is ready.
func (s *Service) Create(ctx context.Context, in CreateInput) (Interview, error) {
	in.JobPosition = strings.TrimSpace(in.JobPosition)
	in.JobDesc = strings.TrimSpace(in.JobDesc)
	in.JobExperience = strings.TrimSpace(in.JobExperience)
	if in.JobPosition == "" || in.JobDesc == "" || in.JobExperience == "" {
		return Interview{}, fmt.Errorf("%w: job position, description and experience are required", ErrInvalidInput)
	}
	if in.CreatedBy == "" {
		return Interview{}, fmt.Errorf("%w: creator is required", ErrInvalidInput)
	}

	iv := Interview{
		MockID:          uuid.NewString(),
		JobPosition:     in.JobPosition,
		JobDesc:         in.JobDesc,
		JobExperience:   in.JobExperience,
		QuestionsStatus: QuestionsQueued,
		Status:          StatusPending,
		CreatedBy:       in.CreatedBy,
		CreatedAt:       s.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, iv); err != nil {
		return Interview{}, err
	}

	s.enqueueGeneration(ctx, iv.MockID)
	return iv, nil
}

func (s *Service) enqueueGeneration(ctx context.Context, mockID string) {
	if s.Queue != nil {
		msg := queue.Message{
			MockID:     mockID,
			RequestID:  requestIDFromContext(ctx),
			EnqueuedAt: s.Now().UTC().Format(time.RFC3339),
			Version:    1,
		}
		err := s.Queue.Send(ctx, msg)
		if err == nil {
			return
		}
		telemetry.Warn("interview.enqueue_failed", map[string]any{
			"mock_id": mockID,
			"error":   err.Error(),
		})
	}

	// No queue or enqueue failed; generate in-process so the interview is
	// never stuck in queued.
	go func() {
		genCtx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()
		if err := s.GenerateQuestions(genCtx, mockID); err != nil {
			telemetry.Error("interview.generation_failed", map[string]any{
				"mock_id": mockID,
				"error":   err.Error(),
			})
		}
	}()
}

// GenerateQuestions runs question generation for one interview and records
// the outcome. It is invoked by the queue worker or in-process after Create.
func (s *Service) GenerateQuestions(ctx context.Context, mockID string) error {
	iv, err := s.Repo.GetByMockID(ctx, mockID)
	if err != nil {
		return err
	}
	if iv.QuestionsStatus == QuestionsReady {
		return nil
	}

	metrics.IncGenerationStarted()
	telemetry.Info("interview.generation_started", map[string]any{"mock_id": mockID})

	prompt := llm.BuildQuestionsPrompt(iv.JobPosition, iv.JobDesc, iv.JobExperience, s.QuestionCount)
	raw, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		metrics.IncGenerationFailed()
		if setErr := s.Repo.SetQuestions(ctx, mockID, nil, QuestionsFailed, err.Error()); setErr != nil {
			return setErr
		}
		return err
	}

	questions, err := ParseQuestions(raw, s.QuestionCount)
	if err != nil {
		metrics.IncGenerationFailed()
		if setErr := s.Repo.SetQuestions(ctx, mockID, nil, QuestionsFailed, err.Error()); setErr != nil {
			return setErr
		}
		return err
	}

	if err := s.Repo.SetQuestions(ctx, mockID, questions, QuestionsReady, ""); err != nil {
		metrics.IncGenerationFailed()
		return err
	}

	metrics.IncGenerationCompleted()
	telemetry.Info("interview.generation_completed", map[string]any{
		"mock_id":   mockID,
		"questions": len(questions),
	})
	return nil
}

// ParseQuestions strips markdown fences and parses the question array. The
// model must return exactly want questions.
func ParseQuestions(raw string, want int) ([]Question, error) {
	cleaned := scoring.StripFences(raw)

	var questions []Question
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadQuestions, err)
	}
	if len(questions) != want {
		return nil, fmt.Errorf("%w: got %d questions, want %d", ErrBadQuestions, len(questions), want)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("%w: question %d is empty", ErrBadQuestions, i)
		}
	}
	return questions, nil
}

// Get returns one interview by mock ID.
func (s *Service) Get(ctx context.Context, mockID string) (Interview, error) {
	if mockID == "" {
		return Interview{}, fmt.Errorf("%w: mock id required", ErrInvalidInput)
	}
	return s.Repo.GetByMockID(ctx, mockID)
}

// List returns all interviews created by the given user.
func (s *Service) List(ctx context.Context, createdBy string) ([]Interview, error) {
	if createdBy == "" {
		return nil, fmt.Errorf("%w: user required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, createdBy)
}

// Complete finalizes an interview with its average score. The Pending to
// Completed transition happens at most once; a repeat call fails with
// ErrAlreadyCompleted and changes nothing.
func (s *Service) Complete(ctx context.Context, mockID string, score float64) (Interview, error) {
	if mockID == "" {
		return Interview{}, fmt.Errorf("%w: mock id required", ErrInvalidInput)
	}
	if score < 0 || score > 10 {
		return Interview{}, fmt.Errorf("%w: score must be within [0,10]", ErrInvalidInput)
	}

	transitioned, err := s.Repo.Complete(ctx, mockID, score, s.Now().UTC())
	if err != nil {
		return Interview{}, err
	}
	if !transitioned {
		if _, getErr := s.Repo.GetByMockID(ctx, mockID); getErr != nil {
			return Interview{}, getErr
		}
		return Interview{}, ErrAlreadyCompleted
	}

	metrics.IncInterviewCompleted()
	telemetry.Info("interview.completed", map[string]any{
		"mock_id": mockID,
		"score":   score,
	})
	return s.Repo.GetByMockID(ctx, mockID)
}

type requestIDKey struct{}

// WithRequestID tags a context with the inbound request ID for queue messages.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}
