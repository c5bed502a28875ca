package interviews

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of InterviewsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Interview // mockID -> interview
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Interview)}
}

// Create stores a new interview.
func (r *MemoryRepo) Create(ctx context.Context, iv Interview) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[iv.MockID]; exists {
		return ErrInvalidInput
	}
	r.data[iv.MockID] = iv
	return nil
}

// GetByMockID returns an interview by its mock ID.
func (r *MemoryRepo) GetByMockID(ctx context.Context, mockID string) (Interview, error) {
	if err := ctx.Err(); err != nil {
		return Interview{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	iv, ok := r.data[mockID]
	if !ok {
		return Interview{}, ErrNotFound
	}
	return iv, nil
}

// ListByUser returns a user's interviews, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, createdBy string) ([]Interview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Interview, 0)
	for _, iv := range r.data {
		if iv.CreatedBy == createdBy {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// SetQuestions records the outcome of question generation.
func (r *MemoryRepo) SetQuestions(ctx context.Context, mockID string, questions []Question, status QuestionsStatus, genErr string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.data[mockID]
	if !ok {
		return ErrNotFound
	}
	iv.Questions = questions
	iv.QuestionsStatus = status
	iv.GenerationError = genErr
	r.data[mockID] = iv
	return nil
}

// Complete transitions Pending to Completed exactly once.
func (r *MemoryRepo) Complete(ctx context.Context, mockID string, score float64, completedAt time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.data[mockID]
	if !ok || iv.Status != StatusPending {
		return false, nil
	}
	iv.Status = StatusCompleted
	iv.Score = &score
	iv.CompletedAt = &completedAt
	r.data[mockID] = iv
	return true, nil
}

var _ InterviewsRepo = (*MemoryRepo)(nil)
