package answers

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of AnswersRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Answer // mockID -> answers
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Answer)}
}

// Create appends an answer for an interview.
func (r *MemoryRepo) Create(ctx context.Context, a Answer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[a.MockIDRef] = append(r.data[a.MockIDRef], a)
	return nil
}

// ListByMockID returns all answers for an interview in submission order.
func (r *MemoryRepo) ListByMockID(ctx context.Context, mockID string) ([]Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.data[mockID]
	out := make([]Answer, len(stored))
	copy(out, stored)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ExistsForQuestion reports whether the question was already answered.
func (r *MemoryRepo) ExistsForQuestion(ctx context.Context, mockID, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.data[mockID] {
		if a.Question == question {
			return true, nil
		}
	}
	return false, nil
}

var _ AnswersRepo = (*MemoryRepo)(nil)
