package schedule

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of SchedulesRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []Schedule
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create stores a new schedule.
func (r *MemoryRepo) Create(ctx context.Context, s Schedule) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, s)
	return nil
}

// ListByUser returns schedules created by a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, scheduledBy string) ([]Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Schedule, 0)
	for _, s := range r.data {
		if s.ScheduledBy == scheduledBy {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// HasPendingForCandidate reports whether the candidate already has a pending
// schedule.
func (r *MemoryRepo) HasPendingForCandidate(ctx context.Context, candidateID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.data {
		if s.CandidateID == candidateID && s.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}

var _ SchedulesRepo = (*MemoryRepo)(nil)
