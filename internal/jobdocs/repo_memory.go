package jobdocs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of JobDocsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]JobDoc // userID -> docs
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]JobDoc)}
}

// Create stores a new job document.
func (r *MemoryRepo) Create(ctx context.Context, doc JobDoc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.UserID] = append(r.data[doc.UserID], doc)
	return nil
}

// GetByID returns a document by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, docID string) (JobDoc, error) {
	if err := ctx.Err(); err != nil {
		return JobDoc{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.data[userID] {
		if doc.ID == docID {
			return doc, nil
		}
	}
	return JobDoc{}, ErrNotFound
}

// ListByUser returns a user's documents, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]JobDoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.data[userID]
	out := make([]JobDoc, len(stored))
	copy(out, stored)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var _ JobDocsRepo = (*MemoryRepo)(nil)
