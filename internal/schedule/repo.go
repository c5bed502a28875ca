package schedule

import "context"

// SchedulesRepo defines persistence operations for scheduled interviews.
type SchedulesRepo interface {
	Create(ctx context.Context, s Schedule) error
	ListByUser(ctx context.Context, scheduledBy string) ([]Schedule, error)
	// HasPendingForCandidate reports whether the candidate already has a
	// pending scheduled interview.
	HasPendingForCandidate(ctx context.Context, candidateID string) (bool, error)
}
