package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"interview-backend/internal/shared/telemetry"
)

// Service contains business logic for scheduled interviews.
type Service struct {
	Repo SchedulesRepo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo SchedulesRepo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// CreateInput carries the fields needed to schedule a live interview.
type CreateInput struct {
	CandidateID    string
	CandidateName  string
	CandidateEmail string
	Role           string
	InterviewDate  string // YYYY-MM-DD
	InterviewTime  string // HH:MM
	ScheduledBy    string
}

// Create validates and records a scheduled interview. A candidate can have at
// most one pending schedule; a second attempt fails with ErrDuplicate.
func (s *Service) Create(ctx context.Context, in CreateInput) (Schedule, error) {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(in.CandidateID) == "" {
		missing = append(missing, "Candidate ID")
	}
	if strings.TrimSpace(in.CandidateEmail) == "" {
		missing = append(missing, "Email")
	}
	if strings.TrimSpace(in.Role) == "" {
		missing = append(missing, "Role")
	}
	if strings.TrimSpace(in.CandidateName) == "" {
		missing = append(missing, "Name")
	}
	if len(missing) > 0 {
		return Schedule{}, fmt.Errorf("%w: missing required fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	if in.ScheduledBy == "" {
		return Schedule{}, fmt.Errorf("%w: scheduler is required", ErrInvalidInput)
	}

	date, err := time.Parse("2006-01-02", in.InterviewDate)
	if err != nil {
		return Schedule{}, fmt.Errorf("%w: interview date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if _, err := time.Parse("15:04", in.InterviewTime); err != nil {
		return Schedule{}, fmt.Errorf("%w: interview time must be HH:MM", ErrInvalidInput)
	}

	today := s.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return Schedule{}, fmt.Errorf("%w: please select a future date", ErrInvalidInput)
	}

	exists, err := s.Repo.HasPendingForCandidate(ctx, in.CandidateID)
	if err != nil {
		return Schedule{}, err
	}
	if exists {
		return Schedule{}, ErrDuplicate
	}

	sched := Schedule{
		ID:             uuid.NewString(),
		CandidateID:    in.CandidateID,
		CandidateName:  strings.TrimSpace(in.CandidateName),
		CandidateEmail: strings.TrimSpace(in.CandidateEmail),
		Role:           strings.TrimSpace(in.Role),
		InterviewDate:  in.InterviewDate,
		InterviewTime:  in.InterviewTime,
		ScheduledBy:    in.ScheduledBy,
		Status:         StatusPending,
		CreatedAt:      s.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, sched); err != nil {
		return Schedule{}, err
	}

	telemetry.Info("schedule.created", map[string]any{
		"schedule_id":  sched.ID,
		"candidate_id": sched.CandidateID,
		"date":         sched.InterviewDate,
	})
	return sched, nil
}

// List returns schedules created by the given user.
func (s *Service) List(ctx context.Context, scheduledBy string) ([]Schedule, error) {
	if scheduledBy == "" {
		return nil, fmt.Errorf("%w: user required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, scheduledBy)
}
