package schedule

import "time"

// Status is the lifecycle state of a scheduled live interview.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Schedule is one scheduled live interview for a candidate.
type Schedule struct {
	ID             string
	CandidateID    string
	CandidateName  string
	CandidateEmail string
	Role           string
	InterviewDate  string // YYYY-MM-DD
	InterviewTime  string // HH:MM
	ScheduledBy    string
	Status         Status
	CreatedAt      time.Time
}
