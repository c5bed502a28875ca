package schedule

import (
	"context"
	"database/sql"
)

// PGRepo implements SchedulesRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new schedule.
func (r *PGRepo) Create(ctx context.Context, s Schedule) error {
	const query = `
INSERT INTO schedules (
    id,
    candidate_id,
    candidate_name,
    candidate_email,
    role,
    interview_date,
    interview_time,
    scheduled_by,
    status,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		s.ID,
		s.CandidateID,
		s.CandidateName,
		s.CandidateEmail,
		s.Role,
		s.InterviewDate,
		s.InterviewTime,
		s.ScheduledBy,
		string(s.Status),
		s.CreatedAt,
	)
	return err
}

// ListByUser returns schedules created by a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, scheduledBy string) ([]Schedule, error) {
	const query = `
SELECT id, candidate_id, candidate_name, candidate_email, role,
       to_char(interview_date, 'YYYY-MM-DD'), interview_time, scheduled_by, status, created_at
FROM schedules
WHERE scheduled_by = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, scheduledBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Schedule, 0)
	for rows.Next() {
		var s Schedule
		var status string
		if err := rows.Scan(
			&s.ID,
			&s.CandidateID,
			&s.CandidateName,
			&s.CandidateEmail,
			&s.Role,
			&s.InterviewDate,
			&s.InterviewTime,
			&s.ScheduledBy,
			&status,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.Status = Status(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

// HasPendingForCandidate reports whether the candidate already has a pending
// schedule.
func (r *PGRepo) HasPendingForCandidate(ctx context.Context, candidateID string) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM schedules WHERE candidate_id = $1 AND status = $2
)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, candidateID, string(StatusPending)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var _ SchedulesRepo = (*PGRepo)(nil)
