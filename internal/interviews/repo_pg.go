package interviews

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements InterviewsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new interview.
func (r *PGRepo) Create(ctx context.Context, iv Interview) error {
	const query = `
INSERT INTO interviews (
    mock_id,
    job_position,
    job_desc,
    job_experience,
    questions,
    questions_status,
    status,
    created_by,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	questionsJSON, err := json.Marshal(iv.Questions)
	if err != nil {
		return err
	}
	if iv.QuestionsStatus == "" {
		iv.QuestionsStatus = QuestionsQueued
	}
	if iv.Status == "" {
		iv.Status = StatusPending
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		iv.MockID,
		iv.JobPosition,
		iv.JobDesc,
		iv.JobExperience,
		questionsJSON,
		string(iv.QuestionsStatus),
		string(iv.Status),
		iv.CreatedBy,
		iv.CreatedAt,
	)
	return err
}

const selectColumns = `mock_id, job_position, job_desc, job_experience, questions, questions_status, generation_error, status, score, created_by, created_at, completed_at`

// GetByMockID returns an interview by its mock ID.
func (r *PGRepo) GetByMockID(ctx context.Context, mockID string) (Interview, error) {
	const query = `
SELECT ` + selectColumns + `
FROM interviews
WHERE mock_id = $1
LIMIT 1`

	iv, err := scanInterview(r.DB.QueryRowContext(ctx, query, mockID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Interview{}, ErrNotFound
		}
		return Interview{}, err
	}
	return iv, nil
}

// ListByUser returns a user's interviews, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, createdBy string) ([]Interview, error) {
	const query = `
SELECT ` + selectColumns + `
FROM interviews
WHERE created_by = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, createdBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Interview, 0)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// SetQuestions records the outcome of question generation.
func (r *PGRepo) SetQuestions(ctx context.Context, mockID string, questions []Question, status QuestionsStatus, genErr string) error {
	const query = `
UPDATE interviews
SET questions = $1, questions_status = $2, generation_error = $3
WHERE mock_id = $4`

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return err
	}

	var genErrValue sql.NullString
	if genErr != "" {
		genErrValue = sql.NullString{String: genErr, Valid: true}
	}

	res, err := r.DB.ExecContext(ctx, query, questionsJSON, string(status), genErrValue, mockID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Complete transitions Pending to Completed exactly once. The status guard in
// the WHERE clause makes the transition race-safe.
func (r *PGRepo) Complete(ctx context.Context, mockID string, score float64, completedAt time.Time) (bool, error) {
	const query = `
UPDATE interviews
SET status = $1, score = $2, completed_at = $3
WHERE mock_id = $4 AND status = $5`

	res, err := r.DB.ExecContext(ctx, query, string(StatusCompleted), score, completedAt, mockID, string(StatusPending))
	if err != nil {
		return false, err
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterview(row rowScanner) (Interview, error) {
	var iv Interview
	var questionsJSON []byte
	var questionsStatus string
	var genErr sql.NullString
	var status string
	var score sql.NullFloat64
	var completedAt sql.NullTime

	err := row.Scan(
		&iv.MockID,
		&iv.JobPosition,
		&iv.JobDesc,
		&iv.JobExperience,
		&questionsJSON,
		&questionsStatus,
		&genErr,
		&status,
		&score,
		&iv.CreatedBy,
		&iv.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return Interview{}, err
	}

	if len(questionsJSON) > 0 {
		if err := json.Unmarshal(questionsJSON, &iv.Questions); err != nil {
			return Interview{}, err
		}
	}
	iv.QuestionsStatus = QuestionsStatus(questionsStatus)
	if genErr.Valid {
		iv.GenerationError = genErr.String
	}
	iv.Status = Status(status)
	if score.Valid {
		iv.Score = &score.Float64
	}
	if completedAt.Valid {
		iv.CompletedAt = &completedAt.Time
	}
	return iv, nil
}

var _ InterviewsRepo = (*PGRepo)(nil)
