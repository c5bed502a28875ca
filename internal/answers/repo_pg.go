package answers

import (
	"context"
	"database/sql"
	"encoding/json"

	"interview-backend/internal/scoring"
)

// PGRepo implements AnswersRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new answer.
func (r *PGRepo) Create(ctx context.Context, a Answer) error {
	const query = `
INSERT INTO answers (
    id,
    mock_id_ref,
    question,
    correct_ans,
    user_ans,
    feedback,
    rating,
    detailed_analysis,
    key_points,
    missing_points,
    improvements,
    strengths,
    user_email,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	detailedJSON, err := json.Marshal(a.DetailedAnalysis)
	if err != nil {
		return err
	}
	keyPointsJSON, err := json.Marshal(orEmpty(a.KeyPoints))
	if err != nil {
		return err
	}
	missingJSON, err := json.Marshal(orEmpty(a.MissingPoints))
	if err != nil {
		return err
	}
	improvementsJSON, err := json.Marshal(orEmpty(a.Improvements))
	if err != nil {
		return err
	}
	strengthsJSON, err := json.Marshal(orEmpty(a.Strengths))
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		a.ID,
		a.MockIDRef,
		a.Question,
		a.CorrectAns,
		a.UserAns,
		a.Feedback,
		a.Rating,
		detailedJSON,
		keyPointsJSON,
		missingJSON,
		improvementsJSON,
		strengthsJSON,
		a.UserEmail,
		a.CreatedAt,
	)
	return err
}

// ListByMockID returns all answers for an interview in submission order.
func (r *PGRepo) ListByMockID(ctx context.Context, mockID string) ([]Answer, error) {
	const query = `
SELECT id, mock_id_ref, question, correct_ans, user_ans, feedback, rating,
       detailed_analysis, key_points, missing_points, improvements, strengths,
       user_email, created_at
FROM answers
WHERE mock_id_ref = $1
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, mockID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Answer, 0)
	for rows.Next() {
		var a Answer
		var detailedJSON, keyPointsJSON, missingJSON, improvementsJSON, strengthsJSON []byte
		if err := rows.Scan(
			&a.ID,
			&a.MockIDRef,
			&a.Question,
			&a.CorrectAns,
			&a.UserAns,
			&a.Feedback,
			&a.Rating,
			&detailedJSON,
			&keyPointsJSON,
			&missingJSON,
			&improvementsJSON,
			&strengthsJSON,
			&a.UserEmail,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(detailedJSON) > 0 {
			var da scoring.DetailedAnalysis
			if err := json.Unmarshal(detailedJSON, &da); err != nil {
				return nil, err
			}
			a.DetailedAnalysis = da
		}
		if err := unmarshalList(keyPointsJSON, &a.KeyPoints); err != nil {
			return nil, err
		}
		if err := unmarshalList(missingJSON, &a.MissingPoints); err != nil {
			return nil, err
		}
		if err := unmarshalList(improvementsJSON, &a.Improvements); err != nil {
			return nil, err
		}
		if err := unmarshalList(strengthsJSON, &a.Strengths); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ExistsForQuestion reports whether the question was already answered.
func (r *PGRepo) ExistsForQuestion(ctx context.Context, mockID, question string) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM answers WHERE mock_id_ref = $1 AND question = $2
)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, mockID, question).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func unmarshalList(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		*dst = []string{}
		return nil
	}
	return json.Unmarshal(raw, dst)
}

var _ AnswersRepo = (*PGRepo)(nil)
