package jobdocs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements JobDocsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new job document.
func (r *PGRepo) Create(ctx context.Context, doc JobDoc) error {
	const query = `
INSERT INTO job_docs (
    id,
    user_id,
    file_name,
    mime_type,
    size_bytes,
    storage_key,
    extracted_text_key,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var extractedKey sql.NullString
	if doc.ExtractedTextKey != "" {
		extractedKey = sql.NullString{String: doc.ExtractedTextKey, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		doc.StorageKey,
		extractedKey,
		doc.CreatedAt,
	)
	return err
}

const selectColumns = `id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, created_at`

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, docID string) (JobDoc, error) {
	const query = `
SELECT ` + selectColumns + `
FROM job_docs
WHERE user_id = $1 AND id = $2
LIMIT 1`

	doc, err := scanJobDoc(r.DB.QueryRowContext(ctx, query, userID, docID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobDoc{}, ErrNotFound
		}
		return JobDoc{}, err
	}
	return doc, nil
}

// ListByUser lists documents ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]JobDoc, error) {
	const query = `
SELECT ` + selectColumns + `
FROM job_docs
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobDoc, 0)
	for rows.Next() {
		doc, err := scanJobDoc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJobDoc(row rowScanner) (JobDoc, error) {
	var doc JobDoc
	var extractedKey sql.NullString
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageKey,
		&extractedKey,
		&doc.CreatedAt,
	)
	if err != nil {
		return JobDoc{}, err
	}
	if extractedKey.Valid {
		doc.ExtractedTextKey = extractedKey.String
	}
	return doc, nil
}

var _ JobDocsRepo = (*PGRepo)(nil)
