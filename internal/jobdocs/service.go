package jobdocs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"interview-backend/internal/extract"
	"interview-backend/internal/shared/storage/object"
	"interview-backend/internal/shared/telemetry"
)

// Service contains business logic for job documents.
type Service struct {
	Store object.ObjectStore
	Repo  JobDocsRepo
}

// Upload stores the job description file, extracts its text and records the
// document. Extraction failure does not fail the upload; the raw file is
// still stored and Text falls back to an error for that document.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (JobDoc, error) {
	if fileName == "" {
		return JobDoc{}, fmt.Errorf("%w: file name required", ErrInvalidInput)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return JobDoc{}, fmt.Errorf("read upload: %w", err)
	}
	if len(raw) == 0 {
		return JobDoc{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(raw))
	if err != nil {
		return JobDoc{}, err
	}

	doc := JobDoc{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	text, err := extract.TextFromBytes(ctx, raw, mimeType, fileName)
	if err != nil {
		telemetry.Warn("jobdoc.extract_failed", map[string]any{
			"file_name": fileName,
			"error":     err.Error(),
		})
	} else if text != "" {
		textKey, _, _, saveErr := s.Store.Save(ctx, userID, fileName+".extracted.txt", strings.NewReader(text))
		if saveErr != nil {
			telemetry.Warn("jobdoc.extract_save_failed", map[string]any{
				"file_name": fileName,
				"error":     saveErr.Error(),
			})
		} else {
			doc.ExtractedTextKey = textKey
		}
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return JobDoc{}, err
	}
	return doc, nil
}

// List returns a user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]JobDoc, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Text returns the extracted text of a document.
func (s *Service) Text(ctx context.Context, userID, docID string) (string, error) {
	doc, err := s.Repo.GetByID(ctx, userID, docID)
	if err != nil {
		return "", err
	}
	if doc.ExtractedTextKey == "" {
		return "", fmt.Errorf("%w: no extracted text for document", ErrNotFound)
	}

	body, err := s.Store.Open(ctx, doc.ExtractedTextKey)
	if err != nil {
		return "", err
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
