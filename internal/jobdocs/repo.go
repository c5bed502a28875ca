package jobdocs

import "context"

// JobDocsRepo defines persistence operations for job documents.
type JobDocsRepo interface {
	Create(ctx context.Context, doc JobDoc) error
	GetByID(ctx context.Context, userID, docID string) (JobDoc, error)
	ListByUser(ctx context.Context, userID string) ([]JobDoc, error)
}
