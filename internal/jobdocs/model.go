package jobdocs

import "time"

// JobDoc is an uploaded job description document.
type JobDoc struct {
	ID               string
	UserID           string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageKey       string
	ExtractedTextKey string
	CreatedAt        time.Time
}
