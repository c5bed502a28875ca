package interviews

import "time"

// Status is the interview session lifecycle state.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// QuestionsStatus tracks asynchronous question generation.
type QuestionsStatus string

const (
	QuestionsQueued QuestionsStatus = "queued"
	QuestionsReady  QuestionsStatus = "ready"
	QuestionsFailed QuestionsStatus = "failed"
)

// Question is one generated question with its reference answer.
type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Interview is one mock interview session.
type Interview struct {
	MockID          string
	JobPosition     string
	JobDesc         string
	JobExperience   string
	Questions       []Question
	QuestionsStatus QuestionsStatus
	GenerationError string
	Status          Status
	Score           *float64
	CreatedBy       string
	CreatedAt       time.Time
	CompletedAt     *time.Time
}
