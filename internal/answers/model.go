package answers

import (
	"time"

	"interview-backend/internal/scoring"
)

// Answer is one persisted answer with its evaluation.
type Answer struct {
	ID               string
	MockIDRef        string
	Question         string
	CorrectAns       string
	UserAns          string
	Feedback         string
	Rating           float64
	DetailedAnalysis scoring.DetailedAnalysis
	KeyPoints        []string
	MissingPoints    []string
	Improvements     []string
	Strengths        []string
	UserEmail        string
	CreatedAt        time.Time
}
