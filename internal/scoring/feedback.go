package scoring

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CriterionScore is one sub-score of the detailed analysis.
type CriterionScore struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// DetailedAnalysis carries the four scoring criteria.
type DetailedAnalysis struct {
	Relevance    CriterionScore `json:"relevance"`
	Completeness CriterionScore `json:"completeness"`
	Accuracy     CriterionScore `json:"accuracy"`
	Clarity      CriterionScore `json:"clarity"`
}

// Feedback is the structured evaluation of a single answer.
type Feedback struct {
	Rating            float64          `json:"rating"`
	OverallFeedback   string           `json:"overallFeedback"`
	DetailedAnalysis  DetailedAnalysis `json:"detailedAnalysis"`
	KeyPointsCovered  []string         `json:"keyPointsCovered"`
	MissingPoints     []string         `json:"missingPoints"`
	Improvements      []string         `json:"improvements"`
	Strengths         []string         `json:"strengths"`
	FormattedFeedback string           `json:"formattedFeedback,omitempty"`
}

const fallbackMessage = "We couldn't generate specific feedback for your answer. Please ensure your response is clear, complete, and directly addresses the question."

// FallbackFeedback returns the degraded feedback used when the model response
// cannot be parsed or fails validation.
func FallbackFeedback() Feedback {
	return Feedback{
		Rating:          5,
		OverallFeedback: fallbackMessage,
	}
}

// StripFences removes markdown code-fence markers from model output.
func StripFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// ParseFeedback parses raw model output into a Feedback. The rating is
// recomputed as the equal-weighted average of the four sub-scores, replacing
// whatever top-level rating the model supplied, and a formatted multi-section
// summary is attached. Returns an error when the payload is not valid JSON,
// the rating or overall feedback is missing, or any sub-score falls outside
// the 1-10 range; callers substitute FallbackFeedback in that case.
func ParseFeedback(raw string) (Feedback, error) {
	cleaned := StripFences(raw)

	var fb Feedback
	if err := json.Unmarshal([]byte(cleaned), &fb); err != nil {
		return Feedback{}, fmt.Errorf("parse feedback: %w", err)
	}
	if fb.Rating == 0 || strings.TrimSpace(fb.OverallFeedback) == "" {
		return Feedback{}, fmt.Errorf("invalid feedback format")
	}
	da := fb.DetailedAnalysis
	for _, c := range []CriterionScore{da.Relevance, da.Completeness, da.Accuracy, da.Clarity} {
		if c.Score < 1 || c.Score > 10 {
			return Feedback{}, fmt.Errorf("invalid feedback format")
		}
	}

	fb.Rating = WeightedRating(fb.DetailedAnalysis)
	fb.FormattedFeedback = FormatFeedback(fb)
	return fb, nil
}

// WeightedRating combines the four sub-scores at 25% each, rounded to one
// decimal.
func WeightedRating(da DetailedAnalysis) float64 {
	sum := da.Relevance.Score + da.Completeness.Score + da.Accuracy.Score + da.Clarity.Score
	return RoundOne(sum * 0.25)
}

// FormatFeedback renders the human-readable multi-section summary.
func FormatFeedback(fb Feedback) string {
	da := fb.DetailedAnalysis

	var b strings.Builder
	fmt.Fprintf(&b, "Overall Rating: %s/10\n\n", trimFloat(fb.Rating))
	b.WriteString(fb.OverallFeedback)
	b.WriteString("\n\nDetailed Analysis:\n")
	fmt.Fprintf(&b, "- Relevance (%s/10): %s\n", trimFloat(da.Relevance.Score), da.Relevance.Feedback)
	fmt.Fprintf(&b, "- Completeness (%s/10): %s\n", trimFloat(da.Completeness.Score), da.Completeness.Feedback)
	fmt.Fprintf(&b, "- Accuracy (%s/10): %s\n", trimFloat(da.Accuracy.Score), da.Accuracy.Feedback)
	fmt.Fprintf(&b, "- Clarity (%s/10): %s\n", trimFloat(da.Clarity.Score), da.Clarity.Feedback)

	writeSection(&b, "Key Points Covered", fb.KeyPointsCovered)
	writeSection(&b, "Areas for Improvement", fb.MissingPoints)
	writeSection(&b, "Recommendations", fb.Improvements)
	writeSection(&b, "Strengths", fb.Strengths)

	return b.String()
}

func writeSection(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimSuffix(s, "0")
	return strings.TrimSuffix(s, ".")
}
