package scoring

import (
	"strings"
	"testing"
)

const validFeedbackJSON = `{
  "rating": 6,
  "overallFeedback": "Solid answer with room to grow.",
  "detailedAnalysis": {
    "relevance": {"score": 8, "feedback": "On topic."},
    "completeness": {"score": 6, "feedback": "Missed edge cases."},
    "accuracy": {"score": 7, "feedback": "Mostly correct."},
    "clarity": {"score": 9, "feedback": "Well structured."}
  },
  "keyPointsCovered": ["goroutines", "channels"],
  "missingPoints": ["select"],
  "improvements": ["mention select statements"],
  "strengths": ["clear examples"]
}`

func TestParseFeedbackRecomputesRating(t *testing.T) {
	fb, err := ParseFeedback(validFeedbackJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	// (8+6+7+9) * 0.25 = 7.5, overriding the model's top-level 6.
	if fb.Rating != 7.5 {
		t.Errorf("rating = %v, want 7.5", fb.Rating)
	}
	if fb.OverallFeedback != "Solid answer with room to grow." {
		t.Errorf("overallFeedback = %q", fb.OverallFeedback)
	}
}

func TestParseFeedbackStripsFences(t *testing.T) {
	fenced := "```json\n" + validFeedbackJSON + "\n```"
	fb, err := ParseFeedback(fenced)
	if err != nil {
		t.Fatalf("parse fenced: %v", err)
	}
	if fb.Rating != 7.5 {
		t.Errorf("rating = %v, want 7.5", fb.Rating)
	}
}

func TestParseFeedbackInvalidJSON(t *testing.T) {
	if _, err := ParseFeedback("this is not json"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseFeedbackMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing rating", `{"overallFeedback": "text"}`},
		{"missing overallFeedback", `{"rating": 7}`},
		{"blank overallFeedback", `{"rating": 7, "overallFeedback": "   "}`},
		{"missing detailedAnalysis", `{"rating": 7, "overallFeedback": "Good answer overall."}`},
		{"partial detailedAnalysis", `{"rating": 7, "overallFeedback": "Good answer overall.", "detailedAnalysis": {"relevance": {"score": 8, "feedback": "On topic."}}}`},
		{"sub-score above range", `{"rating": 7, "overallFeedback": "Good answer overall.", "detailedAnalysis": {"relevance": {"score": 11}, "completeness": {"score": 6}, "accuracy": {"score": 7}, "clarity": {"score": 9}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseFeedback(tc.raw); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestFallbackFeedback(t *testing.T) {
	fb := FallbackFeedback()
	if fb.Rating != 5 {
		t.Errorf("rating = %v, want 5", fb.Rating)
	}
	if fb.OverallFeedback == "" {
		t.Error("expected a fallback message")
	}
}

func TestWeightedRatingBounds(t *testing.T) {
	for _, scores := range [][4]float64{
		{1, 1, 1, 1},
		{10, 10, 10, 10},
		{1, 10, 1, 10},
		{3, 7, 5, 9},
	} {
		da := DetailedAnalysis{
			Relevance:    CriterionScore{Score: scores[0]},
			Completeness: CriterionScore{Score: scores[1]},
			Accuracy:     CriterionScore{Score: scores[2]},
			Clarity:      CriterionScore{Score: scores[3]},
		}
		got := WeightedRating(da)
		if got < 1 || got > 10 {
			t.Errorf("WeightedRating(%v) = %v, outside [1,10]", scores, got)
		}
		want := RoundOne((scores[0] + scores[1] + scores[2] + scores[3]) * 0.25)
		if got != want {
			t.Errorf("WeightedRating(%v) = %v, want %v", scores, got, want)
		}
	}
}

func TestFormatFeedbackSections(t *testing.T) {
	fb, err := ParseFeedback(validFeedbackJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	for _, want := range []string{
		"Overall Rating: 7.5/10",
		"Detailed Analysis:",
		"- Relevance (8/10): On topic.",
		"Key Points Covered:",
		"• goroutines",
		"Areas for Improvement:",
		"• select",
		"Recommendations:",
		"Strengths:",
	} {
		if !strings.Contains(fb.FormattedFeedback, want) {
			t.Errorf("formatted feedback missing %q\n%s", want, fb.FormattedFeedback)
		}
	}
}
