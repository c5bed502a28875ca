package scoring

import (
	"math"
	"strings"
)

// ComparisonResult holds the outcome of a keyword-level comparison between a
// user's answer and the reference answer.
type ComparisonResult struct {
	MatchingKeywords []string `json:"matchingKeywords"`
	MissingKeywords  []string `json:"missingKeywords"`
	SimilarityScore  float64  `json:"similarityScore"`
}

const strippedPunctuation = ".,/#!$%^&*;:{}=-_`~()"

// Compare normalizes both answers, tokenizes them into word sets and scores
// the overlap against the reference vocabulary. The score is
// matching/reference scaled to 10, rounded to one decimal and capped at 10.
// An empty reference yields a score of 0.
func Compare(userAnswer, referenceAnswer string) ComparisonResult {
	userWords := tokenize(userAnswer)
	refWords := tokenize(referenceAnswer)

	refSet := make(map[string]struct{}, len(refWords))
	for _, w := range refWords {
		refSet[w] = struct{}{}
	}
	userSet := make(map[string]struct{}, len(userWords))
	for _, w := range userWords {
		userSet[w] = struct{}{}
	}

	matching := make([]string, 0, len(userWords))
	seen := make(map[string]struct{}, len(userWords))
	for _, w := range userWords {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := refSet[w]; ok {
			matching = append(matching, w)
		}
	}

	missing := make([]string, 0, len(refWords))
	seen = make(map[string]struct{}, len(refWords))
	for _, w := range refWords {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := userSet[w]; !ok {
			missing = append(missing, w)
		}
	}

	score := 0.0
	if len(refSet) > 0 {
		score = float64(len(matching)) / float64(len(refSet)) * 10
		score = math.Min(RoundOne(score), 10)
	}

	return ComparisonResult{
		MatchingKeywords: matching,
		MissingKeywords:  missing,
		SimilarityScore:  score,
	}
}

// RoundOne rounds to one decimal place.
func RoundOne(v float64) float64 {
	return math.Round(v*10) / 10
}

func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedPunctuation, r) {
			return -1
		}
		return r
	}, lowered)
	return strings.Fields(cleaned)
}
