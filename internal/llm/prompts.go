package llm

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildQuestionsPrompt produces the prompt used to generate a question set for
// a new mock interview. The model is asked for a bare JSON array so the caller
// can parse it directly after fence stripping.
func BuildQuestionsPrompt(jobPosition, jobDescription, yearsExperience string, count int) string {
	return fmt.Sprintf(
		`Based on the Job Position: %s, Job Description: %s, and Years of Experience: %s, generate exactly %d interview questions and their answers in the format [{"question": "Question", "answer": "Answer"}].`,
		jobPosition, jobDescription, yearsExperience, count)
}

// FeedbackPromptInput carries everything embedded in the scoring prompt,
// including the keyword comparison computed locally before the model call.
type FeedbackPromptInput struct {
	Question         string
	ReferenceAnswer  string
	UserAnswer       string
	SimilarityScore  float64
	MatchingKeywords []string
	MissingKeywords  []string
}

// BuildFeedbackPrompt produces the answer-scoring prompt. The model is seeded
// with the locally computed similarity score and keyword lists and asked for a
// strict JSON object matching the feedback schema.
func BuildFeedbackPrompt(in FeedbackPromptInput) string {
	var b strings.Builder

	b.WriteString("Context:\n")
	b.WriteString("Question: " + in.Question + "\n")
	b.WriteString("Expected Answer: " + in.ReferenceAnswer + "\n")
	b.WriteString("User's Answer: " + in.UserAnswer + "\n\n")

	b.WriteString("Answer Comparison Results:\n")
	b.WriteString("- Similarity Score: " + formatScore(in.SimilarityScore) + "/10\n")
	b.WriteString("- Matching Keywords: " + strings.Join(in.MatchingKeywords, ", ") + "\n")
	b.WriteString("- Missing Keywords: " + strings.Join(in.MissingKeywords, ", ") + "\n\n")

	b.WriteString("Please evaluate the answer based on the following criteria and provide feedback in JSON format:\n")
	b.WriteString("{\n")
	b.WriteString(`  "rating": ` + formatScore(in.SimilarityScore) + ",\n")
	b.WriteString(`  "overallFeedback": "general feedback on the answer",` + "\n")
	b.WriteString(`  "detailedAnalysis": {` + "\n")
	b.WriteString(`    "relevance": { "score": (1-10), "feedback": "how well the answer addresses the question" },` + "\n")
	b.WriteString(`    "completeness": { "score": (1-10), "feedback": "how thoroughly the answer covers all aspects" },` + "\n")
	b.WriteString(`    "accuracy": { "score": (1-10), "feedback": "technical accuracy and correctness" },` + "\n")
	b.WriteString(`    "clarity": { "score": (1-10), "feedback": "clarity and organization of the response" }` + "\n")
	b.WriteString("  },\n")
	b.WriteString(`  "keyPointsCovered": ` + jsonStringArray(in.MatchingKeywords) + ",\n")
	b.WriteString(`  "missingPoints": ` + jsonStringArray(in.MissingKeywords) + ",\n")
	b.WriteString(`  "improvements": ["specific suggestions for improvement"],` + "\n")
	b.WriteString(`  "strengths": ["areas where the answer excelled"]` + "\n")
	b.WriteString("}\n\n")

	b.WriteString("Consider:\n")
	b.WriteString("1. Technical accuracy and use of proper terminology\n")
	b.WriteString("2. Completeness of the explanation\n")
	b.WriteString("3. Clarity and structure of the response\n")
	b.WriteString("4. Practical examples or applications mentioned\n")
	b.WriteString("5. Alignment with industry best practices\n")

	return b.String()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func jsonStringArray(items []string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, strconv.Quote(item))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
