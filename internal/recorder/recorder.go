package recorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"interview-backend/internal/apiclient"
	"interview-backend/internal/llm"
	"interview-backend/internal/scoring"
	"interview-backend/internal/session"
	"interview-backend/internal/shared/metrics"
	"interview-backend/internal/shared/telemetry"
	"interview-backend/internal/speech"
)

// Workflow errors reported before any network call is made.
var (
	ErrLoginRequired     = errors.New("please login to continue")
	ErrNoInterview       = errors.New("interview session not found")
	ErrAnswerTooShort    = errors.New("please provide a longer answer")
	ErrQuestionsNotReady = errors.New("interview questions are not ready yet")
	ErrAlreadyAnswered   = errors.New("you have already answered this question")
)

// Recorder drives one interview session: record an answer, score it, save it
// and advance, then finalize the interview once every question is answered.
type Recorder struct {
	API     *apiclient.Client
	Capture *speech.Capture
	LLM     llm.Client
	Session *session.Store

	interview apiclient.Interview
	active    int
}

// New constructs a Recorder.
func New(api *apiclient.Client, capture *speech.Capture, model llm.Client, sess *session.Store) *Recorder {
	return &Recorder{API: api, Capture: capture, LLM: model, Session: sess}
}

// Load fetches the interview and positions the workflow at the first
// unanswered question.
func (r *Recorder) Load(ctx context.Context, mockID string) error {
	if mockID == "" {
		return ErrNoInterview
	}
	if r.Session.GetToken() == "" {
		return ErrLoginRequired
	}

	iv, err := r.API.GetInterview(ctx, mockID)
	if err != nil {
		return err
	}
	if iv.QuestionsStatus != "ready" || len(iv.Questions) == 0 {
		return ErrQuestionsNotReady
	}
	r.interview = iv

	answered, err := r.API.ListAnswers(ctx, mockID)
	if err != nil {
		return err
	}
	r.active = nextUnanswered(iv.Questions, answered)
	return nil
}

func nextUnanswered(questions []apiclient.Question, answered []apiclient.Answer) int {
	done := make(map[string]struct{}, len(answered))
	for _, a := range answered {
		done[a.Question] = struct{}{}
	}
	for i, q := range questions {
		if _, ok := done[q.Question]; !ok {
			return i
		}
	}
	return len(questions)
}

// Interview returns the loaded interview.
func (r *Recorder) Interview() apiclient.Interview {
	return r.interview
}

// ActiveQuestion returns the question currently being answered.
func (r *Recorder) ActiveQuestion() (apiclient.Question, bool) {
	if r.active < 0 || r.active >= len(r.interview.Questions) {
		return apiclient.Question{}, false
	}
	return r.interview.Questions[r.active], true
}

// ActiveIndex returns the zero-based index of the active question.
func (r *Recorder) ActiveIndex() int {
	return r.active
}

// StartRecording begins capturing the answer to the active question.
func (r *Recorder) StartRecording(ctx context.Context) error {
	if _, ok := r.ActiveQuestion(); !ok {
		return ErrNoInterview
	}
	return r.Capture.Start(ctx)
}

// Outcome is the result of scoring and saving one answer.
type Outcome struct {
	Answer    apiclient.Answer
	Feedback  scoring.Feedback
	UserAns   string
	NextIndex int
	// LastQuestion is true when this was the final question; the caller can
	// now finish the interview.
	LastQuestion bool
}

// StopAndSubmit ends the recording, scores the accumulated answer and saves
// it, then advances to the next question.
func (r *Recorder) StopAndSubmit(ctx context.Context) (Outcome, error) {
	answer, complete, err := r.Capture.Stop()
	if err != nil {
		return Outcome{}, err
	}
	if !complete {
		return Outcome{}, ErrAnswerTooShort
	}
	return r.Submit(ctx, answer)
}

// Submit scores and saves a finished answer for the active question. The
// precondition checks run before any network call.
func (r *Recorder) Submit(ctx context.Context, userAnswer string) (Outcome, error) {
	question, ok := r.ActiveQuestion()
	if !ok || r.interview.MockID == "" {
		return Outcome{}, ErrNoInterview
	}
	if len(userAnswer) <= 10 {
		return Outcome{}, ErrAnswerTooShort
	}
	user := r.Session.User()
	if r.Session.GetToken() == "" || user.Email == "" {
		return Outcome{}, ErrLoginRequired
	}

	feedback := r.score(ctx, question, userAnswer)

	// Checked-then-create: an existing answer to this question is never
	// overwritten.
	existing, err := r.API.ListAnswers(ctx, r.interview.MockID)
	if err != nil {
		return Outcome{}, err
	}
	for _, a := range existing {
		if a.Question == question.Question {
			return Outcome{}, ErrAlreadyAnswered
		}
	}

	saved, err := r.API.SaveAnswer(ctx, apiclient.SaveAnswerInput{
		MockIDRef:        r.interview.MockID,
		Question:         question.Question,
		CorrectAns:       question.Answer,
		UserAns:          userAnswer,
		Feedback:         feedbackText(feedback),
		Rating:           feedback.Rating,
		DetailedAnalysis: feedback.DetailedAnalysis,
		KeyPointsCovered: feedback.KeyPointsCovered,
		MissingPoints:    feedback.MissingPoints,
		Improvements:     feedback.Improvements,
		Strengths:        feedback.Strengths,
		UserEmail:        user.Email,
	})
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 409 {
			return Outcome{}, ErrAlreadyAnswered
		}
		return Outcome{}, err
	}

	r.active++
	return Outcome{
		Answer:       saved,
		Feedback:     feedback,
		UserAns:      userAnswer,
		NextIndex:    r.active,
		LastQuestion: r.active >= len(r.interview.Questions),
	}, nil
}

// score builds the comparison-seeded prompt, calls the model and parses the
// structured feedback. Any model or parse failure degrades to the generic
// fallback instead of failing the submission.
func (r *Recorder) score(ctx context.Context, question apiclient.Question, userAnswer string) scoring.Feedback {
	started := time.Now()
	defer func() {
		metrics.ObserveScoringDurationMs(float64(time.Since(started).Milliseconds()))
	}()
	metrics.IncAnswerScored()

	comparison := scoring.Compare(userAnswer, question.Answer)
	prompt := llm.BuildFeedbackPrompt(llm.FeedbackPromptInput{
		Question:         question.Question,
		ReferenceAnswer:  question.Answer,
		UserAnswer:       userAnswer,
		SimilarityScore:  comparison.SimilarityScore,
		MatchingKeywords: comparison.MatchingKeywords,
		MissingKeywords:  comparison.MissingKeywords,
	})

	raw, err := r.LLM.Complete(ctx, prompt)
	if err != nil {
		telemetry.Warn("recorder.score_failed", map[string]any{
			"mock_id": r.interview.MockID,
			"error":   err.Error(),
		})
		return scoring.FallbackFeedback()
	}

	feedback, err := scoring.ParseFeedback(raw)
	if err != nil {
		telemetry.Warn("recorder.feedback_invalid", map[string]any{
			"mock_id": r.interview.MockID,
			"error":   err.Error(),
		})
		return scoring.FallbackFeedback()
	}
	return feedback
}

func feedbackText(fb scoring.Feedback) string {
	if fb.FormattedFeedback != "" {
		return fb.FormattedFeedback
	}
	return fb.OverallFeedback
}

// Finish verifies every question is answered, computes the average rating and
// completes the interview. Nothing is mutated when the question set is
// incomplete.
func (r *Recorder) Finish(ctx context.Context) (float64, error) {
	if r.interview.MockID == "" {
		return 0, ErrNoInterview
	}

	answered, err := r.API.ListAnswers(ctx, r.interview.MockID)
	if err != nil {
		return 0, err
	}
	total := len(r.interview.Questions)
	if len(answered) != total {
		return 0, fmt.Errorf("please answer all questions (%d/%d answered)", len(answered), total)
	}

	sum := 0.0
	for _, a := range answered {
		sum += a.Rating
	}
	average := scoring.RoundOne(sum / float64(total))

	if err := r.API.CompleteInterview(ctx, r.interview.MockID, average); err != nil {
		return 0, err
	}
	return average, nil
}
