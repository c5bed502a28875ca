package interviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"interview-backend/internal/llm"
)

func questionsJSON(n int) string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(`{"question":"Q%d","answer":"A%d"}`, i+1, i+1))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func newTestService(questions string, llmErr error) *Service {
	client := llm.CompleteFunc(func(ctx context.Context, prompt string) (string, error) {
		if llmErr != nil {
			return "", llmErr
		}
		return questions, nil
	})
	return NewService(NewMemoryRepo(), client, nil, 10)
}

func createPending(t *testing.T, svc *Service) Interview {
	t.Helper()
	iv, err := svc.Create(context.Background(), CreateInput{
		JobPosition:   "Backend Engineer",
		JobDesc:       "Go, Postgres, AWS",
		JobExperience: "5",
		CreatedBy:     "alex@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return iv
}

func waitForStatus(t *testing.T, svc *Service, mockID string, want QuestionsStatus) Interview {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		iv, err := svc.Get(context.Background(), mockID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if iv.QuestionsStatus == want {
			return iv
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("questions never reached status %s", want)
	return Interview{}
}

func TestCreateGeneratesQuestions(t *testing.T) {
	svc := newTestService(questionsJSON(10), nil)

	iv := createPending(t, svc)
	if iv.Status != StatusPending {
		t.Errorf("status = %s, want Pending", iv.Status)
	}
	if iv.QuestionsStatus != QuestionsQueued {
		t.Errorf("questionsStatus = %s, want queued", iv.QuestionsStatus)
	}

	ready := waitForStatus(t, svc, iv.MockID, QuestionsReady)
	if len(ready.Questions) != 10 {
		t.Errorf("got %d questions, want 10", len(ready.Questions))
	}
	if ready.Questions[0].Question != "Q1" || ready.Questions[0].Answer != "A1" {
		t.Errorf("unexpected first question: %+v", ready.Questions[0])
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(questionsJSON(10), nil)

	cases := []CreateInput{
		{JobDesc: "d", JobExperience: "3", CreatedBy: "a@b.c"},
		{JobPosition: "p", JobExperience: "3", CreatedBy: "a@b.c"},
		{JobPosition: "p", JobDesc: "d", CreatedBy: "a@b.c"},
		{JobPosition: "p", JobDesc: "d", JobExperience: "3"},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestGenerationFailureRecorded(t *testing.T) {
	svc := newTestService("", errors.New("provider down"))

	iv := createPending(t, svc)
	failed := waitForStatus(t, svc, iv.MockID, QuestionsFailed)
	if failed.GenerationError == "" {
		t.Error("expected generation error recorded")
	}
}

func TestGenerationRejectsWrongCount(t *testing.T) {
	svc := newTestService(questionsJSON(7), nil)

	iv := createPending(t, svc)
	failed := waitForStatus(t, svc, iv.MockID, QuestionsFailed)
	if !strings.Contains(failed.GenerationError, "7") {
		t.Errorf("generation error %q should mention the count", failed.GenerationError)
	}
}

func TestParseQuestionsFenced(t *testing.T) {
	raw := "```json\n" + questionsJSON(10) + "\n```"
	questions, err := ParseQuestions(raw, 10)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(questions) != 10 {
		t.Errorf("got %d questions", len(questions))
	}
}

func TestParseQuestionsInvalid(t *testing.T) {
	for _, raw := range []string{"not json", `{"question":"q"}`, "[]"} {
		if _, err := ParseQuestions(raw, 10); !errors.Is(err, ErrBadQuestions) {
			t.Errorf("ParseQuestions(%q) err = %v, want ErrBadQuestions", raw, err)
		}
	}
}

func TestCompleteTransitionsOnce(t *testing.T) {
	svc := newTestService(questionsJSON(10), nil)
	iv := createPending(t, svc)
	waitForStatus(t, svc, iv.MockID, QuestionsReady)

	done, err := svc.Complete(context.Background(), iv.MockID, 7.2)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != StatusCompleted {
		t.Errorf("status = %s, want Completed", done.Status)
	}
	if done.Score == nil || *done.Score != 7.2 {
		t.Errorf("score = %v, want 7.2", done.Score)
	}
	if done.CompletedAt == nil {
		t.Error("completedAt not set")
	}

	if _, err := svc.Complete(context.Background(), iv.MockID, 9.9); !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("second complete err = %v, want ErrAlreadyCompleted", err)
	}

	// The repeat attempt changed nothing.
	after, err := svc.Get(context.Background(), iv.MockID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *after.Score != 7.2 {
		t.Errorf("score mutated to %v", *after.Score)
	}
}

func TestCompleteNotFound(t *testing.T) {
	svc := newTestService(questionsJSON(10), nil)
	if _, err := svc.Complete(context.Background(), "missing-id", 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCompleteScoreBounds(t *testing.T) {
	svc := newTestService(questionsJSON(10), nil)
	iv := createPending(t, svc)

	for _, score := range []float64{-0.1, 10.1} {
		if _, err := svc.Complete(context.Background(), iv.MockID, score); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("score %v: err = %v, want ErrInvalidInput", score, err)
		}
	}
}

func TestListByUser(t *testing.T) {
	svc := newTestService(questionsJSON(10), nil)
	createPending(t, svc)
	createPending(t, svc)

	items, err := svc.List(context.Background(), "alex@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d interviews, want 2", len(items))
	}

	other, err := svc.List(context.Background(), "other@example.com")
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("got %d interviews for other user, want 0", len(other))
	}
}
