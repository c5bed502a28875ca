package answers

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func validInput(question string) SaveInput {
	return SaveInput{
		MockIDRef:  "mock-1",
		Question:   question,
		CorrectAns: "reference answer",
		UserAns:    "a reasonably long spoken answer",
		Feedback:   "Overall Rating: 7.5/10",
		Rating:     7.5,
		UserEmail:  "alex@example.com",
	}
}

func TestSaveAndList(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	a, err := svc.Save(context.Background(), validInput("What is a goroutine?"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if a.ID == "" {
		t.Error("expected generated id")
	}

	items, err := svc.List(context.Background(), "mock-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Question != "What is a goroutine?" {
		t.Errorf("items = %+v", items)
	}
}

func TestSaveDuplicateRejected(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.Save(context.Background(), validInput("What is a channel?")); err != nil {
		t.Fatalf("first save: %v", err)
	}

	_, err := svc.Save(context.Background(), validInput("What is a channel?"))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}

	// The original answer is untouched.
	items, err := svc.List(context.Background(), "mock-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d answers, want 1", len(items))
	}
}

func TestSaveValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	cases := []struct {
		name   string
		mutate func(*SaveInput)
	}{
		{"missing mock id", func(in *SaveInput) { in.MockIDRef = "" }},
		{"missing question", func(in *SaveInput) { in.Question = "  " }},
		{"missing email", func(in *SaveInput) { in.UserEmail = "" }},
		{"empty answer", func(in *SaveInput) { in.UserAns = "   " }},
		{"rating too high", func(in *SaveInput) { in.Rating = 10.5 }},
		{"rating negative", func(in *SaveInput) { in.Rating = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput("Q")
			tc.mutate(&in)
			if _, err := svc.Save(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestAverageRating(t *testing.T) {
	ratings := []float64{7, 8, 6, 9, 5, 7, 8, 6, 9, 7}
	items := make([]Answer, 0, len(ratings))
	for _, r := range ratings {
		items = append(items, Answer{Rating: r})
	}
	if got := AverageRating(items); got != 7.2 {
		t.Errorf("AverageRating = %v, want 7.2", got)
	}
}

func TestAverageRatingEmpty(t *testing.T) {
	if got := AverageRating(nil); got != 0 {
		t.Errorf("AverageRating(nil) = %v, want 0", got)
	}
}

func TestAverageRatingRounding(t *testing.T) {
	// (7+8+8)/3 = 7.666... -> 7.7
	items := []Answer{{Rating: 7}, {Rating: 8}, {Rating: 8}}
	if got := AverageRating(items); got != 7.7 {
		t.Errorf("AverageRating = %v, want 7.7", got)
	}
}

func TestListKeepsSubmissionOrder(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	for i := 0; i < 3; i++ {
		if _, err := svc.Save(context.Background(), validInput(fmt.Sprintf("Q%d", i))); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	items, err := svc.List(context.Background(), "mock-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, a := range items {
		if want := fmt.Sprintf("Q%d", i); a.Question != want {
			t.Errorf("item %d question = %q, want %q", i, a.Question, want)
		}
	}
}
