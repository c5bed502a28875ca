package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(srv *httptest.Server) (*Client, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	c := New(srv.URL, func() string { return "test-token" })
	c.Sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return c, sleeps
}

func scheduleInput() ScheduleInput {
	return ScheduleInput{
		CandidateID:    "cand-1",
		CandidateName:  "Sam Rivera",
		CandidateEmail: "sam@example.com",
		Role:           "Backend Engineer",
		InterviewDate:  "2025-04-15",
		InterviewTime:  "14:30",
	}
}

func TestScheduleRetriesOn500ThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization = %q", got)
		}
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"message":"boom"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client, sleeps := newTestClient(srv)
	if err := client.ScheduleInterview(context.Background(), scheduleInput()); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	// Backoff grows linearly: 1s then 2s.
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(*sleeps) != len(want) || (*sleeps)[0] != want[0] || (*sleeps)[1] != want[1] {
		t.Errorf("sleeps = %v, want %v", *sleeps, want)
	}
}

func TestScheduleGivesUpAfterTwoRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"boom"}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	err := client.ScheduleInterview(context.Background(), scheduleInput())
	if !errors.Is(err, ErrServerDown) {
		t.Fatalf("err = %v, want ErrServerDown", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("calls = %d, want 3 (initial + 2 retries)", calls)
	}
}

func TestSchedule401Terminal(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"login required"}`))
	}))
	defer srv.Close()

	client, sleeps := newTestClient(srv)
	err := client.ScheduleInterview(context.Background(), scheduleInput())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
	if atomic.LoadInt32(&calls) != 1 || len(*sleeps) != 0 {
		t.Errorf("calls = %d sleeps = %v, want no retry", calls, *sleeps)
	}
}

func TestSchedule409Terminal(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"an interview is already scheduled for this candidate"}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	err := client.ScheduleInterview(context.Background(), scheduleInput())

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict {
		t.Fatalf("err = %v, want 409 APIError", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestScheduleTimeoutTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client, sleeps := newTestClient(srv)
	client.HTTP.Timeout = 20 * time.Millisecond

	err := client.ScheduleInterview(context.Background(), scheduleInput())
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if len(*sleeps) != 0 {
		t.Errorf("timeout must not retry, slept %v", *sleeps)
	}
}

func TestScheduleNetworkErrorTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	client, sleeps := newTestClient(srv)
	err := client.ScheduleInterview(context.Background(), scheduleInput())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
	if len(*sleeps) != 0 {
		t.Errorf("network error must not retry, slept %v", *sleeps)
	}
}

func TestGetInterviewDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/interviews/mock-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":{"mockId":"mock-1","questions":[{"question":"Q1","answer":"A1"}],"questionsStatus":"ready","status":"Pending"}}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	iv, err := client.GetInterview(context.Background(), "mock-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if iv.MockID != "mock-1" || len(iv.Questions) != 1 || iv.QuestionsStatus != "ready" {
		t.Errorf("interview = %+v", iv)
	}
}

func TestSaveAnswerConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"You have already answered this question"}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(srv)
	_, err := client.SaveAnswer(context.Background(), SaveAnswerInput{MockIDRef: "mock-1"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict {
		t.Fatalf("err = %v, want 409 APIError", err)
	}
	if apiErr.Message != "You have already answered this question" {
		t.Errorf("message = %q", apiErr.Message)
	}
}
