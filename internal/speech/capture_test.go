package speech

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCaptureRunAccumulates(t *testing.T) {
	rec := NewScriptedRecognizer([][]Segment{
		{{Transcript: "goroutines are", Confidence: 0.9}},
		{{Transcript: "lightweight threads", Confidence: 0.85}},
	})
	c := NewCapture(rec, DefaultCaptureOptions())

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	// The scripted channel is unbuffered, so both batches are consumed
	// before Stop returns.
	waitFor(t, func() bool { return c.Answer() == "goroutines are lightweight threads" })

	answer, complete, err := c.Stop()
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if answer != "goroutines are lightweight threads" {
		t.Errorf("answer = %q", answer)
	}
	if !complete {
		t.Error("expected complete answer")
	}
}

func TestCaptureShortAnswerNotComplete(t *testing.T) {
	rec := NewScriptedRecognizer([][]Segment{
		{{Transcript: "yes", Confidence: 0.9}},
	})
	c := NewCapture(rec, DefaultCaptureOptions())

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitFor(t, func() bool { return c.Answer() == "yes" })

	_, complete, err := c.Stop()
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if complete {
		t.Error("short answer must not be complete")
	}
}

func TestCaptureRestartClearsPriorResults(t *testing.T) {
	rec := NewScriptedRecognizer([][]Segment{
		{{Transcript: "only this phrase", Confidence: 0.9}},
	})
	c := NewCapture(rec, DefaultCaptureOptions())

	for run := 0; run < 2; run++ {
		if err := c.Start(context.Background()); err != nil {
			t.Fatalf("start run %d: %v", run, err)
		}
		waitFor(t, func() bool { return c.Answer() == "only this phrase" })
		answer, _, err := c.Stop()
		if err != nil {
			t.Fatalf("stop run %d: %v", run, err)
		}
		if answer != "only this phrase" {
			t.Errorf("run %d answer = %q, prior results leaked", run, answer)
		}
	}
}

func TestCaptureStartFailureClassified(t *testing.T) {
	rec := NewFailingRecognizer(ErrNotAllowed)
	c := NewCapture(rec, DefaultCaptureOptions())

	err := c.Start(context.Background())
	if !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("err = %v, want ErrNotAllowed", err)
	}
	if msg := UserMessage(err); msg != "Microphone access denied. Please enable microphone permissions." {
		t.Errorf("unexpected message %q", msg)
	}

	// A failed start leaves the capture ready for another attempt.
	if _, _, err := c.Stop(); err == nil {
		t.Error("stop without active recording should error")
	}
}

func TestCaptureDoubleStart(t *testing.T) {
	rec := NewScriptedRecognizer(nil)
	c := NewCapture(rec, DefaultCaptureOptions())

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.Start(context.Background()); err == nil {
		t.Error("second start should fail while recording")
	}
	if _, _, err := c.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestUserMessageNoSpeech(t *testing.T) {
	msg := UserMessage(ErrNoSpeech)
	if msg != "No speech detected. Please speak clearly into your microphone." {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestUserMessageGeneric(t *testing.T) {
	msg := UserMessage(errors.New("boom"))
	if msg != "Error with speech recognition. Please check your microphone settings." {
		t.Errorf("unexpected message %q", msg)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
