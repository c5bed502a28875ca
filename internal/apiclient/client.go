package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"interview-backend/internal/scoring"
)

// Client calls the interview backend on behalf of the recorder. Every request
// carries the session bearer token; responses use the standard envelope.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Token supplies the current session token; empty means signed out.
	Token func() string
	// Sleep is replaceable in tests. Defaults to time.Sleep.
	Sleep func(d time.Duration)
}

// New constructs a Client with a 10 second request timeout.
func New(baseURL string, token func() string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Token:   token,
		Sleep:   time.Sleep,
	}
}

// Transport and session errors surfaced to the workflow.
var (
	ErrSessionExpired = errors.New("session expired, please login again")
	ErrTimeout        = errors.New("request timed out, please check your internet connection")
	ErrNetwork        = errors.New("network error, please check your internet connection")
	ErrServerDown     = errors.New("server is temporarily unavailable, please try again in a few minutes")
)

// APIError is a non-2xx response with the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Question mirrors one generated interview question.
type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Interview mirrors an interview session on the wire.
type Interview struct {
	MockID          string     `json:"mockId"`
	JobPosition     string     `json:"jobPosition"`
	JobDesc         string     `json:"jobDesc"`
	JobExperience   string     `json:"jobExperience"`
	Questions       []Question `json:"questions"`
	QuestionsStatus string     `json:"questionsStatus"`
	Status          string     `json:"status"`
	Score           *float64   `json:"score"`
	CreatedBy       string     `json:"createdBy"`
}

// Answer mirrors a saved answer on the wire.
type Answer struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	UserAns  string  `json:"userAns"`
	Feedback string  `json:"feedback"`
	Rating   float64 `json:"rating"`
}

// SaveAnswerInput is the payload for saving a scored answer.
type SaveAnswerInput struct {
	MockIDRef        string                   `json:"mockIdRef"`
	Question         string                   `json:"question"`
	CorrectAns       string                   `json:"correctAns"`
	UserAns          string                   `json:"userAns"`
	Feedback         string                   `json:"feedback"`
	Rating           float64                  `json:"rating"`
	DetailedAnalysis scoring.DetailedAnalysis `json:"detailedAnalysis"`
	KeyPointsCovered []string                 `json:"keyPointsCovered"`
	MissingPoints    []string                 `json:"missingPoints"`
	Improvements     []string                 `json:"improvements"`
	Strengths        []string                 `json:"strengths"`
	UserEmail        string                   `json:"userEmail"`
}

// ScheduleInput is the payload for scheduling a live interview.
type ScheduleInput struct {
	CandidateID    string `json:"candidateId"`
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	Role           string `json:"role"`
	InterviewDate  string `json:"interviewDate"`
	InterviewTime  string `json:"interviewTime"`
}

// GetInterview fetches one interview by mock ID.
func (c *Client) GetInterview(ctx context.Context, mockID string) (Interview, error) {
	var iv Interview
	if err := c.do(ctx, http.MethodGet, "/api/v1/interviews/"+mockID, nil, &iv); err != nil {
		return Interview{}, err
	}
	return iv, nil
}

// ListAnswers fetches all saved answers for an interview.
func (c *Client) ListAnswers(ctx context.Context, mockID string) ([]Answer, error) {
	var items []Answer
	if err := c.do(ctx, http.MethodGet, "/api/v1/answers/"+mockID, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveAnswer persists a scored answer.
func (c *Client) SaveAnswer(ctx context.Context, in SaveAnswerInput) (Answer, error) {
	var saved Answer
	if err := c.do(ctx, http.MethodPost, "/api/v1/answers", in, &saved); err != nil {
		return Answer{}, err
	}
	return saved, nil
}

// CompleteInterview marks the interview Completed with its final score.
func (c *Client) CompleteInterview(ctx context.Context, mockID string, score float64) error {
	body := map[string]any{"status": "Completed", "score": score}
	return c.do(ctx, http.MethodPut, "/api/v1/interviews/"+mockID, body, nil)
}

const (
	scheduleMaxRetries = 2
	scheduleRetryBase  = time.Second
)

// ScheduleInterview books a live interview. Server errors (5xx) are retried
// up to two times with a linearly growing pause; auth failures, conflicts,
// timeouts and network failures are terminal.
func (c *Client) ScheduleInterview(ctx context.Context, in ScheduleInput) error {
	for attempt := 0; ; attempt++ {
		err := c.do(ctx, http.MethodPost, "/api/v1/schedule", in, nil)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 500 {
			if attempt < scheduleMaxRetries {
				c.Sleep(scheduleRetryBase * time.Duration(attempt+1))
				continue
			}
			return ErrServerDown
		}
		return err
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != nil {
		if token := c.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("parse response data: %w", err)
		}
	}
	return nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
