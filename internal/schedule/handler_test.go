package schedule_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/bootstrap"
	"interview-backend/internal/shared/auth"
	"interview-backend/internal/shared/config"
)

func buildApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "handler-test-secret")

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		ObjectStoreType: "local",
		Env:             "dev",
		QuestionCount:   10,
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{
		Sub:   "recruiter-1",
		Email: "recruiter@example.com",
		Exp:   time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload := &bytes.Buffer{}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		payload = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func schedulePayload() gin.H {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	return gin.H{
		"candidateId":    "cand-1",
		"candidateName":  "Jordan Lee",
		"candidateEmail": "jordan@example.com",
		"role":           "Backend Engineer",
		"interviewDate":  tomorrow,
		"interviewTime":  "14:30",
	}
}

func TestScheduleCreateAndList(t *testing.T) {
	app := buildApp(t)
	token := bearerToken(t)

	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/schedule", token, schedulePayload())
	if resp.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, app.Router, http.MethodGet, "/api/v1/schedule", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list status = %d", resp.Code)
	}
	var env struct {
		Data []struct {
			CandidateName string `json:"candidateName"`
			Status        string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 1 {
		t.Fatalf("listed %d schedules, want 1", len(env.Data))
	}
	if env.Data[0].CandidateName != "Jordan Lee" {
		t.Errorf("candidateName = %q", env.Data[0].CandidateName)
	}
}

func TestScheduleMissingFieldsAggregated(t *testing.T) {
	app := buildApp(t)
	token := bearerToken(t)

	payload := schedulePayload()
	payload["candidateId"] = ""
	payload["candidateEmail"] = ""
	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/schedule", token, payload)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(env.Message, "Candidate ID") || !strings.Contains(env.Message, "Email") {
		t.Errorf("message %q does not name the missing fields", env.Message)
	}
}

func TestScheduleRejectsPastDate(t *testing.T) {
	app := buildApp(t)
	token := bearerToken(t)

	payload := schedulePayload()
	payload["interviewDate"] = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/schedule", token, payload)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestScheduleRefusesDuplicatePending(t *testing.T) {
	app := buildApp(t)
	token := bearerToken(t)

	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/schedule", token, schedulePayload())
	if resp.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", resp.Code)
	}
	resp = doJSON(t, app.Router, http.MethodPost, "/api/v1/schedule", token, schedulePayload())
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate create status = %d, want 409", resp.Code)
	}
}

func TestScheduleRequiresAuth(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/schedule", "", schedulePayload())
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}
