package jobdocs_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
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
		Sub:   "user-1",
		Email: "dev@example.com",
		Exp:   time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func uploadFile(t *testing.T, router *gin.Engine, token, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobdocs", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUploadListAndText(t *testing.T) {
	app := buildApp(t)
	token := bearerToken(t)

	const jd = "Senior Go engineer. Builds distributed systems on AWS."
	resp := uploadFile(t, app.Router, token, "role.txt", jd)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", resp.Code, resp.Body.String())
	}
	var createEnv struct {
		Data struct {
			ID           string `json:"id"`
			FileName     string `json:"fileName"`
			HasExtracted bool   `json:"hasExtracted"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &createEnv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if createEnv.Data.ID == "" {
		t.Fatal("expected a document id")
	}
	if createEnv.Data.FileName != "role.txt" {
		t.Errorf("fileName = %q", createEnv.Data.FileName)
	}
	if !createEnv.Data.HasExtracted {
		t.Error("expected extracted text for a plain text upload")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobdocs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp := httptest.NewRecorder()
	app.Router.ServeHTTP(listResp, req)
	if listResp.Code != http.StatusOK {
		t.Fatalf("list status = %d", listResp.Code)
	}
	var listEnv struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(listResp.Body.Bytes(), &listEnv); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listEnv.Data) != 1 {
		t.Fatalf("listed %d docs, want 1", len(listEnv.Data))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/jobdocs/"+createEnv.Data.ID+"/text", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	textResp := httptest.NewRecorder()
	app.Router.ServeHTTP(textResp, req)
	if textResp.Code != http.StatusOK {
		t.Fatalf("text status = %d, body %s", textResp.Code, textResp.Body.String())
	}
	var textEnv struct {
		Data struct {
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := json.Unmarshal(textResp.Body.Bytes(), &textEnv); err != nil {
		t.Fatalf("decode text: %v", err)
	}
	if textEnv.Data.Text != jd {
		t.Errorf("text = %q, want %q", textEnv.Data.Text, jd)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	app := buildApp(t)
	token := bearerToken(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobdocs", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestTextNotFoundForUnknownDoc(t *testing.T) {
	app := buildApp(t)
	token := bearerToken(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobdocs/missing/text", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}
