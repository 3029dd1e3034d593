package resumes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"careerlaunch-backend/internal/extract/pdftest"
	"careerlaunch-backend/internal/llm/llmtest"
	"careerlaunch-backend/internal/prompts"
	"careerlaunch-backend/internal/resumes"
	localstore "careerlaunch-backend/internal/shared/storage/object/local"
)

const extractionReply = `{"personalInfo":{"name":"Jane Doe","email":"jane@example.com"},"skills":{"technical":["Go"]}}`

type failingRepo struct {
	*resumes.MemoryRepo
}

func (failingRepo) Create(ctx context.Context, resume resumes.Resume) (resumes.Resume, error) {
	return resumes.Resume{}, errors.Join(resumes.ErrPersistence, errors.New("connection refused"))
}

func newRouter(t *testing.T, repo resumes.Repo, client *llmtest.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := resumes.NewService(repo, localstore.New(t.TempDir()), client)
	router := gin.New()
	resumes.NewHandler(svc).RegisterRoutes(router.Group("/api"))
	return router
}

func uploadRequest(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/resume/process", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Detail
}

func TestProcessRejectsOversizedUpload(t *testing.T) {
	client := llmtest.New()
	repo := resumes.NewMemoryRepo()
	router := newRouter(t, repo, client)

	content := bytes.Repeat([]byte("a"), resumes.MaxUploadSize+1)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "big.pdf", content))

	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", resp.Code)
	}
	if detail := decodeError(t, resp); detail != "File size exceeds the 5MB limit" {
		t.Fatalf("unexpected detail %q", detail)
	}
	if calls := client.Calls(); len(calls) != 0 {
		t.Fatalf("expected no model calls, got %d", len(calls))
	}
	if _, err := repo.Latest(context.Background()); !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected no stored resume, got %v", err)
	}
}

func TestProcessRejectsOversizedUnsupportedFileWith413(t *testing.T) {
	router := newRouter(t, resumes.NewMemoryRepo(), llmtest.New())

	content := bytes.Repeat([]byte("a"), resumes.MaxUploadSize+10)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "notes.txt", content))

	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", resp.Code)
	}
}

func TestProcessRejectsUnsupportedType(t *testing.T) {
	client := llmtest.New()
	router := newRouter(t, resumes.NewMemoryRepo(), client)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "resume.txt", []byte("plain text resume")))

	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected status 415, got %d", resp.Code)
	}
	if detail := decodeError(t, resp); detail != "Only PDF and DOCX files are supported" {
		t.Fatalf("unexpected detail %q", detail)
	}
	if calls := client.Calls(); len(calls) != 0 {
		t.Fatalf("expected no model calls, got %d", len(calls))
	}
}

func TestProcessRequiresFile(t *testing.T) {
	router := newRouter(t, resumes.NewMemoryRepo(), llmtest.New())

	req := httptest.NewRequest(http.MethodPost, "/api/resume/process", strings.NewReader(""))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestProcessStoresResume(t *testing.T) {
	client := llmtest.New()
	client.Reply(prompts.TaskExtraction, "```json\n"+extractionReply+"\n```")
	repo := resumes.NewMemoryRepo()
	router := newRouter(t, repo, client)

	pdf := pdftest.Build("Name: Jane Doe\nSenior Go Engineer")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "jane.pdf", pdf))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Status   string         `json:"status"`
		Data     map[string]any `json:"data"`
		ResumeID string         `json:"resume_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "success" {
		t.Fatalf("expected status success, got %q", body.Status)
	}
	if body.ResumeID == "" {
		t.Fatalf("expected resume_id, got empty")
	}
	if _, ok := body.Data["personalInfo"]; !ok {
		t.Fatalf("expected personalInfo in data, got %v", body.Data)
	}

	calls := client.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one model call, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Prompt, "Name: Jane Doe") {
		t.Fatalf("expected extraction prompt to embed resume text")
	}

	stored, err := repo.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if stored.ID != body.ResumeID {
		t.Fatalf("expected stored id %s, got %s", body.ResumeID, stored.ID)
	}
	if stored.StorageKey == "" {
		t.Fatalf("expected raw file to be archived")
	}
	analyses := repo.Analyses()
	if len(analyses) != 1 || analyses[0].ResumeID != body.ResumeID {
		t.Fatalf("expected one analysis linked to %s, got %+v", body.ResumeID, analyses)
	}
}

func TestProcessPartialSuccessWhenStorageFails(t *testing.T) {
	client := llmtest.New()
	client.Reply(prompts.TaskExtraction, extractionReply)
	router := newRouter(t, failingRepo{resumes.NewMemoryRepo()}, client)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "jane.pdf", pdftest.Build("Jane Doe")))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "partial_success" {
		t.Fatalf("expected partial_success, got %v", body["status"])
	}
	if body["message"] != "Resume processed but storage failed" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	if _, ok := body["resume_id"]; ok {
		t.Fatalf("expected no resume_id, got %v", body["resume_id"])
	}
	if _, ok := body["data"].(map[string]any); !ok {
		t.Fatalf("expected extracted data, got %v", body["data"])
	}
}

func TestProcessModelFailure(t *testing.T) {
	client := llmtest.New()
	client.Fail(errors.New("upstream 503"))
	router := newRouter(t, resumes.NewMemoryRepo(), client)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "jane.pdf", pdftest.Build("Jane Doe")))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
	if detail := decodeError(t, resp); !strings.Contains(detail, "upstream 503") {
		t.Fatalf("expected upstream message in detail, got %q", detail)
	}
}

func TestProcessBlankPageFails(t *testing.T) {
	client := llmtest.New()
	router := newRouter(t, resumes.NewMemoryRepo(), client)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "jane.pdf", pdftest.Build("Page one", "")))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
	if calls := client.Calls(); len(calls) != 0 {
		t.Fatalf("expected no model calls, got %d", len(calls))
	}
}

func TestLatest(t *testing.T) {
	client := llmtest.New()
	client.Reply(prompts.TaskExtraction, extractionReply)
	router := newRouter(t, resumes.NewMemoryRepo(), client)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/resume/latest", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if detail := decodeError(t, resp); detail != "No resumes found in the database" {
		t.Fatalf("unexpected detail %q", detail)
	}

	upload := httptest.NewRecorder()
	router.ServeHTTP(upload, uploadRequest(t, "jane.pdf", pdftest.Build("Jane Doe")))
	if upload.Code != http.StatusOK {
		t.Fatalf("expected upload status 200, got %d", upload.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/resume/latest", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body struct {
		Status string `json:"status"`
		Data   struct {
			FileName      string         `json:"file_name"`
			ExtractedData map[string]any `json:"extracted_data"`
			CreatedAt     string         `json:"created_at"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Data.FileName != "jane.pdf" {
		t.Fatalf("expected file_name jane.pdf, got %q", body.Data.FileName)
	}
	if body.Data.CreatedAt == "" || body.Data.ExtractedData == nil {
		t.Fatalf("expected created_at and extracted_data, got %+v", body.Data)
	}
}
