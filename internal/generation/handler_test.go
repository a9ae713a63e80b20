package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"docquiz/internal/auth"
	"docquiz/internal/models"
)

func newTestRouter(t *testing.T) (*mux.Router, *fixture, *auth.Service) {
	t.Helper()
	f := newFixture()
	tokens := auth.NewService("test-secret", time.Hour)
	router := mux.NewRouter()
	NewHandler(f.svc, tokens, 1<<20).Routes(router)
	return router, f, tokens
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Message
}

func TestUploadPDF(t *testing.T) {
	router, f, tokens := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "notes.pdf", []byte("%PDF-1.4\nsome text")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.SummaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Summary != "A short summary." {
		t.Errorf("summary = %q", resp.Summary)
	}

	id := rec.Header().Get("X-Document-Id")
	if f.repo.docs[id] == nil {
		t.Fatalf("document %q not stored", id)
	}
	got, err := tokens.Parse(rec.Header().Get(TokenHeader))
	if err != nil || got != id {
		t.Errorf("token resolves to %q, %v; want %q", got, err, id)
	}
}

func TestUploadPDFRejectsOtherTypes(t *testing.T) {
	router, f, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "notes.txt", []byte("just some plain text")))

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Invalid file type. Please upload a PDF file." {
		t.Errorf("message = %q", msg)
	}
	if len(f.model.prompts) != 0 {
		t.Error("model called for a rejected upload")
	}
}

func TestUploadPDFTooLarge(t *testing.T) {
	router, _, _ := newTestRouter(t)

	content := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), 1<<20)...)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "big.pdf", content))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "File too large. The limit is 1 MB." {
		t.Errorf("message = %q", msg)
	}
}

func TestUploadPDFMissingFile(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/upload-pdf", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGenerateQuizHandler(t *testing.T) {
	router, f, tokens := newTestRouter(t)

	first, _ := f.svc.Summarize(context.Background(), "first.pdf", []byte("first"))
	f.svc.Summarize(context.Background(), "second.pdf", []byte("second"))
	token, err := tokens.Issue(first.ID)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/generate-quiz", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.QuizResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Questions) != 2 {
		t.Errorf("got %d questions, want 2", len(resp.Questions))
	}

	last := f.events.events[len(f.events.events)-1]
	if last.room != first.ID {
		t.Errorf("quiz generated for %q, want the token's document %q", last.room, first.ID)
	}
}

func TestGenerateQuizHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantMsg    string
	}{
		{"no document", "", http.StatusBadRequest, "No summary available. Please upload a PDF first."},
		{"bad format", "Token abc", http.StatusUnauthorized, "Invalid token format"},
		{"bad token", "Bearer abc", http.StatusUnauthorized, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := newTestRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/generate-quiz", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if msg := decodeMessage(t, rec); msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
