// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"docquiz/internal/models"
)

const (
	DefaultTimeout = 30 * time.Second

	// TokenHeader carries the server's reference to the uploaded document.
	TokenHeader = "X-Document-Token"

	uploadFailed   = "Failed to upload PDF"
	generateFailed = "Failed to generate quiz"
	networkFailed  = "Network error occurred"
)

var ErrGenerationFailed = errors.New("generation failed")

// GenerationError is a failed summarization or quiz generation call.
// Message is meant for the user.
type GenerationError struct {
	Op      string
	Status  int
	Message string
}

func (e *GenerationError) Error() string {
	return e.Op + ": " + e.Message
}

func (e *GenerationError) Unwrap() error {
	return ErrGenerationFailed
}

// Client talks to the document summarization and quiz generation server.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// UploadDocument validates and uploads a PDF and returns its summary.
func (c *Client) UploadDocument(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ValidateDocument(filename, data); err != nil {
		return "", err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-pdf", body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out models.SummaryResponse
	resp, err := c.do(req, "upload", uploadFailed, &out)
	if err != nil {
		return "", err
	}
	if token := resp.Header.Get(TokenHeader); token != "" {
		c.token = token
	}
	log.Printf("Uploaded %s, summary is %d bytes", filename, len(out.Summary))
	return out.Summary, nil
}

// GenerateQuiz asks the server for questions over the last uploaded document.
func (c *Client) GenerateQuiz(ctx context.Context) ([]models.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-quiz", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	var out models.QuizResponse
	if _, err := c.do(req, "generate quiz", generateFailed, &out); err != nil {
		return nil, err
	}
	log.Printf("Received %d questions", len(out.Questions))
	return out.Questions, nil
}

func (c *Client) do(req *http.Request, op, fallback string, out interface{}) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("Error calling %s: %v", req.URL.Path, err)
		return nil, &GenerationError{Op: op, Message: networkFailed}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GenerationError{Op: op, Status: resp.StatusCode, Message: networkFailed}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var apiErr models.ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return nil, &GenerationError{Op: op, Status: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("Error decoding %s response: %v", req.URL.Path, err)
		return nil, &GenerationError{Op: op, Status: resp.StatusCode, Message: fallback}
	}
	return resp, nil
}
