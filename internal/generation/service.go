// internal/generation/service.go
package generation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"docquiz/internal/models"
	"docquiz/pkg/cache"
	"docquiz/pkg/websocket"
)

var (
	ErrNoDocument  = errors.New("no document has been uploaded")
	ErrNoText      = errors.New("no text could be extracted from the document")
	ErrNoQuestions = errors.New("model returned no usable questions")
)

// maxPromptRunes bounds how much document text is sent to the model.
const maxPromptRunes = 60000

type DocumentStore interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	LatestDocument(ctx context.Context) (*models.Document, error)
}

type SummaryCache interface {
	SetSummary(ctx context.Context, documentID, summary string) error
	GetSummary(ctx context.Context, documentID string) (string, error)
	LatestDocumentID(ctx context.Context) (string, error)
}

type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Notifier interface {
	BroadcastMessage(room string, messageType string, data interface{})
}

type Service struct {
	repo          DocumentStore
	cache         SummaryCache
	model         TextModel
	events        Notifier
	extract       func([]byte) (string, error)
	questionCount int
}

func NewService(repo DocumentStore, cache SummaryCache, model TextModel, events Notifier, questionCount int) *Service {
	return &Service{
		repo:          repo,
		cache:         cache,
		model:         model,
		events:        events,
		extract:       ExtractPDFText,
		questionCount: questionCount,
	}
}

// Summarize extracts the document's text, summarizes it and stores the result.
func (s *Service) Summarize(ctx context.Context, filename string, data []byte) (*models.Document, error) {
	text, err := s.extract(data)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoText
	}
	log.Printf("Extracted %d bytes of text from %s", len(text), filename)

	summary, err := s.model.GenerateText(ctx, summaryPrompt(truncateRunes(text, maxPromptRunes)))
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", filename, err)
	}
	summary = strings.TrimSpace(summary)

	doc := &models.Document{
		ID:        uuid.NewString(),
		Filename:  filename,
		Slug:      slug.Make(strings.TrimSuffix(filename, filepath.Ext(filename))),
		SizeBytes: int64(len(data)),
		Summary:   summary,
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.cache.SetSummary(ctx, doc.ID, summary); err != nil {
		log.Printf("Error caching summary for %s: %v", doc.ID, err)
	}

	s.events.BroadcastMessage(doc.ID, websocket.EventSummaryReady, map[string]interface{}{
		"documentId": doc.ID,
		"filename":   doc.Filename,
	})
	return doc, nil
}

// GenerateQuiz builds questions over a document's summary. An empty id means
// the most recently uploaded document.
func (s *Service) GenerateQuiz(ctx context.Context, documentID string) ([]models.Question, error) {
	documentID, summary, err := s.summaryFor(ctx, documentID)
	if err != nil {
		return nil, err
	}

	raw, err := s.model.GenerateText(ctx, quizPrompt(summary, s.questionCount))
	if err != nil {
		s.fail(documentID, err)
		return nil, fmt.Errorf("generate quiz for %s: %w", documentID, err)
	}

	questions, err := ParseQuestions(raw, s.questionCount)
	if err != nil {
		s.fail(documentID, err)
		return nil, err
	}
	log.Printf("Generated %d questions for document %s", len(questions), documentID)

	views := make([]models.QuestionView, len(questions))
	for i, q := range questions {
		views[i] = q.ToView()
	}
	s.events.BroadcastMessage(documentID, websocket.EventQuizReady, map[string]interface{}{
		"documentId": documentID,
		"questions":  views,
	})
	return questions, nil
}

// summaryFor looks in the cache first and falls back to the database.
func (s *Service) summaryFor(ctx context.Context, documentID string) (string, string, error) {
	if documentID == "" {
		id, err := s.cache.LatestDocumentID(ctx)
		if err != nil {
			if !errors.Is(err, cache.ErrMiss) {
				log.Printf("Error reading latest document from cache: %v", err)
			}
			doc, err := s.repo.LatestDocument(ctx)
			if err != nil {
				return "", "", err
			}
			return doc.ID, doc.Summary, nil
		}
		documentID = id
	}

	summary, err := s.cache.GetSummary(ctx, documentID)
	if err == nil {
		return documentID, summary, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Error reading summary %s from cache: %v", documentID, err)
	}

	doc, err := s.repo.GetDocument(ctx, documentID)
	if err != nil {
		return "", "", err
	}
	if err := s.cache.SetSummary(ctx, doc.ID, doc.Summary); err != nil {
		log.Printf("Error caching summary for %s: %v", doc.ID, err)
	}
	return doc.ID, doc.Summary, nil
}

func (s *Service) fail(documentID string, err error) {
	s.events.BroadcastMessage(documentID, websocket.EventGenerationFailed, map[string]string{
		"documentId": documentID,
		"error":      err.Error(),
	})
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
