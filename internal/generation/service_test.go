package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"docquiz/internal/models"
	"docquiz/pkg/cache"
	"docquiz/pkg/websocket"
)

/* ---------------- in-memory fakes ---------------- */

type fakeRepo struct {
	docs  map[string]*models.Document
	order []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: map[string]*models.Document{}}
}

func (r *fakeRepo) CreateDocument(ctx context.Context, doc *models.Document) error {
	doc.CreatedAt = time.Now()
	r.docs[doc.ID] = doc
	r.order = append(r.order, doc.ID)
	return nil
}

func (r *fakeRepo) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, ErrNoDocument
	}
	return doc, nil
}

func (r *fakeRepo) LatestDocument(ctx context.Context) (*models.Document, error) {
	if len(r.order) == 0 {
		return nil, ErrNoDocument
	}
	return r.docs[r.order[len(r.order)-1]], nil
}

type fakeCache struct {
	summaries map[string]string
	latest    string
	gets      int
}

func newFakeCache() *fakeCache {
	return &fakeCache{summaries: map[string]string{}}
}

func (c *fakeCache) SetSummary(ctx context.Context, id, summary string) error {
	c.summaries[id] = summary
	c.latest = id
	return nil
}

func (c *fakeCache) GetSummary(ctx context.Context, id string) (string, error) {
	c.gets++
	s, ok := c.summaries[id]
	if !ok {
		return "", cache.ErrMiss
	}
	return s, nil
}

func (c *fakeCache) LatestDocumentID(ctx context.Context) (string, error) {
	if c.latest == "" {
		return "", cache.ErrMiss
	}
	return c.latest, nil
}

type fakeModel struct {
	replies map[string]string // keyed by a prompt substring
	err     error
	prompts []string
}

func (m *fakeModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	for key, reply := range m.replies {
		if strings.Contains(prompt, key) {
			return reply, nil
		}
	}
	return "", errors.New("unexpected prompt")
}

type event struct {
	room, kind string
}

type fakeNotifier struct {
	events []event
}

func (n *fakeNotifier) BroadcastMessage(room, messageType string, data interface{}) {
	n.events = append(n.events, event{room, messageType})
}

const quizReply = `{"questions":[
	{"question":"What is extracted?","options":["Text","Images","Fonts","Nothing"],"correct_answer":0},
	{"question":"Who summarizes?","options":["A model","A person"],"correct_answer":"A"}
]}`

type fixture struct {
	svc    *Service
	repo   *fakeRepo
	cache  *fakeCache
	model  *fakeModel
	events *fakeNotifier
}

func newFixture() *fixture {
	f := &fixture{
		repo:  newFakeRepo(),
		cache: newFakeCache(),
		model: &fakeModel{replies: map[string]string{
			"Summarize the following": "  A short summary.  ",
			"multiple-choice":         quizReply,
		}},
		events: &fakeNotifier{},
	}
	f.svc = NewService(f.repo, f.cache, f.model, f.events, 5)
	f.svc.extract = func(data []byte) (string, error) { return string(data), nil }
	return f
}

/* ---------------- tests ---------------- */

func TestSummarizeStoresDocument(t *testing.T) {
	f := newFixture()

	doc, err := f.svc.Summarize(context.Background(), "Cell Biology Notes.pdf", []byte("cells have parts"))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if doc.Summary != "A short summary." {
		t.Errorf("Summary = %q", doc.Summary)
	}
	if doc.Slug != "cell-biology-notes" {
		t.Errorf("Slug = %q", doc.Slug)
	}
	if doc.ID == "" || f.repo.docs[doc.ID] == nil {
		t.Fatal("document not stored")
	}
	if f.cache.summaries[doc.ID] != "A short summary." {
		t.Error("summary not cached")
	}
	if !strings.Contains(f.model.prompts[0], "cells have parts") {
		t.Error("document text missing from the prompt")
	}
	if len(f.events.events) != 1 || f.events.events[0] != (event{doc.ID, websocket.EventSummaryReady}) {
		t.Errorf("events = %v", f.events.events)
	}
}

func TestSummarizeEmptyText(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Summarize(context.Background(), "blank.pdf", []byte("   \n")); !errors.Is(err, ErrNoText) {
		t.Fatalf("Summarize() error = %v, want ErrNoText", err)
	}
	if len(f.model.prompts) != 0 {
		t.Error("model called for an empty document")
	}
}

func TestGenerateQuizLatestDocument(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc, err := f.svc.Summarize(ctx, "a.pdf", []byte("text"))
	if err != nil {
		t.Fatal(err)
	}

	questions, err := f.svc.GenerateQuiz(ctx, "")
	if err != nil {
		t.Fatalf("GenerateQuiz() error = %v", err)
	}
	if len(questions) != 2 || questions[1].CorrectOption != 0 {
		t.Errorf("questions = %+v", questions)
	}
	if !strings.Contains(f.model.prompts[1], "A short summary.") {
		t.Error("summary missing from the quiz prompt")
	}
	last := f.events.events[len(f.events.events)-1]
	if last != (event{doc.ID, websocket.EventQuizReady}) {
		t.Errorf("last event = %v", last)
	}
}

func TestGenerateQuizFallsBackToDatabase(t *testing.T) {
	f := newFixture()
	f.repo.CreateDocument(context.Background(), &models.Document{ID: "stored", Summary: "From the database."})

	if _, err := f.svc.GenerateQuiz(context.Background(), "stored"); err != nil {
		t.Fatalf("GenerateQuiz() error = %v", err)
	}
	if f.cache.summaries["stored"] != "From the database." {
		t.Error("summary not written back to the cache")
	}
	if !strings.Contains(f.model.prompts[0], "From the database.") {
		t.Error("database summary not used")
	}
}

func TestGenerateQuizNoDocument(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.GenerateQuiz(context.Background(), ""); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("GenerateQuiz() error = %v, want ErrNoDocument", err)
	}
	if _, err := f.svc.GenerateQuiz(context.Background(), "missing"); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("GenerateQuiz(missing) error = %v, want ErrNoDocument", err)
	}
}

func TestGenerateQuizModelFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc, _ := f.svc.Summarize(ctx, "a.pdf", []byte("text"))

	f.model.replies["multiple-choice"] = "no json here"
	if _, err := f.svc.GenerateQuiz(ctx, doc.ID); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("GenerateQuiz() error = %v, want ErrNoQuestions", err)
	}

	f.model.err = errors.New("quota exceeded")
	if _, err := f.svc.GenerateQuiz(ctx, doc.ID); err == nil {
		t.Fatal("expected model error")
	}

	last := f.events.events[len(f.events.events)-1]
	if last.kind != websocket.EventGenerationFailed {
		t.Errorf("last event = %v, want generation_failed", last)
	}
}
