// internal/app/flow.go
package app

import (
	"context"
	"errors"
	"log"

	"docquiz/internal/client"
	"docquiz/internal/models"
	"docquiz/internal/quiz"
	"docquiz/internal/session"
)

var (
	ErrBusy         = errors.New("a request is already in progress")
	ErrNoSummary    = errors.New("upload a document first")
	ErrNotStarted   = errors.New("no quiz in progress")
	ErrNotSubmitted = errors.New("quiz has not been submitted")
)

// Generator is the remote summarization and question generation service.
type Generator interface {
	UploadDocument(ctx context.Context, filename string, data []byte) (string, error)
	GenerateQuiz(ctx context.Context) ([]models.Question, error)
}

type Stage int

const (
	StageUpload Stage = iota
	StageSummary
	StageQuiz
	StageScore
)

func (s Stage) String() string {
	switch s {
	case StageUpload:
		return "upload"
	case StageSummary:
		return "summary"
	case StageQuiz:
		return "quiz"
	case StageScore:
		return "score"
	default:
		return "unknown"
	}
}

// Flow connects the session store, the quiz controller and the generator
// the way the screens of the app use them.
type Flow struct {
	store      *session.Store
	gen        Generator
	controller *quiz.Controller
}

func NewFlow(store *session.Store, gen Generator) *Flow {
	return &Flow{store: store, gen: gen}
}

func (f *Flow) Store() *session.Store {
	return f.store
}

// Controller is nil until a quiz has been generated.
func (f *Flow) Controller() *quiz.Controller {
	return f.controller
}

// Stage is the screen the current state belongs on.
func (f *Flow) Stage() Stage {
	if f.controller != nil {
		if f.controller.State() == quiz.StateSubmitted {
			return StageScore
		}
		return StageQuiz
	}
	if f.store.Summary() != "" {
		return StageSummary
	}
	return StageUpload
}

// begin claims the loading flag. The returned func releases it.
func (f *Flow) begin() (func(), error) {
	if f.store.Loading() {
		return nil, ErrBusy
	}
	f.store.SetLoading(true)
	return func() { f.store.SetLoading(false) }, nil
}

// Upload validates the document, sends it for summarization and stores the summary.
func (f *Flow) Upload(ctx context.Context, filename string, data []byte) error {
	if err := client.ValidateDocument(filename, data); err != nil {
		return err
	}
	done, err := f.begin()
	if err != nil {
		return err
	}
	defer done()

	summary, err := f.gen.UploadDocument(ctx, filename, data)
	if err != nil {
		log.Printf("Upload of %s failed: %v", filename, err)
		return err
	}
	// a new document starts over from its summary
	f.controller = nil
	f.store.ClearQuiz()
	f.store.SetSummary(summary)
	return nil
}

// GenerateQuiz fetches questions for the stored summary and starts a new attempt.
// On any failure the previous quiz, if any, is left untouched.
func (f *Flow) GenerateQuiz(ctx context.Context) error {
	summary := f.store.Summary()
	if summary == "" {
		return ErrNoSummary
	}
	done, err := f.begin()
	if err != nil {
		return err
	}
	defer done()

	questions, err := f.gen.GenerateQuiz(ctx)
	if err != nil {
		log.Printf("Quiz generation failed: %v", err)
		return err
	}
	data := models.QuizData{Questions: questions, Summary: summary}
	if err := data.Validate(); err != nil {
		log.Printf("Generated quiz rejected: %v", err)
		return &client.GenerationError{Op: "generate quiz", Message: "The generated quiz was invalid: " + err.Error()}
	}

	return f.start(data)
}

func (f *Flow) start(data models.QuizData) error {
	f.store.SetQuizData(data)
	c, err := quiz.New(f.store)
	if err != nil {
		return err
	}
	f.controller = c
	log.Printf("Quiz started with %d questions", data.Len())
	return nil
}

// RestartQuiz begins a fresh attempt at the current quiz.
func (f *Flow) RestartQuiz() error {
	data, ok := f.store.QuizData()
	if !ok {
		return ErrNotStarted
	}
	return f.start(data)
}

// Submit commits the attempt and returns its report.
func (f *Flow) Submit() (models.ScoreReport, error) {
	if f.controller == nil {
		return models.ScoreReport{}, ErrNotStarted
	}
	if err := f.controller.Submit(); err != nil {
		return models.ScoreReport{}, err
	}
	return f.Report()
}

// Report scores the answers committed to the store. It is only available
// once the current attempt has been submitted.
func (f *Flow) Report() (models.ScoreReport, error) {
	if f.controller == nil || f.controller.State() != quiz.StateSubmitted {
		return models.ScoreReport{}, ErrNotSubmitted
	}
	data, ok := f.store.QuizData()
	if !ok {
		return models.ScoreReport{}, ErrNotStarted
	}
	report, err := quiz.ComputeScoreReport(data, f.store.Answers())
	if err != nil {
		log.Printf("BUG: scoring failed: %v", err)
		return models.ScoreReport{}, err
	}
	return report, nil
}

// StartOver drops everything and returns to the upload stage.
func (f *Flow) StartOver() {
	f.controller = nil
	f.store.Reset()
}
