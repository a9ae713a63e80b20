// internal/models/quiz.go
package models

import (
	"errors"
	"fmt"
)

// Unanswered marks a question the user never picked an option for.
const Unanswered = -1

var (
	ErrTooFewOptions   = errors.New("question needs at least two options")
	ErrCorrectOutRange = errors.New("correct answer is not one of the options")
	ErrDuplicateID     = errors.New("duplicate question id")
	ErrNoQuestions     = errors.New("quiz has no questions")
)

type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_answer"`
}

func (q Question) ValidOption(index int) bool {
	return index >= 0 && index < len(q.Options)
}

func (q Question) Validate() error {
	if len(q.Options) < 2 {
		return fmt.Errorf("question %d: %w", q.ID, ErrTooFewOptions)
	}
	if !q.ValidOption(q.CorrectOption) {
		return fmt.Errorf("question %d: %w", q.ID, ErrCorrectOutRange)
	}
	return nil
}

// QuizData is one generated quiz. Question order is presentation order.
type QuizData struct {
	Questions []Question `json:"questions"`
	Summary   string     `json:"summary,omitempty"`
}

func (d QuizData) Len() int {
	return len(d.Questions)
}

func (d QuizData) Question(id int) (Question, bool) {
	for _, q := range d.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

func (d QuizData) Validate() error {
	if len(d.Questions) == 0 {
		return ErrNoQuestions
	}
	seen := make(map[int]bool, len(d.Questions))
	for _, q := range d.Questions {
		if seen[q.ID] {
			return fmt.Errorf("question %d: %w", q.ID, ErrDuplicateID)
		}
		seen[q.ID] = true
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a copy that shares no slices with d.
func (d QuizData) Clone() QuizData {
	out := QuizData{Summary: d.Summary}
	if d.Questions == nil {
		return out
	}
	out.Questions = make([]Question, len(d.Questions))
	for i, q := range d.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Questions[i] = q
	}
	return out
}

// AnswerMap maps question id to the chosen option index.
type AnswerMap map[int]int

func (m AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
