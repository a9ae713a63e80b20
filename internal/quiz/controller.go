// internal/quiz/controller.go
package quiz

import (
	"fmt"
	"log"

	"docquiz/internal/models"
	"docquiz/internal/session"
)

type State int

const (
	StateActive State = iota
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// OverviewItem is one cell of the question overview grid.
type OverviewItem struct {
	Index      int
	QuestionID int
	Answered   bool
	Current    bool
}

// Controller runs one attempt at the quiz held by a session store.
// Answers stay local until Submit commits them to the store.
type Controller struct {
	store   *session.Store
	quiz    models.QuizData
	state   State
	current int
	answers models.AnswerMap
}

// New starts an attempt at the store's current quiz at the first question with no answers.
func New(store *session.Store) (*Controller, error) {
	data, ok := store.QuizData()
	if !ok || data.Len() == 0 {
		return nil, ErrNoQuiz
	}
	return &Controller{
		store:   store,
		quiz:    data,
		state:   StateActive,
		answers: models.AnswerMap{},
	}, nil
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Len() int {
	return c.quiz.Len()
}

func (c *Controller) CurrentIndex() int {
	return c.current
}

func (c *Controller) Current() models.Question {
	return c.quiz.Questions[c.current]
}

func (c *Controller) IsFirst() bool {
	return c.current == 0
}

func (c *Controller) IsLast() bool {
	return c.current == c.quiz.Len()-1
}

// SelectAnswer records option for the question, overwriting any earlier choice.
func (c *Controller) SelectAnswer(questionID, option int) error {
	if c.state != StateActive {
		return ErrAlreadySubmitted
	}
	q, ok := c.quiz.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
	}
	if !q.ValidOption(option) {
		return fmt.Errorf("%w: question %d has %d options, got %d", ErrInvalidOption, questionID, len(q.Options), option)
	}
	c.answers[questionID] = option
	return nil
}

// GoToQuestion moves to index. Unanswered questions may be visited freely.
func (c *Controller) GoToQuestion(index int) error {
	if index < 0 || index >= c.quiz.Len() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidNavigation, index, c.quiz.Len())
	}
	c.current = index
	return nil
}

// Next reports whether the position moved; it does nothing on the last question.
func (c *Controller) Next() bool {
	return c.GoToQuestion(c.current+1) == nil
}

// Previous reports whether the position moved; it does nothing on the first question.
func (c *Controller) Previous() bool {
	return c.GoToQuestion(c.current-1) == nil
}

// CanAdvance is the "Next" button gate. Navigation itself never checks it.
func (c *Controller) CanAdvance() bool {
	_, ok := c.answers[c.Current().ID]
	return ok
}

func (c *Controller) Answer(questionID int) (int, bool) {
	option, ok := c.answers[questionID]
	return option, ok
}

func (c *Controller) Answers() models.AnswerMap {
	return c.answers.Clone()
}

func (c *Controller) Answered() int {
	n := 0
	for _, q := range c.quiz.Questions {
		if _, ok := c.answers[q.ID]; ok {
			n++
		}
	}
	return n
}

func (c *Controller) Remaining() int {
	return c.quiz.Len() - c.Answered()
}

func (c *Controller) AllAnswered() bool {
	return c.Remaining() == 0
}

// Progress is the position of the current question as a rounded percentage.
func (c *Controller) Progress() int {
	return roundPercent(c.current+1, c.quiz.Len())
}

func (c *Controller) Overview() []OverviewItem {
	items := make([]OverviewItem, len(c.quiz.Questions))
	for i, q := range c.quiz.Questions {
		_, answered := c.answers[q.ID]
		items[i] = OverviewItem{
			Index:      i,
			QuestionID: q.ID,
			Answered:   answered,
			Current:    i == c.current,
		}
	}
	return items
}

// Submit commits the local answers to the store. Nothing is committed unless
// every question has an answer.
func (c *Controller) Submit() error {
	if c.state != StateActive {
		return ErrAlreadySubmitted
	}
	if remaining := c.Remaining(); remaining > 0 {
		return fmt.Errorf("%w: %d unanswered", ErrIncompleteQuiz, remaining)
	}

	c.store.RecordAnswers(c.answers)
	c.state = StateSubmitted
	log.Printf("Quiz submitted with %d answers", len(c.answers))
	return nil
}
