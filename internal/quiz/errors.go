// internal/quiz/errors.go
package quiz

import "errors"

var (
	ErrNoQuiz            = errors.New("no quiz loaded")
	ErrIncompleteQuiz    = errors.New("all questions must be answered before submitting")
	ErrInvalidNavigation = errors.New("question index out of range")
	ErrAlreadySubmitted  = errors.New("quiz already submitted")
	ErrUnknownQuestion   = errors.New("question not in quiz")
	ErrInvalidOption     = errors.New("option index out of range")

	// ErrEmptyQuiz means a report was requested for a quiz without questions.
	// Callers never reach scoring without questions, so seeing it is a bug.
	ErrEmptyQuiz = errors.New("cannot score a quiz with no questions")
)
