// internal/session/store.go
package session

import (
	"sync"

	"docquiz/internal/models"
)

// Snapshot is a read-only copy of the session taken after a mutation.
type Snapshot struct {
	Summary string
	Quiz    *models.QuizData
	Answers models.AnswerMap
	Loading bool
}

// Store holds the one active quiz session of a running client.
// Every mutation goes through its methods; reads return copies.
type Store struct {
	mu        sync.RWMutex
	quiz      *models.QuizData
	answers   models.AnswerMap
	summary   string
	loading   bool
	observers map[int]func(Snapshot)
	nextObs   int
}

func NewStore() *Store {
	return &Store{
		answers:   models.AnswerMap{},
		observers: make(map[int]func(Snapshot)),
	}
}

func (s *Store) SetSummary(text string) {
	s.mu.Lock()
	s.summary = text
	s.mu.Unlock()
	s.notify()
}

// SetQuizData replaces the current quiz. Answers recorded for a previous quiz are dropped.
func (s *Store) SetQuizData(data models.QuizData) {
	clone := data.Clone()
	s.mu.Lock()
	s.quiz = &clone
	s.answers = models.AnswerMap{}
	s.mu.Unlock()
	s.notify()
}

// ClearQuiz drops the quiz and its answers but keeps the summary.
func (s *Store) ClearQuiz() {
	s.mu.Lock()
	s.quiz = nil
	s.answers = models.AnswerMap{}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) RecordAnswers(answers models.AnswerMap) {
	s.mu.Lock()
	s.answers = answers.Clone()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Reset() {
	s.mu.Lock()
	s.quiz = nil
	s.answers = models.AnswerMap{}
	s.summary = ""
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

func (s *Store) Summary() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// QuizData reports false when no quiz has been loaded.
func (s *Store) QuizData() (models.QuizData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.quiz == nil {
		return models.QuizData{}, false
	}
	return s.quiz.Clone(), true
}

func (s *Store) Answers() models.AnswerMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.answers.Clone()
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Summary: s.summary,
		Answers: s.answers.Clone(),
		Loading: s.loading,
	}
	if s.quiz != nil {
		q := s.quiz.Clone()
		snap.Quiz = &q
	}
	return snap
}

// Subscribe registers fn to run after every mutation. The returned func removes it.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// notify runs observers outside the lock so they may read the store.
func (s *Store) notify() {
	s.mu.RLock()
	if len(s.observers) == 0 {
		s.mu.RUnlock()
		return
	}
	snap := s.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(snap)
	}
}
