package models

import (
	"errors"
	"testing"
)

func TestQuizDataValidate(t *testing.T) {
	valid := Question{ID: 1, Text: "q", Options: []string{"a", "b"}, CorrectOption: 1}

	tests := []struct {
		name string
		data QuizData
		want error
	}{
		{name: "valid", data: QuizData{Questions: []Question{valid}}},
		{name: "no questions", data: QuizData{}, want: ErrNoQuestions},
		{
			name: "one option",
			data: QuizData{Questions: []Question{{ID: 1, Options: []string{"a"}}}},
			want: ErrTooFewOptions,
		},
		{
			name: "correct out of range",
			data: QuizData{Questions: []Question{{ID: 1, Options: []string{"a", "b"}, CorrectOption: 2}}},
			want: ErrCorrectOutRange,
		},
		{
			name: "duplicate id",
			data: QuizData{Questions: []Question{valid, valid}},
			want: ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestQuestionLookup(t *testing.T) {
	data := QuizData{Questions: []Question{
		{ID: 7, Options: []string{"a", "b"}},
		{ID: 3, Options: []string{"a", "b"}},
	}}

	if q, ok := data.Question(3); !ok || q.ID != 3 {
		t.Errorf("Question(3) = %+v, %v", q, ok)
	}
	if _, ok := data.Question(4); ok {
		t.Error("Question(4) found a question that does not exist")
	}
}

func TestToViewHidesAnswer(t *testing.T) {
	q := Question{ID: 1, Text: "q", Options: []string{"a", "b"}, CorrectOption: 1}
	v := q.ToView()
	v.Options[0] = "changed"

	if q.Options[0] != "a" {
		t.Error("ToView shares the options slice")
	}
	if v.ID != 1 || v.Text != "q" {
		t.Errorf("ToView() = %+v", v)
	}
}
