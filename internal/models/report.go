// internal/models/report.go
package models

type QuestionResult struct {
	QuestionID    int  `json:"question_id"`
	Chosen        int  `json:"chosen"`
	Answered      bool `json:"answered"`
	Correct       bool `json:"correct"`
	CorrectOption int  `json:"correct_answer"`
}

type ScoreReport struct {
	Correct    int              `json:"correct"`
	Total      int              `json:"total"`
	Percentage int              `json:"percentage"`
	Questions  []QuestionResult `json:"questions"`
}

func (r ScoreReport) Incorrect() int {
	return r.Total - r.Correct
}

type Band string

const (
	BandOutstanding Band = "outstanding"
	BandGreat       Band = "great"
	BandGood        Band = "good"
	BandFair        Band = "fair"
	BandLow         Band = "low"
)

func (r ScoreReport) Band() Band {
	switch {
	case r.Percentage >= 90:
		return BandOutstanding
	case r.Percentage >= 80:
		return BandGreat
	case r.Percentage >= 70:
		return BandGood
	case r.Percentage >= 60:
		return BandFair
	default:
		return BandLow
	}
}

func (r ScoreReport) Message() string {
	switch r.Band() {
	case BandOutstanding:
		return "Outstanding! You have mastered this content."
	case BandGreat:
		return "Great job! You have a solid understanding."
	case BandGood:
		return "Good work! You got most of it right."
	case BandFair:
		return "Not bad! Consider reviewing the material."
	default:
		return "Keep studying! Practice makes perfect."
	}
}
