// internal/models/dto.go
package models

// Wire shapes shared by the generation server and its client.

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type QuizResponse struct {
	Questions []Question `json:"questions"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

// QuestionView is a question without its answer, as shown while the quiz is running.
type QuestionView struct {
	ID      int      `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

func (q Question) ToView() QuestionView {
	return QuestionView{
		ID:      q.ID,
		Text:    q.Text,
		Options: append([]string(nil), q.Options...),
	}
}
