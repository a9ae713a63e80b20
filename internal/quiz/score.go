// internal/quiz/score.go
package quiz

import "docquiz/internal/models"

// ComputeScoreReport grades answers against data, in question order.
// A question missing from answers counts as unanswered and incorrect.
func ComputeScoreReport(data models.QuizData, answers models.AnswerMap) (models.ScoreReport, error) {
	total := data.Len()
	if total == 0 {
		return models.ScoreReport{}, ErrEmptyQuiz
	}

	report := models.ScoreReport{
		Total:     total,
		Questions: make([]models.QuestionResult, 0, total),
	}
	for _, q := range data.Questions {
		result := models.QuestionResult{
			QuestionID:    q.ID,
			Chosen:        models.Unanswered,
			CorrectOption: q.CorrectOption,
		}
		if chosen, ok := answers[q.ID]; ok {
			result.Chosen = chosen
			result.Answered = true
			result.Correct = chosen == q.CorrectOption
		}
		if result.Correct {
			report.Correct++
		}
		report.Questions = append(report.Questions, result)
	}
	report.Percentage = roundPercent(report.Correct, total)
	return report, nil
}

// roundPercent is part/whole*100 rounded half up, in integers.
func roundPercent(part, whole int) int {
	return (200*part + whole) / (2 * whole)
}
