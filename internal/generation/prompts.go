// internal/generation/prompts.go
package generation

import "fmt"

func summaryPrompt(text string) string {
	return fmt.Sprintf(`Summarize the following document for a student who will be quizzed on it.
Write 3 to 6 short paragraphs of plain text. Cover the main ideas, key terms and any important facts or numbers.
Do not use markdown headings or bullet points.

Document:
%s`, text)
}

func quizPrompt(summary string, count int) string {
	return fmt.Sprintf(`Create %d multiple-choice questions that test understanding of the summary below.

Requirements:
- Each question has exactly 4 options.
- Exactly one option is correct; vary its position between questions.
- "correct_answer" is the zero-based index of the correct option.
- Questions must be answerable from the summary alone.

Return only valid JSON in this exact shape, with no other text:
{"questions": [{"question": "...", "options": ["...", "...", "...", "..."], "correct_answer": 0}]}

Summary:
%s`, count, summary)
}
