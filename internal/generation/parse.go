// internal/generation/parse.go
package generation

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"docquiz/internal/models"
)

type rawQuestion struct {
	Question      string          `json:"question"`
	Options       []string        `json:"options"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
}

// ParseQuestions reads the model's JSON reply. Questions that fail validation
// are dropped; the rest are numbered from 1 in order. At most limit are kept
// when limit is positive.
func ParseQuestions(reply string, limit int) ([]models.Question, error) {
	body := extractJSON(reply)
	if body == "" {
		return nil, ErrNoQuestions
	}

	var raws []rawQuestion
	if strings.HasPrefix(body, "[") {
		if err := json.Unmarshal([]byte(body), &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoQuestions, err)
		}
	} else {
		var wrapped struct {
			Questions []rawQuestion `json:"questions"`
		}
		if err := json.Unmarshal([]byte(body), &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoQuestions, err)
		}
		raws = wrapped.Questions
	}

	questions := make([]models.Question, 0, len(raws))
	for i, raw := range raws {
		if limit > 0 && len(questions) == limit {
			break
		}
		q := models.Question{
			ID:      len(questions) + 1,
			Text:    strings.TrimSpace(raw.Question),
			Options: trimAll(raw.Options),
		}
		correct, ok := correctIndex(raw.CorrectAnswer, q.Options)
		if !ok || q.Text == "" {
			log.Printf("Skipping generated question %d: unusable answer or text", i)
			continue
		}
		q.CorrectOption = correct
		if err := q.Validate(); err != nil {
			log.Printf("Skipping generated question %d: %v", i, err)
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// correctIndex accepts an index, the text of the option or a letter ("B").
// Option text is matched before any numeric reading so that "2" among
// options ["1","2","3"] names the second option.
func correctIndex(raw json.RawMessage, options []string) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f != math.Trunc(f) {
			return 0, false
		}
		return int(f), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.TrimSpace(s)
	for i, opt := range options {
		if strings.EqualFold(opt, s) {
			return i, true
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if len(s) == 1 {
		letter := strings.ToUpper(s)[0]
		if letter >= 'A' && letter <= 'Z' {
			return int(letter - 'A'), true
		}
	}
	return 0, false
}

// extractJSON strips code fences and chatter around the first JSON value.
func extractJSON(text string) string {
	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return ""
	}
	open := text[start]
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end < start {
		return ""
	}
	return text[start : end+1]
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
