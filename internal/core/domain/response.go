package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Response struct {
	ID            uuid.UUID  `json:"id"`
	EventID       uuid.UUID  `json:"event_id"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	SubmittedBy   *uuid.UUID `json:"submitted_by,omitempty"`
	SubmitterName string     `json:"submitter_name,omitempty"`
	Answers       []Answer   `json:"answers"`
}

type Answer struct {
	ID         uuid.UUID `json:"id"`
	ResponseID uuid.UUID `json:"response_id"`
	QuestionID uuid.UUID `json:"question_id"`
	Value      string    `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}

// FlattenAnswer reduces a raw answer value to the single textual form that is
// persisted. Multi-value answers are joined with ", ". The second return is
// false when the value is empty and must not be persisted.
func FlattenAnswer(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case []string:
		if len(v) == 0 {
			return "", false
		}
		return strings.Join(v, ", "), true
	case []any:
		if len(v) == 0 {
			return "", false
		}
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", "), true
	default:
		return fmt.Sprint(v), true
	}
}

// SplitAnswer is the read-side inverse of FlattenAnswer: it breaks a stored
// value on commas and trims each part, dropping blanks. A single-value answer
// comes back as a one-element slice.
func SplitAnswer(value string) []string {
	var parts []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
