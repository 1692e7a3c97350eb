package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusAwaiting = "awaiting"
	StatusActive   = "active"
	StatusClosed   = "closed"
)

const (
	QuestionShortText      = "short_text"
	QuestionLongText       = "long_text"
	QuestionTime           = "time"
	QuestionSingleChoice   = "single_choice"
	QuestionMultipleChoice = "multiple_choice"
	QuestionTextList       = "text_list"
)

type Event struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	AdditionalInfo string     `json:"additional_info,omitempty"`
	EventDate      time.Time  `json:"event_date"`
	StartDateTime  time.Time  `json:"start_datetime"`
	EndDateTime    time.Time  `json:"end_datetime"`
	Status         string     `json:"status"`
	CreatedBy      *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	Questions      []Question `json:"questions"`
	ResponseCount  int64      `json:"response_count"`
}

type Question struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	Required  bool      `json:"required"`
	Options   []string  `json:"options"`
	SortOrder int       `json:"sort_order"`
}

func ValidEventStatus(status string) bool {
	switch status {
	case StatusAwaiting, StatusActive, StatusClosed:
		return true
	}
	return false
}

func ValidQuestionType(t string) bool {
	switch t {
	case QuestionShortText, QuestionLongText, QuestionTime,
		QuestionSingleChoice, QuestionMultipleChoice, QuestionTextList:
		return true
	}
	return false
}

// IsChoiceType reports whether a question type draws its answers from a
// predefined option list.
func IsChoiceType(t string) bool {
	return t == QuestionSingleChoice || t == QuestionMultipleChoice
}
