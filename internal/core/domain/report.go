package domain

import (
	"time"

	"github.com/google/uuid"
)

// OptionTally is one bar of a choice question chart.
type OptionTally struct {
	Label      string  `json:"label"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type TextAnswer struct {
	Value       string     `json:"value"`
	SubmittedAt time.Time  `json:"submitted_at"`
	Respondent  string     `json:"respondent,omitempty"`
	RespondedBy *uuid.UUID `json:"responded_by,omitempty"`
}

type TagCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type TagSummary struct {
	TotalTags      int64            `json:"total_tags"`
	TotalResponses int64            `json:"total_responses"`
	TopTags        []TagCount       `json:"top_tags"`
	AllTags        map[string]int64 `json:"all_tags"`
}

type ResponseMetrics struct {
	Total            int64      `json:"total"`
	FirstSubmittedAt *time.Time `json:"first_submitted_at"`
	LastSubmittedAt  *time.Time `json:"last_submitted_at"`
}
