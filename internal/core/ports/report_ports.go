package ports

import (
	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
)

// ReportFilters maps a question id to the option value responses must
// contain to be counted.
type ReportFilters map[uuid.UUID]string

type ReportService interface {
	TallyChoices(question domain.Question, responses []*domain.Response, filters ReportFilters) []domain.OptionTally
	CollectFreeText(question domain.Question, responses []*domain.Response, filters ReportFilters) []domain.TextAnswer
	TallyTags(question domain.Question, responses []*domain.Response, filters ReportFilters) domain.TagSummary
	Metrics(responses []*domain.Response) domain.ResponseMetrics
}
