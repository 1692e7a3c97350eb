package services

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
)

type reportService struct{}

func NewReportService() ports.ReportService {
	return &reportService{}
}

// TallyChoices counts how often each option value appears in the answers to
// question, restricted to responses matching every active filter except the
// one on question itself. Leaving the question's own filter out keeps its
// chart fully populated while the other charts narrow. The percentage base
// is the number of responses that contributed at least one tally, so a
// multi-select answer never pushes an option past 100%.
func (s *reportService) TallyChoices(question domain.Question, responses []*domain.Response, filters ports.ReportFilters) []domain.OptionTally {
	filtered := applyFilters(responses, filters, &question.ID)

	counts := make(map[string]int64)
	var totalCounted int64

	for _, response := range filtered {
		answer := findAnswer(response, question.ID)
		if answer == nil || answer.Value == "" {
			continue
		}
		for _, value := range domain.SplitAnswer(answer.Value) {
			counts[value]++
		}
		totalCounted++
	}

	tallies := make([]domain.OptionTally, 0, len(counts))
	for label, count := range counts {
		var percentage float64
		if totalCounted > 0 {
			percentage = math.Round(float64(count)/float64(totalCounted)*1000) / 10
		}
		tallies = append(tallies, domain.OptionTally{
			Label:      label,
			Count:      count,
			Percentage: percentage,
		})
	}

	sort.Slice(tallies, func(i, j int) bool {
		return naturalLess(tallies[i].Label, tallies[j].Label)
	})

	return tallies
}

func (s *reportService) CollectFreeText(question domain.Question, responses []*domain.Response, filters ports.ReportFilters) []domain.TextAnswer {
	filtered := applyFilters(responses, filters, nil)

	var answers []domain.TextAnswer
	for _, response := range filtered {
		answer := findAnswer(response, question.ID)
		if answer == nil || answer.Value == "" {
			continue
		}
		answers = append(answers, domain.TextAnswer{
			Value:       answer.Value,
			SubmittedAt: response.SubmittedAt,
			Respondent:  response.SubmitterName,
			RespondedBy: response.SubmittedBy,
		})
	}
	return answers
}

// TallyTags summarizes a text_list question: every comma-separated entry
// counts as one tag, the ten most frequent come back as TopTags.
func (s *reportService) TallyTags(question domain.Question, responses []*domain.Response, filters ports.ReportFilters) domain.TagSummary {
	filtered := applyFilters(responses, filters, nil)

	summary := domain.TagSummary{
		TotalResponses: int64(len(filtered)),
		AllTags:        make(map[string]int64),
	}

	for _, response := range filtered {
		answer := findAnswer(response, question.ID)
		if answer == nil || answer.Value == "" {
			continue
		}
		for _, tag := range domain.SplitAnswer(answer.Value) {
			summary.AllTags[tag]++
			summary.TotalTags++
		}
	}

	top := make([]domain.TagCount, 0, len(summary.AllTags))
	for name, count := range summary.AllTags {
		top = append(top, domain.TagCount{Name: name, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return naturalLess(top[i].Name, top[j].Name)
	})
	if len(top) > 10 {
		top = top[:10]
	}
	summary.TopTags = top

	return summary
}

func (s *reportService) Metrics(responses []*domain.Response) domain.ResponseMetrics {
	metrics := domain.ResponseMetrics{Total: int64(len(responses))}
	if len(responses) == 0 {
		return metrics
	}

	first := responses[0].SubmittedAt
	last := responses[0].SubmittedAt
	for _, response := range responses[1:] {
		if response.SubmittedAt.Before(first) {
			first = response.SubmittedAt
		}
		if response.SubmittedAt.After(last) {
			last = response.SubmittedAt
		}
	}
	metrics.FirstSubmittedAt = &first
	metrics.LastSubmittedAt = &last
	return metrics
}

// applyFilters keeps responses whose answers contain every filter value.
// When exclude is set the filter keyed by that question is ignored.
func applyFilters(responses []*domain.Response, filters ports.ReportFilters, exclude *uuid.UUID) []*domain.Response {
	if len(filters) == 0 {
		return responses
	}

	var filtered []*domain.Response
	for _, response := range responses {
		if matchesFilters(response, filters, exclude) {
			filtered = append(filtered, response)
		}
	}
	return filtered
}

func matchesFilters(response *domain.Response, filters ports.ReportFilters, exclude *uuid.UUID) bool {
	for questionID, filterValue := range filters {
		if exclude != nil && questionID == *exclude {
			continue
		}
		answer := findAnswer(response, questionID)
		if answer == nil || answer.Value == "" {
			return false
		}
		found := false
		for _, value := range domain.SplitAnswer(answer.Value) {
			if value == filterValue {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func findAnswer(response *domain.Response, questionID uuid.UUID) *domain.Answer {
	for i := range response.Answers {
		if response.Answers[i].QuestionID == questionID {
			return &response.Answers[i]
		}
	}
	return nil
}

// naturalLess orders labels the way a person reads them: digit runs compare
// as numbers ("9:00" before "10:00"), everything else case-insensitively.
func naturalLess(a, b string) bool {
	ar, br := []rune(strings.ToLower(a)), []rune(strings.ToLower(b))
	i, j := 0, 0
	for i < len(ar) && j < len(br) {
		if unicode.IsDigit(ar[i]) && unicode.IsDigit(br[j]) {
			iStart, jStart := i, j
			for i < len(ar) && unicode.IsDigit(ar[i]) {
				i++
			}
			for j < len(br) && unicode.IsDigit(br[j]) {
				j++
			}
			na := strings.TrimLeft(string(ar[iStart:i]), "0")
			nb := strings.TrimLeft(string(br[jStart:j]), "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}
		if ar[i] != br[j] {
			return ar[i] < br[j]
		}
		i++
		j++
	}
	return len(ar)-i < len(br)-j
}
