package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
)

type ReportHandler struct {
	eventService    ports.EventService
	responseService ports.ResponseService
	reportService   ports.ReportService
}

func NewReportHandler(eventService ports.EventService, responseService ports.ResponseService, reportService ports.ReportService) *ReportHandler {
	return &ReportHandler{
		eventService:    eventService,
		responseService: responseService,
		reportService:   reportService,
	}
}

type questionReport struct {
	Question domain.Question      `json:"question"`
	Tallies  []domain.OptionTally `json:"tallies,omitempty"`
	Tags     *domain.TagSummary   `json:"tags,omitempty"`
	Texts    []domain.TextAnswer  `json:"texts,omitempty"`
}

type eventReport struct {
	EventID   uuid.UUID              `json:"event_id"`
	Metrics   domain.ResponseMetrics `json:"metrics"`
	Questions []questionReport       `json:"questions"`
}

// GetEventReport aggregates an event's responses per question. Active
// filters arrive as `<questionID>=<value>` query parameters and narrow
// every chart except the filtered question's own.
func (h *ReportHandler) GetEventReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.eventService.Get(r.Context(), id)
	if err != nil {
		writeEventError(w, err)
		return
	}

	responses, err := h.responseService.ListByEvent(r.Context(), event.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filters := make(ports.ReportFilters)
	for key, values := range r.URL.Query() {
		questionID, err := uuid.Parse(key)
		if err != nil || len(values) == 0 {
			continue
		}
		filters[questionID] = values[0]
	}

	report := eventReport{
		EventID:   event.ID,
		Metrics:   h.reportService.Metrics(responses),
		Questions: make([]questionReport, 0, len(event.Questions)),
	}

	for _, question := range event.Questions {
		section := questionReport{Question: question}
		switch {
		case domain.IsChoiceType(question.Type) || question.Type == domain.QuestionTime:
			section.Tallies = h.reportService.TallyChoices(question, responses, filters)
		case question.Type == domain.QuestionTextList:
			tags := h.reportService.TallyTags(question, responses, filters)
			section.Tags = &tags
		default:
			section.Texts = h.reportService.CollectFreeText(question, responses, filters)
		}
		report.Questions = append(report.Questions, section)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
