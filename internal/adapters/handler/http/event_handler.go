package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
)

type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{
		service: service,
	}
}

type questionRequest struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	Text     string     `json:"text"`
	Type     string     `json:"type"`
	Required bool       `json:"required"`
	Options  []string   `json:"options"`
}

type eventRequest struct {
	Title          string            `json:"title"`
	AdditionalInfo string            `json:"additional_info"`
	EventDate      string            `json:"event_date"`     // 2006-01-02
	StartDateTime  time.Time         `json:"start_datetime"` // RFC 3339
	EndDateTime    time.Time         `json:"end_datetime"`
	Status         string            `json:"status"`
	Questions      []questionRequest `json:"questions"`
}

func (req eventRequest) toInput() (ports.EventInput, error) {
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return ports.EventInput{}, errors.New("event_date must be formatted as YYYY-MM-DD")
	}

	input := ports.EventInput{
		Title:          req.Title,
		AdditionalInfo: req.AdditionalInfo,
		EventDate:      eventDate,
		StartDateTime:  req.StartDateTime,
		EndDateTime:    req.EndDateTime,
		Status:         req.Status,
	}
	if input.Status == "" {
		input.Status = domain.StatusAwaiting
	}
	if !input.EndDateTime.After(input.StartDateTime) {
		return ports.EventInput{}, errors.New("end_datetime must be after start_datetime")
	}
	for _, question := range req.Questions {
		input.Questions = append(input.Questions, ports.QuestionInput{
			ID:       question.ID,
			Text:     question.Text,
			Type:     question.Type,
			Required: question.Required,
			Options:  question.Options,
		})
	}
	return input, nil
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input, err := req.toInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var createdBy *uuid.UUID
	if userID, ok := r.Context().Value(UserIDKey).(uuid.UUID); ok {
		createdBy = &userID
	}

	event, err := h.service.Create(r.Context(), input, createdBy)
	if err != nil {
		writeEventError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(event); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Participants only ever see events open for responding.
	if role, _ := r.Context().Value(UserRoleKey).(string); role == domain.RoleParticipant {
		visible := make([]*domain.Event, 0, len(events))
		for _, event := range events {
			if event.Status == domain.StatusActive {
				visible = append(visible, event)
			}
		}
		events = visible
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(events); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing event id", http.StatusBadRequest)
		return
	}

	event, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeEventError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(event); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input, err := req.toInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		writeEventError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(event); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeEventError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeEventError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEventID),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidQuestionType),
		errors.Is(err, domain.ErrQuestionTextBlank),
		errors.Is(err, domain.ErrNotEnoughOptions),
		errors.Is(err, domain.ErrNoQuestions):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrEventNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrEventHasResponses):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
