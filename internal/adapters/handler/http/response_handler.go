package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
)

type ResponseHandler struct {
	service ports.ResponseService
}

func NewResponseHandler(service ports.ResponseService) *ResponseHandler {
	return &ResponseHandler{
		service: service,
	}
}

type submitResponseRequest struct {
	// question id -> answer value (string or array of strings)
	Answers map[string]any `json:"answers"`
}

type submitResponseResponse struct {
	ResponseID uuid.UUID `json:"response_id"`
}

// SubmitResponse records a submission by the authenticated user.
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}
	h.submit(w, r, &userID)
}

// SubmitPublicResponse records an anonymous submission from the public
// response link.
func (h *ResponseHandler) SubmitPublicResponse(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, nil)
}

func (h *ResponseHandler) submit(w http.ResponseWriter, r *http.Request, submittedBy *uuid.UUID) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	var req submitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	answers := make(map[uuid.UUID]any, len(req.Answers))
	for rawID, value := range req.Answers {
		questionID, err := uuid.Parse(rawID)
		if err != nil {
			http.Error(w, "invalid question id: "+rawID, http.StatusBadRequest)
			return
		}
		answers[questionID] = value
	}

	responseID, err := h.service.Submit(r.Context(), ports.SubmitInput{
		EventID:     eventID,
		SubmittedBy: submittedBy,
		Answers:     answers,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrSubmissionFailed),
			errors.Is(err, domain.ErrAnswerPersistence):
			http.Error(w, err.Error(), http.StatusInternalServerError)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(submitResponseResponse{ResponseID: responseID}); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func (h *ResponseHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	responses, err := h.service.ListByEvent(r.Context(), eventID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if responses == nil {
		responses = []*domain.Response{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(responses); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

type deleteResponsesRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func (h *ResponseHandler) DeleteResponses(w http.ResponseWriter, r *http.Request) {
	var req deleteResponsesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "no response ids provided", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), req.IDs); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
