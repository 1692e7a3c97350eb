package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
)

type eventService struct {
	repo         ports.EventRepository
	responseRepo ports.ResponseRepository
}

func NewEventService(repo ports.EventRepository, responseRepo ports.ResponseRepository) ports.EventService {
	return &eventService{
		repo:         repo,
		responseRepo: responseRepo,
	}
}

// ValidateQuestionDraft checks a single question before it joins an event's
// working set: text must be non-blank, the type must be known, and
// option-backed types need at least two distinct non-blank options after
// trimming.
func ValidateQuestionDraft(draft ports.QuestionInput) error {
	if strings.TrimSpace(draft.Text) == "" {
		return domain.ErrQuestionTextBlank
	}
	if !domain.ValidQuestionType(draft.Type) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidQuestionType, draft.Type)
	}
	if domain.IsChoiceType(draft.Type) || draft.Type == domain.QuestionTextList {
		if len(sanitizeOptions(draft.Options)) < 2 {
			return domain.ErrNotEnoughOptions
		}
	}
	return nil
}

// DiffQuestions computes the write set needed to turn existing into desired.
// Desired questions carrying an id from existing become updates, the rest
// inserts; their sort position is always recomputed from the desired index.
// Existing ids absent from desired are deletes. An id that does not belong
// to this event is never carried into the write set, so a crafted payload
// cannot touch another event's rows.
func DiffQuestions(eventID uuid.UUID, existing []domain.Question, desired []ports.QuestionInput) ports.QuestionDiff {
	var diff ports.QuestionDiff

	known := make(map[uuid.UUID]bool, len(existing))
	for _, question := range existing {
		known[question.ID] = true
	}

	keep := make(map[uuid.UUID]bool, len(desired))
	for i, input := range desired {
		question := domain.Question{
			EventID:   eventID,
			Text:      input.Text,
			Type:      input.Type,
			Required:  input.Required,
			Options:   optionsFor(input),
			SortOrder: i,
		}
		if input.ID != nil && known[*input.ID] {
			question.ID = *input.ID
			keep[question.ID] = true
			diff.ToUpdate = append(diff.ToUpdate, question)
		} else {
			question.ID = uuid.New()
			diff.ToInsert = append(diff.ToInsert, question)
		}
	}

	for _, question := range existing {
		if !keep[question.ID] {
			diff.ToDelete = append(diff.ToDelete, question.ID)
		}
	}

	return diff
}

func (s *eventService) Create(ctx context.Context, input ports.EventInput, createdBy *uuid.UUID) (*domain.Event, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(input.Title),
		AdditionalInfo: input.AdditionalInfo,
		EventDate:      input.EventDate,
		StartDateTime:  input.StartDateTime,
		EndDateTime:    input.EndDateTime,
		Status:         input.Status,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now(),
	}

	for i, question := range input.Questions {
		event.Questions = append(event.Questions, domain.Question{
			ID:        uuid.New(),
			EventID:   event.ID,
			Text:      question.Text,
			Type:      question.Type,
			Required:  question.Required,
			Options:   optionsFor(question),
			SortOrder: i,
		})
	}

	if err := s.repo.Save(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidEventID
	}
	return s.repo.GetByID(ctx, eventID)
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.GetAll(ctx)
}

func (s *eventService) Update(ctx context.Context, id string, input ports.EventInput) (*domain.Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidEventID
	}

	if err := validateEventFields(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:             eventID,
		Title:          strings.TrimSpace(input.Title),
		AdditionalInfo: input.AdditionalInfo,
		EventDate:      input.EventDate,
		StartDateTime:  input.StartDateTime,
		EndDateTime:    input.EndDateTime,
		Status:         input.Status,
		CreatedBy:      existing.CreatedBy,
		CreatedAt:      existing.CreatedAt,
	}

	// Once responses exist the question set is frozen: event fields still
	// update, the diff step is skipped entirely and the submitted drafts
	// are not validated since they are never written. Status checks then
	// run against the stored questions instead.
	var diff ports.QuestionDiff
	if existing.ResponseCount == 0 {
		if err := validateQuestionSet(input.Status, input.Questions); err != nil {
			return nil, err
		}
		diff = DiffQuestions(eventID, existing.Questions, input.Questions)
	} else if input.Status == domain.StatusActive && len(existing.Questions) == 0 {
		return nil, domain.ErrNoQuestions
	}

	if err := s.repo.Update(ctx, event, diff); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, eventID)
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidEventID
	}

	count, err := s.responseRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to count responses: %w", err)
	}
	if count > 0 {
		return domain.ErrEventHasResponses
	}

	return s.repo.Delete(ctx, eventID)
}

func validateEventInput(input ports.EventInput) error {
	if err := validateEventFields(input); err != nil {
		return err
	}
	return validateQuestionSet(input.Status, input.Questions)
}

func validateEventFields(input ports.EventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if !domain.ValidEventStatus(input.Status) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidStatus, input.Status)
	}
	return nil
}

func validateQuestionSet(status string, questions []ports.QuestionInput) error {
	if status == domain.StatusActive && len(questions) == 0 {
		return domain.ErrNoQuestions
	}
	for _, question := range questions {
		if err := ValidateQuestionDraft(question); err != nil {
			return err
		}
	}
	return nil
}

// optionsFor keeps option lists only on types that use them, never nil so
// they serialize as [].
func optionsFor(input ports.QuestionInput) []string {
	if domain.IsChoiceType(input.Type) || input.Type == domain.QuestionTextList {
		return sanitizeOptions(input.Options)
	}
	return []string{}
}

func sanitizeOptions(options []string) []string {
	seen := make(map[string]bool, len(options))
	sanitized := make([]string, 0, len(options))
	for _, option := range options {
		option = strings.TrimSpace(option)
		if option == "" || seen[option] {
			continue
		}
		seen[option] = true
		sanitized = append(sanitized, option)
	}
	return sanitized
}
