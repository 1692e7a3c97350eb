package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
	"github.com/vncsmyrnk/eventos/internal/core/ports"
)

type responseService struct {
	eventRepo ports.EventRepository
	repo      ports.ResponseRepository
}

func NewResponseService(eventRepo ports.EventRepository, repo ports.ResponseRepository) ports.ResponseService {
	return &responseService{
		eventRepo: eventRepo,
		repo:      repo,
	}
}

// Submit records one participant submission. The header row is written
// first; answers with empty values are skipped, the rest are bulk-inserted.
// If the answer insert fails the header is deleted again so no half-written
// response survives. The rollback is best effort, not transactional: if the
// compensating delete also fails the orphaned header is logged and accepted.
func (s *responseService) Submit(ctx context.Context, input ports.SubmitInput) (uuid.UUID, error) {
	if _, err := s.eventRepo.GetByID(ctx, input.EventID); err != nil {
		return uuid.Nil, err
	}

	response := &domain.Response{
		ID:          uuid.New(),
		EventID:     input.EventID,
		SubmittedAt: time.Now(),
		SubmittedBy: input.SubmittedBy,
	}

	if err := s.repo.CreateHeader(ctx, response); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrSubmissionFailed, err)
	}

	answers := make([]domain.Answer, 0, len(input.Answers))
	for questionID, raw := range input.Answers {
		value, ok := domain.FlattenAnswer(raw)
		if !ok {
			continue
		}
		answers = append(answers, domain.Answer{
			ID:         uuid.New(),
			ResponseID: response.ID,
			QuestionID: questionID,
			Value:      value,
		})
	}

	if len(answers) == 0 {
		return response.ID, nil
	}

	if err := s.repo.InsertAnswers(ctx, answers); err != nil {
		if delErr := s.repo.DeleteHeader(ctx, response.ID); delErr != nil {
			slog.Error("compensation failed, orphaned response left behind",
				"response_id", response.ID,
				"error", delErr,
			)
		}
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrAnswerPersistence, err)
	}

	return response.ID, nil
}

func (s *responseService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.Response, error) {
	return s.repo.GetByEvent(ctx, eventID)
}

func (s *responseService) Delete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return s.repo.DeleteByIDs(ctx, ids)
}
