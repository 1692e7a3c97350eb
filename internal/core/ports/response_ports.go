package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
)

type ResponseRepository interface {
	CreateHeader(ctx context.Context, response *domain.Response) error
	InsertAnswers(ctx context.Context, answers []domain.Answer) error
	DeleteHeader(ctx context.Context, id uuid.UUID) error
	GetByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.Response, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
}

// SubmitInput carries one participant submission. Answer values may be
// strings or string slices; empty values are skipped at recording time.
type SubmitInput struct {
	EventID     uuid.UUID
	SubmittedBy *uuid.UUID
	Answers     map[uuid.UUID]any
}

type ResponseService interface {
	Submit(ctx context.Context, input SubmitInput) (uuid.UUID, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.Response, error)
	Delete(ctx context.Context, ids []uuid.UUID) error
}
