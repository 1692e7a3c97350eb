package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
)

type EventRepository interface {
	Save(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetAll(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event, diff QuestionDiff) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuestionInput is a question as submitted by an organizer. A nil ID marks a
// brand new question; a non-nil ID refers to an existing row.
type QuestionInput struct {
	ID       *uuid.UUID
	Text     string
	Type     string
	Required bool
	Options  []string
}

type EventInput struct {
	Title          string
	AdditionalInfo string
	EventDate      time.Time
	StartDateTime  time.Time
	EndDateTime    time.Time
	Status         string
	Questions      []QuestionInput
}

// QuestionDiff is the write set needed to reconcile an event's stored
// question list with the desired one. The store has no replace-set
// operation, so the three parts are applied individually.
type QuestionDiff struct {
	ToInsert []domain.Question
	ToUpdate []domain.Question
	ToDelete []uuid.UUID
}

type EventService interface {
	Create(ctx context.Context, input EventInput, createdBy *uuid.UUID) (*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, id string, input EventInput) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
