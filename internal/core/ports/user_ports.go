package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
)

type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, changeRequired bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateUserInput struct {
	Login    string
	Name     string
	Phone    string
	Role     string
	Status   string
	Password string
}

type UpdateUserInput struct {
	Name   string
	Phone  string
	Role   string
	Status string
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
