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

type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// NormalizeLogin is applied before every storage write and lookup so the
// unique-login constraint is case-insensitive.
func NormalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.GetAll(ctx)
}

// Create registers a user with a forced password change on first login.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}
	if !domain.ValidUserStatus(input.Status) {
		return nil, domain.ErrInvalidUserStatus
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrPasswordTooShort
	}

	login := NormalizeLogin(input.Login)
	if login == "" {
		return nil, fmt.Errorf("login is required")
	}

	existing, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to check login: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrLoginTaken
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:                     uuid.New(),
		Login:                  login,
		Name:                   strings.TrimSpace(input.Name),
		Phone:                  strings.TrimSpace(input.Phone),
		Role:                   input.Role,
		Status:                 input.Status,
		PasswordHash:           hash,
		PasswordChangeRequired: true,
		CreatedAt:              time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, input ports.UpdateUserInput) (*domain.User, error) {
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}
	if !domain.ValidUserStatus(input.Status) {
		return nil, domain.ErrInvalidUserStatus
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Phone = strings.TrimSpace(input.Phone)
	user.Role = input.Role
	user.Status = input.Status

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
