package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/eventos/internal/core/domain"
)

type AuthRepository interface {
	StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id uuid.UUID) error
}

type AuthService interface {
	// Login returns access_token, refresh_token and the authenticated user.
	Login(ctx context.Context, login, password string) (string, string, *domain.User, error)
	// RefreshAccessToken returns a new access_token and the (possibly rotated) refresh_token.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, newPassword string) error
}
