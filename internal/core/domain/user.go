package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin       = "admin"
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

type User struct {
	ID                     uuid.UUID `json:"id"`
	Login                  string    `json:"login"`
	Name                   string    `json:"name"`
	Phone                  string    `json:"phone,omitempty"`
	Role                   string    `json:"role"`
	Status                 string    `json:"status"`
	PasswordHash           string    `json:"-"`
	PasswordChangeRequired bool      `json:"password_change_required"`
	CreatedAt              time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOrganizer, RoleParticipant:
		return true
	}
	return false
}

func ValidUserStatus(status string) bool {
	return status == UserActive || status == UserInactive
}
