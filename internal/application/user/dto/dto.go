package dto

import (
	"time"

	"issueflow/internal/domain/user"
)

type UserDTO struct {
	ID                      string                       `json:"id"`
	Email                   string                       `json:"email"`
	DisplayName             string                       `json:"display_name"`
	NotificationPreferences user.NotificationPreferences `json:"notification_preferences"`
	CreatedAt               time.Time                    `json:"created_at"`
}

// SessionDTO is what clients store and send back as a bearer token.
type SessionDTO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type AuthResult struct {
	User    *UserDTO    `json:"user"`
	Session *SessionDTO `json:"session"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:                      u.ID(),
		Email:                   u.Email(),
		DisplayName:             u.DisplayName(),
		NotificationPreferences: u.Preferences(),
		CreatedAt:               u.CreatedAt(),
	}
}
