package user

import (
	"time"

	"issueflow/internal/shared/biztime"
	"issueflow/internal/shared/id"
)

// Session backs an issued access token. Deleting the row revokes the token.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func NewSession(userID string, ttl time.Duration) (*Session, error) {
	if userID == "" {
		return nil, ErrSessionUserRequired
	}
	if ttl <= 0 {
		return nil, ErrSessionExpiryInvalid
	}

	now := biztime.NowUTC()
	return &Session{
		ID:        id.New(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

func (s *Session) IsExpired() bool {
	return biztime.NowUTC().After(s.ExpiresAt)
}
