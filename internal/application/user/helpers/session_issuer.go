package helpers

import (
	"context"
	"fmt"
	"time"

	"issueflow/internal/application/user/dto"
	"issueflow/internal/domain/user"
	"issueflow/internal/shared/biztime"
)

const bearerTokenType = "Bearer"

// TokenGenerator signs access tokens for a session.
type TokenGenerator interface {
	Generate(userID, sessionID, email string, expiresAt time.Time) (string, error)
	AccessTTL() time.Duration
}

// SessionIssuer creates the session row first and then the token that
// references it, so a token never outlives revocation.
type SessionIssuer struct {
	sessionRepo user.SessionRepository
	tokens      TokenGenerator
}

func NewSessionIssuer(sessionRepo user.SessionRepository, tokens TokenGenerator) *SessionIssuer {
	return &SessionIssuer{
		sessionRepo: sessionRepo,
		tokens:      tokens,
	}
}

func (h *SessionIssuer) Issue(ctx context.Context, u *user.User) (*dto.SessionDTO, error) {
	session, err := user.NewSession(u.ID(), h.tokens.AccessTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := h.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := h.tokens.Generate(u.ID(), session.ID, u.Email(), session.ExpiresAt)
	if err != nil {
		if delErr := h.sessionRepo.Delete(ctx, session.ID); delErr != nil {
			return nil, fmt.Errorf("failed to generate token: %w (cleanup failed: %v)", err, delErr)
		}
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	expiresIn := int64(session.ExpiresAt.Sub(biztime.NowUTC()).Seconds())
	return &dto.SessionDTO{
		AccessToken: token,
		TokenType:   bearerTokenType,
		ExpiresIn:   expiresIn,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}
