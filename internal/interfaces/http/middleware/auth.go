package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"issueflow/internal/domain/user"
	"issueflow/internal/infrastructure/auth"
	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/utils"
)

// sessionLookup is the part of user.SessionRepository the middleware needs.
type sessionLookup interface {
	GetByID(ctx context.Context, sessionID string) (*user.Session, error)
}

type AuthMiddleware struct {
	jwtService *auth.JWTService
	sessions   sessionLookup
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, sessions sessionLookup, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
		logger:     logger,
	}
}

// RequireAuth accepts `Authorization: Bearer <token>` whose session row still
// exists and has not expired.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			m.abort(c, err)
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			if auth.IsExpired(err) {
				m.abort(c, errors.NewTokenExpiredError("Access token"))
				return
			}
			m.logger.Warnw("failed to verify token", "error", err, "ip", c.ClientIP())
			m.abort(c, errors.NewTokenInvalidError("access token"))
			return
		}

		session, err := m.sessions.GetByID(c.Request.Context(), claims.SessionID)
		if err != nil {
			m.logger.Errorw("failed to load session", "session_id", claims.SessionID, "error", err)
			m.abort(c, errors.NewInternalError("Failed to verify session"))
			return
		}
		if session == nil || session.UserID != claims.UserID || session.IsExpired() {
			m.abort(c, errors.NewSessionExpiredError())
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeySessionID, claims.SessionID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)

		c.Next()
	}
}

func (m *AuthMiddleware) abort(c *gin.Context, err error) {
	utils.ErrorResponseWithError(c, err)
	c.Abort()
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", errors.NewUnauthorizedError("Missing authorization token")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.NewUnauthorizedError("Invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}
