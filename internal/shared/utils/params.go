package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

// RequireQuery returns a trimmed query parameter or a validation error with message.
func RequireQuery(c *gin.Context, name, message string) (string, error) {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		return "", errors.NewValidationError(message)
	}
	return value, nil
}

// QueryInt parses an integer query parameter, returning def when it is absent
// or not a number.
func QueryInt(c *gin.Context, name string, def int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// RequireParam returns a trimmed path parameter or a validation error with message.
func RequireParam(c *gin.Context, name, message string) (string, error) {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		return "", errors.NewValidationError(message)
	}
	return value, nil
}

// CurrentUserID returns the id the auth middleware stored on the context.
func CurrentUserID(c *gin.Context) (string, error) {
	raw, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", errors.NewUnauthorizedError("User not authenticated")
	}
	userID, ok := raw.(string)
	if !ok || userID == "" {
		logger.Warn("invalid user_id type in context", "user_id", raw, "ip", c.ClientIP())
		return "", errors.NewUnauthorizedError("User not authenticated")
	}
	return userID, nil
}

// CurrentSessionID returns the session id of the authenticated request, if any.
func CurrentSessionID(c *gin.Context) string {
	return c.GetString(constants.ContextKeySessionID)
}
