package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

// ErrorBody is the only error shape the API emits.
type ErrorBody struct {
	Error string `json:"error"`
}

// SuccessResponse writes {message?, <key>: data}. An empty message or key is omitted.
func SuccessResponse(c *gin.Context, statusCode int, message string, key string, data interface{}) {
	body := gin.H{}
	if message != "" {
		body["message"] = message
	}
	if key != "" {
		body[key] = data
	}
	c.JSON(statusCode, body)
}

// OKResponse writes 200 {<key>: data}
func OKResponse(c *gin.Context, key string, data interface{}) {
	SuccessResponse(c, http.StatusOK, "", key, data)
}

// CreatedResponse writes 201 {message, <key>: data}
func CreatedResponse(c *gin.Context, message string, key string, data interface{}) {
	SuccessResponse(c, http.StatusCreated, message, key, data)
}

// MessageResponse writes 200 {message}
func MessageResponse(c *gin.Context, message string) {
	SuccessResponse(c, http.StatusOK, message, "", nil)
}

// JSONResponse writes 200 with a caller-assembled body, for responses with
// more than one top-level field.
func JSONResponse(c *gin.Context, body gin.H) {
	c.JSON(http.StatusOK, body)
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// ErrorResponseWithError maps an AppError to its status and message. Anything
// else is logged and answered with a generic 500 so internals never leak.
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error("request failed",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", err)
		}
		if errors.IsAuthError(err) {
			logAuthFailure(c, err)
		}
		c.JSON(appErr.Code, ErrorBody{Error: appErr.Message})
		return
	}

	logger.Error("unexpected error",
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"error", err)
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: constants.ErrMsgInternalServerError})
}

// logAuthFailure records bad credentials and forged or revoked tokens with the
// client address. Expected failures such as a mistyped password stay at debug.
func logAuthFailure(c *gin.Context, err error) {
	if !errors.IsSecurityEvent(err) {
		return
	}

	fields := []any{
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"type", errors.GetAuthError(err).Type,
	}
	if errors.ShouldLogAuthError(err) {
		logger.Warn("security event", fields...)
		return
	}
	logger.Debug("security event", fields...)
}
