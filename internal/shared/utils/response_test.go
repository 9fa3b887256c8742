package utils

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreatedResponse(t *testing.T) {
	c, w := newContext()
	CreatedResponse(c, "Project created successfully", "project", map[string]string{"id": "p1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Project created successfully", body["message"])
	assert.Equal(t, map[string]any{"id": "p1"}, body["project"])
}

func TestOKResponse_OmitsMessage(t *testing.T) {
	c, w := newContext()
	OKResponse(c, "projects", []string{})

	body := decode(t, w)
	assert.NotContains(t, body, "message")
	assert.Equal(t, []any{}, body["projects"])
}

func TestErrorResponseWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"forbidden", errors.NewForbiddenError("Access denied to this project"), 403, "Access denied to this project"},
		{"rate limited", errors.NewRateLimitError("slow down"), 429, "slow down"},
		{"wrapped auth error", errors.NewEmailTakenError(), 409, "This email is already registered. Please login instead."},
		{"unavailable", errors.NewUnavailableError("configure it"), 503, "configure it"},
		{"plain error sanitized", stderrors.New("dial tcp 10.0.0.1:3306: refused"), 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()
			ErrorResponseWithError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, map[string]any{"error": tt.wantMsg}, decode(t, w))
		})
	}
}

func TestErrorResponseWithError_LogsSecurityEvents(t *testing.T) {
	var buf bytes.Buffer
	logger.Logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { logger.Logger = nil })

	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"forged token", errors.NewTokenInvalidError("access token"), "WARN"},
		{"wrong password", errors.NewInvalidCredentialsError(), "DEBUG"},
		{"expired session", errors.NewSessionExpiredError(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			c, w := newContext()

			ErrorResponseWithError(c, tt.err)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}
			var record map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
			assert.Equal(t, "security event", record["msg"])
			assert.Equal(t, tt.wantLevel, record["level"])
		})
	}
}
