package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"issueflow/internal/infrastructure/config"
	"issueflow/internal/infrastructure/migration"
	sharedConfig "issueflow/internal/shared/config"
	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gormDB.AutoMigrate(migration.AutoMigrateModels()...))

	cfg := &config.Config{
		Env: constants.EnvTest,
		Server: sharedConfig.ServerConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Auth: sharedConfig.AuthConfig{
			Password: sharedConfig.PasswordConfig{BcryptCost: 4, Enabled: true},
			JWT:      sharedConfig.JWTConfig{Secret: "test-secret", AccessExpMinutes: 60},
		},
		RateLimit: sharedConfig.RateLimitConfig{RegisterLimit: 2, RegisterWindow: time.Hour},
	}

	r, err := NewRouter(gormDB, cfg, logger.Discard())
	require.NoError(t, err)
	r.SetupRoutes()
	t.Cleanup(r.Shutdown)
	return r
}

func doJSON(t *testing.T, r *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.GetEngine().ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndNoRoute(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Server is running"}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, w.Body.String())
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/api/auth/me", "/api/projects", "/api/tickets?project_id=x", "/api/notifications"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"email": "bob1@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var auth struct {
		Session struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	require.NotEmpty(t, auth.Session.AccessToken)
	assert.Equal(t, "Bearer", auth.Session.TokenType)
	token := auth.Session.AccessToken

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"email": "bob1@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "bob1@x.com", "password": "wrong!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/projects", token, gin.H{"title": "Alpha"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Project struct {
			ID         string `json:"id"`
			ProjectKey string `json:"project_key"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "ALP", created.Project.ProjectKey)
	projectID := created.Project.ID

	w = doJSON(t, r, http.MethodPost, "/api/tickets", token, gin.H{"project_id": projectID, "title": "First"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/tickets?project_id="+projectID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var listed struct {
		Tickets []struct {
			TicketNumber int    `json:"ticket_number"`
			Title        string `json:"title"`
		} `json:"tickets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Tickets, 1)
	assert.Equal(t, 1, listed.Tickets[0].TicketNumber)

	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RegisterIsRateLimited(t *testing.T) {
	r := newTestRouter(t)

	for i, email := range []string{"a1@x.com", "a2@x.com"} {
		w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": "secret1"})
		require.Equal(t, http.StatusCreated, w.Code, "attempt %d", i)
	}

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"email": "a3@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many registration attempts. Please try again later."}`, w.Body.String())
}
