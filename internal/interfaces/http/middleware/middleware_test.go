package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issueflow/internal/domain/user"
	"issueflow/internal/infrastructure/auth"
	"issueflow/internal/infrastructure/ratelimit"
	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSessions struct {
	sessions map[string]*user.Session
	err      error
}

func (f *fakeSessions) GetByID(_ context.Context, id string) (*user.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[id], nil
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, ratelimit.Window) (bool, error) {
	return false, assert.AnError
}

func (failingLimiter) Reset(context.Context, string) error { return nil }

func protectedRouter(mw *AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/me", mw.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetString(constants.ContextKeyUserID),
			"session_id": c.GetString(constants.ContextKeySessionID),
			"email":      c.GetString(constants.ContextKeyUserEmail),
		})
	})
	return r
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", 60)
	live := &user.Session{ID: "s-live", UserID: "u-1", ExpiresAt: time.Now().Add(time.Hour)}
	stale := &user.Session{ID: "s-stale", UserID: "u-1", ExpiresAt: time.Now().Add(-time.Minute)}
	sessions := &fakeSessions{sessions: map[string]*user.Session{live.ID: live, stale.ID: stale}}

	sign := func(sessionID string, exp time.Time) string {
		tok, err := jwtSvc.Generate("u-1", sessionID, "bob1@x.com", exp)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired token", "Bearer " + sign(live.ID, time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"revoked session", "Bearer " + sign("s-gone", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired session", "Bearer " + sign(stale.ID, time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"valid", "Bearer " + sign(live.ID, time.Now().Add(time.Hour)), http.StatusOK},
	}

	r := protectedRouter(NewAuthMiddleware(jwtSvc, sessions, logger.Discard()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"user_id":"u-1","session_id":"s-live","email":"bob1@x.com"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestAuthMiddleware_SessionStoreFailureIs500(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", 60)
	tok, err := jwtSvc.Generate("u-1", "s-1", "bob1@x.com", time.Now().Add(time.Hour))
	require.NoError(t, err)

	r := protectedRouter(NewAuthMiddleware(jwtSvc, &fakeSessions{err: assert.AnError}, logger.Discard()))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestErrorHandler_WritesPendingError(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/err", func(c *gin.Context) { _ = c.Error(assert.AnError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestRegisterRateLimiter(t *testing.T) {
	newRouter := func(l ratelimit.RateLimiter, window ratelimit.Window) *gin.Engine {
		r := gin.New()
		r.POST("/register", NewRegisterRateLimiter(l, window, logger.Discard()).Limit(), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})
		return r
	}
	hit := func(r *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/register", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("blocks after limit", func(t *testing.T) {
		r := newRouter(ratelimit.NewMemoryRateLimiter(), ratelimit.Window{Limit: 2, Window: time.Hour})
		assert.Equal(t, http.StatusCreated, hit(r).Code)
		assert.Equal(t, http.StatusCreated, hit(r).Code)

		w := hit(r)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"error":"Too many registration attempts. Please try again later."}`, w.Body.String())
	})

	t.Run("disabled window never blocks", func(t *testing.T) {
		r := newRouter(ratelimit.NewMemoryRateLimiter(), ratelimit.Window{})
		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusCreated, hit(r).Code)
		}
	})

	t.Run("fails open", func(t *testing.T) {
		r := newRouter(failingLimiter{}, ratelimit.Window{Limit: 1, Window: time.Hour})
		assert.Equal(t, http.StatusCreated, hit(r).Code)
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}), SecurityHeaders())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("unknown origin omitted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://evil.test")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
