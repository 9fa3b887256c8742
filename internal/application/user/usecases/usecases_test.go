package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issueflow/internal/application/testutil"
	"issueflow/internal/application/user/helpers"
	"issueflow/internal/domain/user"
	apperrors "issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Generate(userID, sessionID, email string, expiresAt time.Time) (string, error) {
	return fmt.Sprintf("token:%s:%s", userID, sessionID), nil
}

func (fakeTokens) AccessTTL() time.Duration { return time.Hour }

type env struct {
	users    *testutil.UserRepository
	sessions *testutil.SessionRepository
	issuer   *helpers.SessionIssuer
	log      logger.Interface
}

func newEnv() *env {
	e := &env{
		users:    testutil.NewUserRepository(),
		sessions: testutil.NewSessionRepository(),
		log:      logger.Discard(),
	}
	e.issuer = helpers.NewSessionIssuer(e.sessions, fakeTokens{})
	return e
}

func (e *env) register(t *testing.T, email, password string) (userID, sessionID string) {
	t.Helper()
	uc := NewRegisterWithPasswordUseCase(e.users, plainHasher{}, e.issuer, e.log)
	result, err := uc.Execute(context.Background(), RegisterWithPasswordCommand{Email: email, Password: password})
	require.NoError(t, err)
	parts := strings.Split(result.Session.AccessToken, ":")
	return result.User.ID, parts[2]
}

func codeOf(err error) int {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return 0
}

func messageOf(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return ""
}

func TestRegisterWithPassword(t *testing.T) {
	tests := []struct {
		name    string
		cmd     RegisterWithPasswordCommand
		code    int
		message string
	}{
		{"missing email", RegisterWithPasswordCommand{Password: "secret1"}, 400, "Email and password are required"},
		{"missing password", RegisterWithPasswordCommand{Email: "a@example.com"}, 400, "Email and password are required"},
		{"malformed email", RegisterWithPasswordCommand{Email: "not-an-email", Password: "secret1"}, 400, "Please enter a valid email address"},
		{"digit-only local part", RegisterWithPasswordCommand{Email: "12345@example.com", Password: "secret1"}, 400, "Please enter a valid email address"},
		{"short password", RegisterWithPasswordCommand{Email: "a@example.com", Password: "12345"}, 400, "Password must be at least 6 characters"},
		{"password over 72 bytes", RegisterWithPasswordCommand{Email: "a@example.com", Password: strings.Repeat("a", 80)}, 400, "Password must be at most 72 bytes"},
		{"multibyte password over 72 bytes", RegisterWithPasswordCommand{Email: "a@example.com", Password: strings.Repeat("é", 40)}, 400, "Password must be at most 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			uc := NewRegisterWithPasswordUseCase(e.users, plainHasher{}, e.issuer, e.log)
			_, err := uc.Execute(context.Background(), tt.cmd)
			assert.Equal(t, tt.code, codeOf(err))
			assert.Equal(t, tt.message, messageOf(err))
		})
	}
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	register := NewRegisterWithPasswordUseCase(e.users, plainHasher{}, e.issuer, e.log)

	result, err := register.Execute(ctx, RegisterWithPasswordCommand{Email: " Dev@Example.com ", Password: "secret1", DisplayName: "Dev"})
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", result.User.Email)
	assert.Equal(t, "Dev", result.User.DisplayName)
	assert.True(t, result.User.NotificationPreferences.EmailOnAssign)
	assert.Equal(t, "Bearer", result.Session.TokenType)
	assert.Equal(t, 1, e.sessions.Len())

	_, err = register.Execute(ctx, RegisterWithPasswordCommand{Email: "dev@example.com", Password: "other12"})
	assert.Equal(t, 409, codeOf(err))
	assert.Equal(t, "This email is already registered. Please login instead.", messageOf(err))

	login := NewLoginWithPasswordUseCase(e.users, plainHasher{}, e.issuer, e.log)

	_, err = login.Execute(ctx, LoginWithPasswordCommand{Email: "dev@example.com", Password: "wrong00"})
	assert.Equal(t, 401, codeOf(err))
	_, err = login.Execute(ctx, LoginWithPasswordCommand{Email: "nobody@example.com", Password: "secret1"})
	assert.Equal(t, 401, codeOf(err))
	assert.Equal(t, "Invalid email or password", messageOf(err))
	_, err = login.Execute(ctx, LoginWithPasswordCommand{Email: "dev@example.com"})
	assert.Equal(t, 400, codeOf(err))

	loggedIn, err := login.Execute(ctx, LoginWithPasswordCommand{Email: "DEV@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, loggedIn.User.ID)
	assert.Equal(t, 2, e.sessions.Len())
}

func TestGetUserAndLogout(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	userID, sessionID := e.register(t, "dev@example.com", "secret1")

	me, err := NewGetUserUseCase(e.users, e.log).Execute(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", me.Email)

	_, err = NewGetUserUseCase(e.users, e.log).Execute(ctx, "missing")
	assert.Equal(t, 404, codeOf(err))

	require.NoError(t, NewLogoutUseCase(e.sessions, e.log).Execute(ctx, sessionID))
	assert.Zero(t, e.sessions.Len())
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		e := newEnv()
		uc := NewChangePasswordUseCase(e.users, e.sessions, plainHasher{}, false, e.log)
		err := uc.Execute(ctx, ChangePasswordCommand{UserID: "u", CurrentPassword: "a", NewPassword: "b"})
		assert.Equal(t, 503, codeOf(err))
		assert.Contains(t, messageOf(err), "ISSUEFLOW_AUTH_PASSWORD_ENABLED")
	})

	e := newEnv()
	userID, keep := e.register(t, "dev@example.com", "secret1")
	e.register(t, "other@example.com", "secret1")
	login := NewLoginWithPasswordUseCase(e.users, plainHasher{}, e.issuer, e.log)
	_, err := login.Execute(ctx, LoginWithPasswordCommand{Email: "dev@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, 3, e.sessions.Len())

	uc := NewChangePasswordUseCase(e.users, e.sessions, plainHasher{}, true, e.log)

	err = uc.Execute(ctx, ChangePasswordCommand{UserID: userID, SessionID: keep, NewPassword: "newpass"})
	assert.Equal(t, "Current password and new password are required", messageOf(err))

	err = uc.Execute(ctx, ChangePasswordCommand{UserID: userID, SessionID: keep, CurrentPassword: "secret1", NewPassword: "abc"})
	assert.Equal(t, "Password must be at least 6 characters", messageOf(err))

	err = uc.Execute(ctx, ChangePasswordCommand{UserID: userID, SessionID: keep, CurrentPassword: "secret1", NewPassword: strings.Repeat("a", 73)})
	assert.Equal(t, 400, codeOf(err))
	assert.Equal(t, "Password must be at most 72 bytes", messageOf(err))

	err = uc.Execute(ctx, ChangePasswordCommand{UserID: userID, SessionID: keep, CurrentPassword: "nope00", NewPassword: "newpass"})
	assert.Equal(t, 400, codeOf(err))
	assert.Equal(t, "Current password is incorrect", messageOf(err))

	require.NoError(t, uc.Execute(ctx, ChangePasswordCommand{UserID: userID, SessionID: keep, CurrentPassword: "secret1", NewPassword: "newpass"}))
	assert.Equal(t, 2, e.sessions.Len(), "only the current session and other users' sessions remain")

	kept, err := e.sessions.GetByID(ctx, keep)
	require.NoError(t, err)
	assert.NotNil(t, kept)

	_, err = login.Execute(ctx, LoginWithPasswordCommand{Email: "dev@example.com", Password: "newpass"})
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	userID, _ := e.register(t, "dev@example.com", "secret1")
	uc := NewUpdateProfileUseCase(e.users, e.log)

	name := func(s string) *string { return &s }

	tests := []struct {
		name    string
		cmd     UpdateProfileCommand
		message string
	}{
		{"nothing", UpdateProfileCommand{UserID: userID}, "Nothing to update. Send display_name and/or notification_preferences."},
		{"array preferences", UpdateProfileCommand{UserID: userID, HasPreferences: true, Preferences: []any{true}}, "notification_preferences must be an object"},
		{"null preferences", UpdateProfileCommand{UserID: userID, HasPreferences: true}, "notification_preferences must be an object"},
		{"long name", UpdateProfileCommand{UserID: userID, DisplayName: name(strings.Repeat("x", 101))}, "Display name must be 100 characters or less"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.cmd)
			assert.Equal(t, 400, codeOf(err))
			assert.Equal(t, tt.message, messageOf(err))
		})
	}

	updated, err := uc.Execute(ctx, UpdateProfileCommand{
		UserID:         userID,
		DisplayName:    name("  Ada  "),
		HasPreferences: true,
		Preferences:    map[string]any{"email_on_assign": false, "email_digest": "yes", "unknown": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.DisplayName)
	assert.False(t, updated.NotificationPreferences.EmailOnAssign)
	assert.True(t, updated.NotificationPreferences.EmailOnComment)
	assert.True(t, updated.NotificationPreferences.EmailDigest)
}

func TestCleanupExpiredSessions(t *testing.T) {
	ctx := context.Background()
	sessions := testutil.NewSessionRepository()
	expired := &user.Session{ID: "old", UserID: "u", ExpiresAt: time.Now().Add(-time.Hour)}
	live, err := user.NewSession("u", time.Hour)
	require.NoError(t, err)
	require.NoError(t, sessions.Create(ctx, expired))
	require.NoError(t, sessions.Create(ctx, live))

	removed, err := NewCleanupExpiredSessionsUseCase(sessions, logger.Discard()).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, sessions.Len())
}
