package helpers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"issueflow/internal/application/testutil"
	"issueflow/internal/domain/user"
)

// MockTokenGenerator is a mock implementation of TokenGenerator
type MockTokenGenerator struct {
	mock.Mock
}

func (m *MockTokenGenerator) Generate(userID, sessionID, email string, expiresAt time.Time) (string, error) {
	args := m.Called(userID, sessionID, email, expiresAt)
	return args.String(0), args.Error(1)
}

func (m *MockTokenGenerator) AccessTTL() time.Duration {
	return time.Hour
}

func newTestUser(t *testing.T) *user.User {
	t.Helper()
	now := time.Now()
	u, err := user.ReconstructUser("user-1", "a@example.com", "Ada", "hash", user.DefaultNotificationPreferences(), now, now)
	require.NoError(t, err)
	return u
}

func TestSessionIssuer_Issue(t *testing.T) {
	sessions := testutil.NewSessionRepository()
	tokens := new(MockTokenGenerator)
	tokens.On("Generate", "user-1", mock.AnythingOfType("string"), "a@example.com", mock.AnythingOfType("time.Time")).
		Return("signed-token", nil)

	issuer := NewSessionIssuer(sessions, tokens)
	session, err := issuer.Issue(context.Background(), newTestUser(t))
	require.NoError(t, err)

	assert.Equal(t, "signed-token", session.AccessToken)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.InDelta(t, 3600, session.ExpiresIn, 5)
	assert.Equal(t, 1, sessions.Len())
	tokens.AssertExpectations(t)
}

func TestSessionIssuer_TokenFailureRemovesSession(t *testing.T) {
	sessions := testutil.NewSessionRepository()
	tokens := new(MockTokenGenerator)
	tokens.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("signing failed"))

	issuer := NewSessionIssuer(sessions, tokens)
	_, err := issuer.Issue(context.Background(), newTestUser(t))
	require.Error(t, err)
	assert.Zero(t, sessions.Len())
}
