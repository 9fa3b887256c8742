package user

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("  Alice@Example.COM ", "secret1", " Alice ", plainHasher{})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID())
	assert.Equal(t, "alice@example.com", u.Email())
	assert.Equal(t, "Alice", u.DisplayName())
	assert.Equal(t, "hashed:secret1", u.PasswordHash())
	assert.Equal(t, DefaultNotificationPreferences(), u.Preferences())
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("", "secret1", "", plainHasher{})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = NewUser("a@b.co", "12345", "", plainHasher{})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = NewUser("a@b.co", strings.Repeat("p", MaxPasswordLength), "", plainHasher{})
	assert.NoError(t, err)

	_, err = NewUser("a@b.co", strings.Repeat("p", MaxPasswordLength+1), "", plainHasher{})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestUser_VerifyPassword(t *testing.T) {
	u, err := NewUser("a@b.co", "secret1", "", plainHasher{})
	require.NoError(t, err)

	assert.NoError(t, u.VerifyPassword("secret1", plainHasher{}))
	assert.ErrorIs(t, u.VerifyPassword("wrong", plainHasher{}), ErrPasswordMismatch)

	require.NoError(t, u.SetPassword("another", plainHasher{}))
	assert.NoError(t, u.VerifyPassword("another", plainHasher{}))
}

func TestUser_UpdateProfile(t *testing.T) {
	u, err := NewUser("a@b.co", "secret1", "", plainHasher{})
	require.NoError(t, err)

	tooLong := strings.Repeat("x", MaxDisplayNameLength+1)
	assert.ErrorIs(t, u.UpdateProfile(&tooLong, nil), ErrDisplayNameTooLong)

	name := "  Bob "
	require.NoError(t, u.UpdateProfile(&name, map[string]any{
		"email_on_assign": false,
		"email_digest":    "yes",
		"unknown":         true,
	}))
	assert.Equal(t, "Bob", u.DisplayName())
	assert.False(t, u.Preferences().EmailOnAssign)
	assert.True(t, u.Preferences().EmailOnComment)
	assert.True(t, u.Preferences().EmailDigest)
}

func TestNotificationPreferences_AllowsEmailFor(t *testing.T) {
	p := NotificationPreferences{EmailOnAssign: true}
	assert.True(t, p.AllowsEmailFor("assigned"))
	assert.False(t, p.AllowsEmailFor("comment"))
	assert.False(t, p.AllowsEmailFor("other"))
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{true, true},
		{float64(0), false},
		{float64(2), true},
		{"", false},
		{"false", false},
		{"0", false},
		{"on", true},
		{map[string]any{}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truthy(tt.in), "%v", tt.in)
	}
}

func TestSession(t *testing.T) {
	_, err := NewSession("", time.Hour)
	assert.ErrorIs(t, err, ErrSessionUserRequired)

	_, err = NewSession("u1", 0)
	assert.ErrorIs(t, err, ErrSessionExpiryInvalid)

	s, err := NewSession("u1", time.Hour)
	require.NoError(t, err)
	assert.False(t, s.IsExpired())

	s.ExpiresAt = time.Now().Add(-time.Minute)
	assert.True(t, s.IsExpired())
}
