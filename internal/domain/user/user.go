package user

import (
	"fmt"
	"strings"
	"time"

	"issueflow/internal/shared/biztime"
	"issueflow/internal/shared/id"
)

const (
	MinPasswordLength    = 6
	MaxPasswordLength    = 72 // bcrypt input limit, in bytes
	MaxDisplayNameLength = 100
)

// User is an account in the local identity provider.
type User struct {
	id           string
	email        string
	displayName  string
	passwordHash string
	preferences  NotificationPreferences
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an account. The email must already be normalized; the
// password is hashed with hasher.
func NewUser(email, password, displayName string, hasher PasswordHasher) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	displayName = strings.TrimSpace(displayName)
	if len([]rune(displayName)) > MaxDisplayNameLength {
		return nil, ErrDisplayNameTooLong
	}

	now := biztime.NowUTC()
	u := &User{
		id:          id.New(),
		email:       email,
		displayName: displayName,
		preferences: DefaultNotificationPreferences(),
		createdAt:   now,
		updatedAt:   now,
	}
	if err := u.SetPassword(password, hasher); err != nil {
		return nil, err
	}
	return u, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(userID, email, displayName, passwordHash string, prefs NotificationPreferences, createdAt, updatedAt time.Time) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	return &User{
		id:           userID,
		email:        email,
		displayName:  displayName,
		passwordHash: passwordHash,
		preferences:  prefs,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) DisplayName() string {
	return u.displayName
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Preferences() NotificationPreferences {
	return u.preferences
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// UpdateProfile applies whichever of displayName and preferences is non-nil.
func (u *User) UpdateProfile(displayName *string, preferences map[string]any) error {
	if displayName != nil {
		name := strings.TrimSpace(*displayName)
		if len([]rune(name)) > MaxDisplayNameLength {
			return ErrDisplayNameTooLong
		}
		u.displayName = name
	}
	if preferences != nil {
		u.preferences = u.preferences.Merge(preferences)
	}
	u.updatedAt = biztime.NowUTC()
	return nil
}
