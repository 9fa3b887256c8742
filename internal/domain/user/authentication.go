package user

import (
	"fmt"

	"issueflow/internal/shared/biztime"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

func (u *User) SetPassword(password string, hasher PasswordHasher) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u.passwordHash = hash
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) VerifyPassword(plainPassword string, hasher PasswordHasher) error {
	if u.passwordHash == "" {
		return ErrNoPasswordSet
	}
	if err := hasher.Verify(plainPassword, u.passwordHash); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
