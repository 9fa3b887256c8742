package user

import "errors"

var (
	ErrEmailRequired        = errors.New("email is required")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong      = errors.New("password must be at most 72 bytes")
	ErrDisplayNameTooLong   = errors.New("display name must be 100 characters or less")
	ErrNoPasswordSet        = errors.New("user has no password set")
	ErrPasswordMismatch     = errors.New("invalid password")
	ErrSessionUserRequired  = errors.New("user ID is required")
	ErrSessionExpiryInvalid = errors.New("session expiry must be in the future")
)
