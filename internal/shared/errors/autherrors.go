package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
	ErrorTypeSessionExpired     ErrorType = "session_expired"
	ErrorTypeEmailTaken         ErrorType = "email_taken"
)

// AuthError represents authentication-specific errors with security context
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged.
	// Invalid credentials are expected and only logged at debug level.
	ShouldLog bool
	// SecurityEvent marks errors worth tracking for brute force detection
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to reach the AppError
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError does not reveal whether the email or the password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// NewEmailTakenError creates an error for a duplicate registration
func NewEmailTakenError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeEmailTaken,
			Message: "This email is already registered. Please login instead.",
			Code:    http.StatusConflict,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewTokenExpiredError creates an error for expired tokens
func NewTokenExpiredError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: fmt.Sprintf("%s has expired", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewTokenInvalidError creates an error for invalid tokens
func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: fmt.Sprintf("Invalid %s", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Token is invalid or has been revoked",
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// NewSessionExpiredError creates an error for sessions that were revoked or timed out
func NewSessionExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeSessionExpired,
			Message: "Session has expired",
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// IsAuthError checks if the error is an AuthError (supports wrapped errors via errors.As)
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// GetAuthError extracts AuthError from error chain
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError returns true if the authentication error should be logged
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}

// IsSecurityEvent returns true if the error should be tracked as a security event
func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
