package usecases

import (
	stderrors "errors"

	"issueflow/internal/domain/user"
	"issueflow/internal/shared/errors"
)

const (
	msgCredentialsRequired = "Email and password are required"
	msgInvalidEmail        = "Please enter a valid email address"
	msgPasswordTooShort    = "Password must be at least 6 characters"
	msgPasswordTooLong     = "Password must be at most 72 bytes"
	msgDisplayNameTooLong  = "Display name must be 100 characters or less"
	msgUserNotFound        = "User not found"
)

func toAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, user.ErrEmailRequired):
		return errors.NewValidationError(msgCredentialsRequired)
	case stderrors.Is(err, user.ErrPasswordTooShort):
		return errors.NewValidationError(msgPasswordTooShort)
	case stderrors.Is(err, user.ErrPasswordTooLong):
		return errors.NewValidationError(msgPasswordTooLong)
	case stderrors.Is(err, user.ErrDisplayNameTooLong):
		return errors.NewValidationError(msgDisplayNameTooLong)
	default:
		return errors.NewInternalError("Internal server error")
	}
}
