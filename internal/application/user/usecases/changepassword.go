package usecases

import (
	"context"

	"issueflow/internal/domain/user"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

const msgPasswordChangesDisabled = "Password changes are disabled. Set auth.password.enabled=true (ISSUEFLOW_AUTH_PASSWORD_ENABLED) to enable this endpoint."

type ChangePasswordCommand struct {
	UserID          string
	SessionID       string
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordUseCase struct {
	userRepo       user.Repository
	sessionRepo    user.SessionRepository
	passwordHasher user.PasswordHasher
	enabled        bool
	logger         logger.Interface
}

func NewChangePasswordUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	hasher user.PasswordHasher,
	enabled bool,
	logger logger.Interface,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		passwordHasher: hasher,
		enabled:        enabled,
		logger:         logger,
	}
}

// Execute changes the password and signs out every other session of the user.
func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	uc.logger.Infow("executing change password use case", "user_id", cmd.UserID)

	if !uc.enabled {
		return errors.NewUnavailableError(msgPasswordChangesDisabled)
	}
	if cmd.CurrentPassword == "" || cmd.NewPassword == "" {
		return errors.NewValidationError("Current password and new password are required")
	}
	if len(cmd.NewPassword) < user.MinPasswordLength {
		return errors.NewValidationError(msgPasswordTooShort)
	}
	if len(cmd.NewPassword) > user.MaxPasswordLength {
		return errors.NewValidationError(msgPasswordTooLong)
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return errors.NewInternalError("Failed to update password")
	}
	if u == nil {
		return errors.NewNotFoundError(msgUserNotFound)
	}

	if err := u.VerifyPassword(cmd.CurrentPassword, uc.passwordHasher); err != nil {
		return errors.NewValidationError("Current password is incorrect")
	}
	if err := u.SetPassword(cmd.NewPassword, uc.passwordHasher); err != nil {
		return toAppError(err)
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save password", "user_id", cmd.UserID, "error", err)
		return errors.NewInternalError("Failed to update password")
	}

	if err := uc.sessionRepo.DeleteByUserExcept(ctx, cmd.UserID, cmd.SessionID); err != nil {
		uc.logger.Warnw("failed to revoke other sessions", "user_id", cmd.UserID, "error", err)
	}

	uc.logger.Infow("password updated successfully", "user_id", cmd.UserID)
	return nil
}
