package usecases

import (
	"context"

	"issueflow/internal/application/user/dto"
	"issueflow/internal/application/user/helpers"
	"issueflow/internal/domain/user"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/utils"
)

type LoginWithPasswordCommand struct {
	Email    string
	Password string
}

type LoginWithPasswordUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	sessions       *helpers.SessionIssuer
	logger         logger.Interface
}

func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	sessions *helpers.SessionIssuer,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		sessions:       sessions,
		logger:         logger,
	}
}

func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*dto.AuthResult, error) {
	email := utils.NormalizeEmail(cmd.Email)
	uc.logger.Infow("executing login use case", "email", utils.MaskEmail(email))

	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError(msgCredentialsRequired)
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("Login failed")
	}

	// Same error for unknown email and wrong password.
	if existingUser == nil {
		return nil, errors.NewInvalidCredentialsError()
	}
	if err := existingUser.VerifyPassword(cmd.Password, uc.passwordHasher); err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	session, err := uc.sessions.Issue(ctx, existingUser)
	if err != nil {
		uc.logger.Errorw("failed to issue session", "user_id", existingUser.ID(), "error", err)
		return nil, errors.NewInternalError("Login failed")
	}

	uc.logger.Infow("user logged in successfully", "user_id", existingUser.ID())
	return &dto.AuthResult{User: dto.ToUserDTO(existingUser), Session: session}, nil
}
