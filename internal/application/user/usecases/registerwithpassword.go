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

type RegisterWithPasswordCommand struct {
	Email       string
	Password    string
	DisplayName string
}

type RegisterWithPasswordUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	sessions       *helpers.SessionIssuer
	logger         logger.Interface
}

func NewRegisterWithPasswordUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	sessions *helpers.SessionIssuer,
	logger logger.Interface,
) *RegisterWithPasswordUseCase {
	return &RegisterWithPasswordUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		sessions:       sessions,
		logger:         logger,
	}
}

// Execute creates the account and signs the new user in immediately.
func (uc *RegisterWithPasswordUseCase) Execute(ctx context.Context, cmd RegisterWithPasswordCommand) (*dto.AuthResult, error) {
	email := utils.NormalizeEmail(cmd.Email)
	uc.logger.Infow("executing register use case", "email", utils.MaskEmail(email))

	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError(msgCredentialsRequired)
	}
	if !utils.IsValidEmail(email) {
		return nil, errors.NewValidationError(msgInvalidEmail)
	}
	if len(cmd.Password) < user.MinPasswordLength {
		return nil, errors.NewValidationError(msgPasswordTooShort)
	}
	if len(cmd.Password) > user.MaxPasswordLength {
		return nil, errors.NewValidationError(msgPasswordTooLong)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, errors.NewInternalError("Registration failed")
	}
	if exists {
		return nil, errors.NewEmailTakenError()
	}

	newUser, err := user.NewUser(email, cmd.Password, cmd.DisplayName, uc.passwordHasher)
	if err != nil {
		return nil, toAppError(err)
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewEmailTakenError()
		}
		uc.logger.Errorw("failed to create user in database", "error", err)
		return nil, errors.NewInternalError("Registration failed")
	}

	session, err := uc.sessions.Issue(ctx, newUser)
	if err != nil {
		uc.logger.Errorw("failed to issue session", "user_id", newUser.ID(), "error", err)
		return nil, errors.NewInternalError("Registration failed")
	}

	uc.logger.Infow("user registered successfully", "user_id", newUser.ID())
	return &dto.AuthResult{User: dto.ToUserDTO(newUser), Session: session}, nil
}
