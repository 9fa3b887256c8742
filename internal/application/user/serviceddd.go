package user

import (
	"context"

	"issueflow/internal/application/user/dto"
	"issueflow/internal/application/user/helpers"
	"issueflow/internal/application/user/usecases"
	"issueflow/internal/domain/user"
	"issueflow/internal/shared/logger"
)

// ServiceDDD groups the account use cases behind one handle for the handlers.
type ServiceDDD struct {
	logger logger.Interface

	register       *usecases.RegisterWithPasswordUseCase
	login          *usecases.LoginWithPasswordUseCase
	getUser        *usecases.GetUserUseCase
	logout         *usecases.LogoutUseCase
	changePassword *usecases.ChangePasswordUseCase
	updateProfile  *usecases.UpdateProfileUseCase
}

func NewServiceDDD(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	hasher user.PasswordHasher,
	tokens helpers.TokenGenerator,
	passwordChangesEnabled bool,
	logger logger.Interface,
) *ServiceDDD {
	issuer := helpers.NewSessionIssuer(sessionRepo, tokens)

	return &ServiceDDD{
		logger: logger,

		register:       usecases.NewRegisterWithPasswordUseCase(userRepo, hasher, issuer, logger),
		login:          usecases.NewLoginWithPasswordUseCase(userRepo, hasher, issuer, logger),
		getUser:        usecases.NewGetUserUseCase(userRepo, logger),
		logout:         usecases.NewLogoutUseCase(sessionRepo, logger),
		changePassword: usecases.NewChangePasswordUseCase(userRepo, sessionRepo, hasher, passwordChangesEnabled, logger),
		updateProfile:  usecases.NewUpdateProfileUseCase(userRepo, logger),
	}
}

func (s *ServiceDDD) Register(ctx context.Context, cmd usecases.RegisterWithPasswordCommand) (*dto.AuthResult, error) {
	return s.register.Execute(ctx, cmd)
}

func (s *ServiceDDD) Login(ctx context.Context, cmd usecases.LoginWithPasswordCommand) (*dto.AuthResult, error) {
	return s.login.Execute(ctx, cmd)
}

func (s *ServiceDDD) GetUser(ctx context.Context, userID string) (*dto.UserDTO, error) {
	return s.getUser.Execute(ctx, userID)
}

func (s *ServiceDDD) Logout(ctx context.Context, sessionID string) error {
	return s.logout.Execute(ctx, sessionID)
}

func (s *ServiceDDD) ChangePassword(ctx context.Context, cmd usecases.ChangePasswordCommand) error {
	return s.changePassword.Execute(ctx, cmd)
}

func (s *ServiceDDD) UpdateProfile(ctx context.Context, cmd usecases.UpdateProfileCommand) (*dto.UserDTO, error) {
	return s.updateProfile.Execute(ctx, cmd)
}
