package handlers

import (
	"context"

	userdto "issueflow/internal/application/user/dto"
	"issueflow/internal/application/user/usecases"
)

// Service interface for AuthHandler - enables unit testing with mocks.

type authService interface {
	Register(ctx context.Context, cmd usecases.RegisterWithPasswordCommand) (*userdto.AuthResult, error)
	Login(ctx context.Context, cmd usecases.LoginWithPasswordCommand) (*userdto.AuthResult, error)
	GetUser(ctx context.Context, userID string) (*userdto.UserDTO, error)
	Logout(ctx context.Context, sessionID string) error
	ChangePassword(ctx context.Context, cmd usecases.ChangePasswordCommand) error
	UpdateProfile(ctx context.Context, cmd usecases.UpdateProfileCommand) (*userdto.UserDTO, error)
}
