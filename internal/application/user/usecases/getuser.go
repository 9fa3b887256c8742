package usecases

import (
	"context"

	"issueflow/internal/application/user/dto"
	"issueflow/internal/domain/user"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, userID string) (*dto.UserDTO, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("Failed to get user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError(msgUserNotFound)
	}
	return dto.ToUserDTO(u), nil
}
