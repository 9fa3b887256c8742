package usecases

import (
	"context"

	"issueflow/internal/application/user/dto"
	"issueflow/internal/domain/user"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

// UpdateProfileCommand carries the raw decoded notification_preferences so the
// use case can tell an object from any other JSON value.
type UpdateProfileCommand struct {
	UserID         string
	DisplayName    *string
	Preferences    any
	HasPreferences bool
}

type UpdateProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.Repository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing update profile use case", "user_id", cmd.UserID)

	if cmd.DisplayName == nil && !cmd.HasPreferences {
		return nil, errors.NewValidationError("Nothing to update. Send display_name and/or notification_preferences.")
	}

	var prefs map[string]any
	if cmd.HasPreferences {
		obj, ok := cmd.Preferences.(map[string]any)
		if !ok {
			return nil, errors.NewValidationError("notification_preferences must be an object")
		}
		prefs = obj
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("Failed to update profile")
	}
	if u == nil {
		return nil, errors.NewNotFoundError(msgUserNotFound)
	}

	if err := u.UpdateProfile(cmd.DisplayName, prefs); err != nil {
		return nil, toAppError(err)
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save profile", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("Failed to update profile")
	}

	uc.logger.Infow("profile updated successfully", "user_id", cmd.UserID)
	return dto.ToUserDTO(u), nil
}
