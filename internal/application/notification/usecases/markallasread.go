package usecases

import (
	"context"

	"issueflow/internal/domain/notification"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type MarkAllAsReadUseCase struct {
	repo   notification.Repository
	cache  UnreadCountCache
	logger logger.Interface
}

func NewMarkAllAsReadUseCase(
	repo notification.Repository,
	cache UnreadCountCache,
	logger logger.Interface,
) *MarkAllAsReadUseCase {
	return &MarkAllAsReadUseCase{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (uc *MarkAllAsReadUseCase) Execute(ctx context.Context, userID string) error {
	uc.logger.Infow("executing mark all notifications as read use case", "user_id", userID)

	if err := uc.repo.MarkAllRead(ctx, userID); err != nil {
		uc.logger.Errorw("failed to mark all notifications as read", "user_id", userID, "error", err)
		return errors.NewInternalError("Failed to mark notifications as read")
	}

	invalidate(ctx, uc.cache, uc.logger, userID)
	uc.logger.Infow("all notifications marked as read", "user_id", userID)
	return nil
}
