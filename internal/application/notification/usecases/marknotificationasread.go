package usecases

import (
	"context"

	"issueflow/internal/domain/notification"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type MarkNotificationAsReadUseCase struct {
	repo   notification.Repository
	cache  UnreadCountCache
	logger logger.Interface
}

func NewMarkNotificationAsReadUseCase(
	repo notification.Repository,
	cache UnreadCountCache,
	logger logger.Interface,
) *MarkNotificationAsReadUseCase {
	return &MarkNotificationAsReadUseCase{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Execute marks one of the user's notifications read. Ids belonging to someone
// else, or to nothing, match no rows and succeed silently.
func (uc *MarkNotificationAsReadUseCase) Execute(ctx context.Context, notificationID, userID string) error {
	uc.logger.Infow("executing mark notification as read use case", "id", notificationID, "user_id", userID)

	if err := uc.repo.MarkRead(ctx, notificationID, userID); err != nil {
		uc.logger.Errorw("failed to mark notification as read", "id", notificationID, "error", err)
		return errors.NewInternalError("Failed to mark notification as read")
	}

	invalidate(ctx, uc.cache, uc.logger, userID)
	return nil
}

func invalidate(ctx context.Context, cache UnreadCountCache, log logger.Interface, userID string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, userID); err != nil {
		log.Warnw("failed to invalidate unread count", "user_id", userID, "error", err)
	}
}
