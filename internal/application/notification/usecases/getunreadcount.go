package usecases

import (
	"context"

	"issueflow/internal/application/notification/dto"
	"issueflow/internal/domain/notification"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type GetUnreadCountUseCase struct {
	repo   notification.Repository
	cache  UnreadCountCache
	logger logger.Interface
}

func NewGetUnreadCountUseCase(
	repo notification.Repository,
	cache UnreadCountCache,
	logger logger.Interface,
) *GetUnreadCountUseCase {
	return &GetUnreadCountUseCase{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (uc *GetUnreadCountUseCase) Execute(ctx context.Context, userID string) (*dto.UnreadCountDTO, error) {
	uc.logger.Infow("executing get unread count use case", "user_id", userID)

	if uc.cache != nil {
		count, ok, err := uc.cache.Get(ctx, userID)
		if err != nil {
			uc.logger.Warnw("unread count cache unavailable", "user_id", userID, "error", err)
		} else if ok {
			return &dto.UnreadCountDTO{UnreadCount: count}, nil
		}
	}

	count, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get unread count", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("Failed to get unread count")
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, userID, count); err != nil {
			uc.logger.Warnw("failed to cache unread count", "user_id", userID, "error", err)
		}
	}

	return &dto.UnreadCountDTO{UnreadCount: count}, nil
}
