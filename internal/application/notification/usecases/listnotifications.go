package usecases

import (
	"context"

	"issueflow/internal/application/notification/dto"
	"issueflow/internal/domain/notification"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type ListNotificationsQuery struct {
	UserID string
	Limit  int
}

type ListNotificationsUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.Repository, logger logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{
		repo:   repo,
		logger: logger,
	}
}

// NormalizeLimit applies the list defaults: non-positive becomes 50 and the
// ceiling is 100.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, query ListNotificationsQuery) (*dto.ListResult, error) {
	limit := NormalizeLimit(query.Limit)
	uc.logger.Infow("executing list notifications use case", "user_id", query.UserID, "limit", limit)

	items, err := uc.repo.ListByUser(ctx, query.UserID, limit)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", query.UserID, "error", err)
		return nil, errors.NewInternalError("Failed to get notifications")
	}

	unread := 0
	for _, n := range items {
		if !n.IsRead() {
			unread++
		}
	}

	return &dto.ListResult{
		Notifications: dto.ToNotificationDTOs(items),
		UnreadCount:   unread,
	}, nil
}
