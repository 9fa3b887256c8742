package notification

import (
	"context"

	"issueflow/internal/application/notification/dto"
	"issueflow/internal/application/notification/usecases"
	"issueflow/internal/domain/notification"
	"issueflow/internal/shared/logger"
)

type ServiceDDD struct {
	logger logger.Interface

	listNotifications      *usecases.ListNotificationsUseCase
	getUnreadCount         *usecases.GetUnreadCountUseCase
	markNotificationAsRead *usecases.MarkNotificationAsReadUseCase
	markAllAsRead          *usecases.MarkAllAsReadUseCase
}

func NewServiceDDD(
	notificationRepo notification.Repository,
	cache usecases.UnreadCountCache,
	logger logger.Interface,
) *ServiceDDD {
	return &ServiceDDD{
		logger: logger,

		listNotifications:      usecases.NewListNotificationsUseCase(notificationRepo, logger),
		getUnreadCount:         usecases.NewGetUnreadCountUseCase(notificationRepo, cache, logger),
		markNotificationAsRead: usecases.NewMarkNotificationAsReadUseCase(notificationRepo, cache, logger),
		markAllAsRead:          usecases.NewMarkAllAsReadUseCase(notificationRepo, cache, logger),
	}
}

func (s *ServiceDDD) ListNotifications(ctx context.Context, userID string, limit int) (*dto.ListResult, error) {
	return s.listNotifications.Execute(ctx, usecases.ListNotificationsQuery{UserID: userID, Limit: limit})
}

func (s *ServiceDDD) GetUnreadCount(ctx context.Context, userID string) (*dto.UnreadCountDTO, error) {
	return s.getUnreadCount.Execute(ctx, userID)
}

func (s *ServiceDDD) MarkNotificationAsRead(ctx context.Context, notificationID, userID string) error {
	return s.markNotificationAsRead.Execute(ctx, notificationID, userID)
}

func (s *ServiceDDD) MarkAllNotificationsAsRead(ctx context.Context, userID string) error {
	return s.markAllAsRead.Execute(ctx, userID)
}
