package handlers

import (
	"context"

	"issueflow/internal/application/notification/dto"
)

// Service interface for NotificationHandler - enables unit testing with mocks.

type notificationService interface {
	ListNotifications(ctx context.Context, userID string, limit int) (*dto.ListResult, error)
	GetUnreadCount(ctx context.Context, userID string) (*dto.UnreadCountDTO, error)
	MarkNotificationAsRead(ctx context.Context, notificationID, userID string) error
	MarkAllNotificationsAsRead(ctx context.Context, userID string) error
}
