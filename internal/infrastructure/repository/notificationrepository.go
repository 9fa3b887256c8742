package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"issueflow/internal/domain/notification"
	"issueflow/internal/infrastructure/persistence/mappers"
	"issueflow/internal/infrastructure/persistence/models"
	"issueflow/internal/shared/db"
)

type NotificationRepository struct {
	db     *gorm.DB
	mapper mappers.NotificationMapper
}

func NewNotificationRepository(gormDB *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db:     gormDB,
		mapper: mappers.NewNotificationMapper(),
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.ToModel(n)).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*notification.Notification, error) {
	var ms []models.NotificationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return r.mapper.ToDomainList(ms)
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) ListUnreadSince(ctx context.Context, userID string, since time.Time, limit int) ([]*notification.Notification, error) {
	var ms []models.NotificationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND is_read = ? AND created_at >= ?", userID, false, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unread notifications: %w", err)
	}
	return r.mapper.ToDomainList(ms)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.NotificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return nil
}

var _ notification.Repository = (*NotificationRepository)(nil)
