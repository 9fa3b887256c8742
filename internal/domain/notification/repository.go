package notification

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	// ListByUser returns the newest notifications first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// ListUnreadSince returns unread notifications created at or after since, newest first.
	ListUnreadSince(ctx context.Context, userID string, since time.Time, limit int) ([]*Notification, error)
	// MarkRead is scoped by recipient; an id owned by someone else is a no-op.
	MarkRead(ctx context.Context, notificationID, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}
