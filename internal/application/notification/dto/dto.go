package dto

import (
	"time"

	"issueflow/internal/domain/notification"
	"issueflow/internal/shared/mapper"
)

type NotificationDTO struct {
	ID        string                `json:"id"`
	UserID    string                `json:"user_id"`
	Type      string                `json:"type"`
	Title     string                `json:"title"`
	Read      bool                  `json:"read"`
	Metadata  notification.Metadata `json:"metadata"`
	CreatedAt time.Time             `json:"created_at"`
}

// ListResult is a page of notifications. UnreadCount covers the page only.
type ListResult struct {
	Notifications []*NotificationDTO `json:"notifications"`
	UnreadCount   int                `json:"unread_count"`
}

type UnreadCountDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

func ToNotificationDTO(n *notification.Notification) *NotificationDTO {
	if n == nil {
		return nil
	}
	return &NotificationDTO{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      n.Type().String(),
		Title:     n.Title(),
		Read:      n.IsRead(),
		Metadata:  n.Metadata(),
		CreatedAt: n.CreatedAt(),
	}
}

func ToNotificationDTOs(items []*notification.Notification) []*NotificationDTO {
	return mapper.MapSlice(items, ToNotificationDTO)
}
