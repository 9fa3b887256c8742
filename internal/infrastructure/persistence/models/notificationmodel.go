package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationModel maps the read flag to is_read; READ is reserved in MySQL.
type NotificationModel struct {
	ID        string         `gorm:"primaryKey;size:36"`
	UserID    string         `gorm:"size:36;not null;index:idx_notifications_user_read,priority:1"`
	Type      string         `gorm:"size:20;not null"`
	Title     string         `gorm:"size:500;not null"`
	IsRead    bool           `gorm:"column:is_read;not null;default:false;index:idx_notifications_user_read,priority:2"`
	Metadata  datatypes.JSON `gorm:"type:json"`
	CreatedAt time.Time      `gorm:"not null;index"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
