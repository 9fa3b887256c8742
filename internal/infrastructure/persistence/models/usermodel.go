package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserModel represents the database persistence model for users
type UserModel struct {
	ID                      string         `gorm:"primaryKey;size:36"`
	Email                   string         `gorm:"uniqueIndex;not null;size:255"`
	DisplayName             string         `gorm:"size:100;not null;default:''"`
	PasswordHash            string         `gorm:"size:255;not null"`
	NotificationPreferences datatypes.JSON `gorm:"type:json"`
	CreatedAt               time.Time      `gorm:"not null"`
	UpdatedAt               time.Time      `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
