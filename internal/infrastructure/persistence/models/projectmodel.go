package models

import (
	"time"
)

// ProjectModel represents the database persistence model for projects.
// A non-null DeletedAt marks the project as trashed.
type ProjectModel struct {
	ID          string     `gorm:"primaryKey;size:36"`
	Title       string     `gorm:"size:255;not null"`
	Description *string    `gorm:"type:text"`
	ProjectKey  string     `gorm:"size:20;not null"`
	CreatedBy   string     `gorm:"size:36;not null;index"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	UpdatedAt   time.Time  `gorm:"not null"`
	DeletedAt   *time.Time `gorm:"index"`
}

func (ProjectModel) TableName() string {
	return "projects"
}

// ProjectMemberModel is keyed by (project_id, user_id), so a second insert
// of the same pair fails with a duplicate key error.
type ProjectMemberModel struct {
	ProjectID string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"primaryKey;size:36;index"`
	IsStarred bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ProjectMemberModel) TableName() string {
	return "project_members"
}
