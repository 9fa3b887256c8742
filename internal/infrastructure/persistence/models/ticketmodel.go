package models

import (
	"time"

	"gorm.io/datatypes"
)

type TicketModel struct {
	ID              string         `gorm:"primaryKey;size:36"`
	ProjectID       string         `gorm:"size:36;not null;uniqueIndex:idx_tickets_project_number,priority:1"`
	TicketNumber    int            `gorm:"not null;uniqueIndex:idx_tickets_project_number,priority:2"`
	Title           string         `gorm:"size:255;not null"`
	Description     string         `gorm:"type:text;not null"`
	Priority        string         `gorm:"size:20;not null;index"`
	Status          string         `gorm:"size:20;not null;index"`
	TicketType      string         `gorm:"size:20;not null;index"`
	Assignee        *string        `gorm:"size:36;index"`
	Labels          datatypes.JSON `gorm:"type:json"`
	DueDate         *time.Time
	StoryPoints     *float64
	Subtasks        datatypes.JSON `gorm:"type:json"`
	LinkedTicketIDs datatypes.JSON `gorm:"type:json"`
	CreatedBy       string         `gorm:"size:36;not null;index"`
	CreatedAt       time.Time      `gorm:"not null;index"`
	UpdatedAt       time.Time      `gorm:"not null"`

	// Note: No foreign key constraints or associations.
	// Cascades are performed by the application inside a transaction.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type CommentModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	TicketID  string    `gorm:"size:36;not null;index"`
	UserID    string    `gorm:"size:36;not null;index"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CommentModel) TableName() string {
	return "comments"
}
