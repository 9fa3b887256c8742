package db

import (
	"gorm.io/gorm"
)

// NotDeleted filters out soft-deleted (trashed) records.
//
//	db.Model(&models.ProjectModel{}).Scopes(db.NotDeleted()).Find(&projects)
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}

// OnlyDeleted keeps only soft-deleted records, the inverse of NotDeleted.
func OnlyDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NOT NULL")
	}
}
