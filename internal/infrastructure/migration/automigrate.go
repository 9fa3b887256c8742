package migration

import (
	"issueflow/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persisted model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.SessionModel{},
		&models.ProjectModel{},
		&models.ProjectMemberModel{},
		&models.TicketModel{},
		&models.CommentModel{},
		&models.NotificationModel{},
	}
}
