package http

import (
	"gorm.io/gorm"

	"issueflow/internal/domain/notification"
	"issueflow/internal/domain/project"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/domain/user"
	"issueflow/internal/infrastructure/repository"
	"issueflow/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo         user.Repository
	sessionRepo      user.SessionRepository
	projectRepo      project.Repository
	memberRepo       project.MemberRepository
	ticketRepo       ticket.Repository
	commentRepo      ticket.CommentRepository
	notificationRepo notification.Repository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(db, log),
		sessionRepo:      repository.NewSessionRepository(db),
		projectRepo:      repository.NewProjectRepository(db, log),
		memberRepo:       repository.NewMemberRepository(db),
		ticketRepo:       repository.NewTicketRepository(db, log),
		commentRepo:      repository.NewCommentRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
}
