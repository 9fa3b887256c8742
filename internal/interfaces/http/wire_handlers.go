package http

import (
	"issueflow/internal/interfaces/http/handlers"
	projectHandlers "issueflow/internal/interfaces/http/handlers/project"
	ticketHandlers "issueflow/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// Auth
	authHandler *handlers.AuthHandler

	// Project
	projectHandler *projectHandlers.Handler

	// Ticket
	ticketHandler  *ticketHandlers.TicketHandler
	commentHandler *ticketHandlers.CommentHandler

	// Notification
	notificationHandler *handlers.NotificationHandler
}

// ============================================================
// Section 4: Handlers and middlewares
// ============================================================

func (c *Container) initHandlers() {
	log := c.log
	u := c.ucs

	c.initMiddlewares()

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(c.userService, log),

		projectHandler: projectHandlers.NewHandler(projectHandlers.UseCases{
			CreateProject:  u.createProjectUC,
			ListProjects:   u.listProjectsUC,
			ListDeleted:    u.listDeletedProjectsUC,
			GetProject:     u.getProjectUC,
			UpdateProject:  u.updateProjectUC,
			TrashProject:   u.trashProjectUC,
			RestoreProject: u.restoreProjectUC,
			PurgeProject:   u.purgeProjectUC,
			InviteMember:   u.inviteMemberUC,
			AddMember:      u.addMemberUC,
			ListMembers:    u.listMembersUC,
			ToggleStar:     u.toggleStarUC,
		}, log),

		ticketHandler: ticketHandlers.NewTicketHandler(
			u.createTicketUC, u.listTicketsUC, u.getTicketUC, u.updateTicketUC, u.deleteTicketUC, u.getTicketStatsUC, log,
		),
		commentHandler: ticketHandlers.NewCommentHandler(
			u.createCommentUC, u.listCommentsUC, u.getCommentUC, u.updateCommentUC, u.deleteCommentUC, log,
		),

		notificationHandler: handlers.NewNotificationHandler(c.notificationService, log),
	}
}
