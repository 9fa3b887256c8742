package http

import (
	notificationApp "issueflow/internal/application/notification"
	notificationUsecases "issueflow/internal/application/notification/usecases"
	projectUsecases "issueflow/internal/application/project/usecases"
	ticketUsecases "issueflow/internal/application/ticket/usecases"
	userApp "issueflow/internal/application/user"
	userUsecases "issueflow/internal/application/user/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Project
	createProjectUC       *projectUsecases.CreateProjectUseCase
	listProjectsUC        *projectUsecases.ListProjectsUseCase
	listDeletedProjectsUC *projectUsecases.ListDeletedProjectsUseCase
	getProjectUC          *projectUsecases.GetProjectUseCase
	updateProjectUC       *projectUsecases.UpdateProjectUseCase
	trashProjectUC        *projectUsecases.TrashProjectUseCase
	restoreProjectUC      *projectUsecases.RestoreProjectUseCase
	purgeProjectUC        *projectUsecases.PurgeProjectUseCase
	inviteMemberUC        *projectUsecases.InviteMemberUseCase
	addMemberUC           *projectUsecases.AddMemberUseCase
	listMembersUC         *projectUsecases.ListMembersUseCase
	toggleStarUC          *projectUsecases.ToggleStarUseCase

	// Ticket
	createTicketUC   *ticketUsecases.CreateTicketUseCase
	listTicketsUC    *ticketUsecases.ListTicketsUseCase
	getTicketUC      *ticketUsecases.GetTicketUseCase
	updateTicketUC   *ticketUsecases.UpdateTicketUseCase
	deleteTicketUC   *ticketUsecases.DeleteTicketUseCase
	getTicketStatsUC *ticketUsecases.GetTicketStatsUseCase

	// Comment
	createCommentUC *ticketUsecases.CreateCommentUseCase
	listCommentsUC  *ticketUsecases.ListCommentsUseCase
	getCommentUC    *ticketUsecases.GetCommentUseCase
	updateCommentUC *ticketUsecases.UpdateCommentUseCase
	deleteCommentUC *ticketUsecases.DeleteCommentUseCase

	// Maintenance
	cleanupSessionsUC *userUsecases.CleanupExpiredSessionsUseCase
	sendDigestUC      *notificationUsecases.SendDigestUseCase
}

// ============================================================
// Section 3: Use cases and application services
// ============================================================

func (c *Container) initUseCases() {
	log := c.log
	r := c.repos

	c.ucs = &allUseCases{
		createProjectUC:       projectUsecases.NewCreateProjectUseCase(r.projectRepo, r.memberRepo, log),
		listProjectsUC:        projectUsecases.NewListProjectsUseCase(r.projectRepo, r.memberRepo, log),
		listDeletedProjectsUC: projectUsecases.NewListDeletedProjectsUseCase(r.projectRepo, log),
		getProjectUC:          projectUsecases.NewGetProjectUseCase(c.policy, r.memberRepo, r.ticketRepo, log),
		updateProjectUC:       projectUsecases.NewUpdateProjectUseCase(c.policy, r.projectRepo, log),
		trashProjectUC:        projectUsecases.NewTrashProjectUseCase(c.policy, r.projectRepo, log),
		restoreProjectUC:      projectUsecases.NewRestoreProjectUseCase(c.policy, r.projectRepo, log),
		purgeProjectUC: projectUsecases.NewPurgeProjectUseCase(
			c.policy, r.projectRepo, r.memberRepo, r.ticketRepo, r.commentRepo, c.txManager, log,
		),
		inviteMemberUC: projectUsecases.NewInviteMemberUseCase(c.policy, r.memberRepo, r.userRepo, log),
		addMemberUC:    projectUsecases.NewAddMemberUseCase(c.policy, r.memberRepo, r.userRepo, log),
		listMembersUC:  projectUsecases.NewListMembersUseCase(c.policy, r.memberRepo, r.userRepo, log),
		toggleStarUC:   projectUsecases.NewToggleStarUseCase(c.policy, r.memberRepo, log),

		createTicketUC: ticketUsecases.NewCreateTicketUseCase(
			c.policy, r.ticketRepo, c.txManager, c.dispatcher, c.markup, log,
		),
		listTicketsUC:    ticketUsecases.NewListTicketsUseCase(c.policy, r.ticketRepo, c.markup, log),
		getTicketUC:      ticketUsecases.NewGetTicketUseCase(c.policy, r.ticketRepo, c.markup, log),
		updateTicketUC:   ticketUsecases.NewUpdateTicketUseCase(c.policy, r.ticketRepo, c.dispatcher, c.markup, log),
		deleteTicketUC:   ticketUsecases.NewDeleteTicketUseCase(c.policy, r.ticketRepo, r.commentRepo, c.txManager, log),
		getTicketStatsUC: ticketUsecases.NewGetTicketStatsUseCase(c.policy, r.ticketRepo, log),

		createCommentUC: ticketUsecases.NewCreateCommentUseCase(
			c.policy, r.ticketRepo, r.commentRepo, c.dispatcher, c.markup, log,
		),
		listCommentsUC:  ticketUsecases.NewListCommentsUseCase(c.policy, r.ticketRepo, r.commentRepo, c.markup, log),
		getCommentUC:    ticketUsecases.NewGetCommentUseCase(c.policy, r.ticketRepo, r.commentRepo, c.markup, log),
		updateCommentUC: ticketUsecases.NewUpdateCommentUseCase(c.policy, r.ticketRepo, r.commentRepo, c.markup, log),
		deleteCommentUC: ticketUsecases.NewDeleteCommentUseCase(c.policy, r.ticketRepo, r.commentRepo, log),

		cleanupSessionsUC: userUsecases.NewCleanupExpiredSessionsUseCase(r.sessionRepo, log),
		sendDigestUC:      notificationUsecases.NewSendDigestUseCase(r.notificationRepo, r.userRepo, c.mailer, log),
	}

	c.userService = userApp.NewServiceDDD(
		r.userRepo,
		r.sessionRepo,
		c.hasher,
		c.jwtSvc,
		c.cfg.Auth.Password.Enabled,
		log,
	)
	c.notificationService = notificationApp.NewServiceDDD(r.notificationRepo, c.unreadCache, log)
}
