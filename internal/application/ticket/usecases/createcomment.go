package usecases

import (
	"context"
	"strings"

	"issueflow/internal/application/access"
	"issueflow/internal/application/ticket/dto"
	"issueflow/internal/domain/notification"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/id"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/services/markup"
	"issueflow/internal/shared/utils/setutil"
)

type CreateCommentCommand struct {
	TicketID string
	Text     string
	UserID   string
}

type CreateCommentUseCase struct {
	policy      *access.Policy
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	notifier    notification.Notifier
	markup      markup.Service
	logger      logger.Interface
}

func NewCreateCommentUseCase(
	policy *access.Policy,
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	notifier notification.Notifier,
	markup markup.Service,
	logger logger.Interface,
) *CreateCommentUseCase {
	return &CreateCommentUseCase{
		policy:      policy,
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
		markup:      markup,
		logger:      logger,
	}
}

// Execute stores the comment and notifies the ticket's assignee and creator,
// never the commenter.
func (uc *CreateCommentUseCase) Execute(ctx context.Context, cmd CreateCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing create comment use case", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)

	text := strings.TrimSpace(cmd.Text)
	if cmd.TicketID == "" || text == "" {
		return nil, errors.NewValidationError("ticket_id and text are required")
	}
	if id.IsTemp(cmd.TicketID) {
		return nil, errors.NewValidationError("Save the ticket first, then add a comment.")
	}

	t, err := findTicket(ctx, uc.ticketRepo, uc.logger, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	membership, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: t.ProjectID(),
		UserID:    cmd.UserID,
		Resource:  access.ResourceComment,
		Action:    access.ActionCreate,
		Denied:    msgTicketAccessDenied,
	})
	if err != nil {
		return nil, err
	}

	c, err := ticket.NewComment(t.ID(), cmd.UserID, text)
	if err != nil {
		return nil, toAppError(err)
	}
	if err := uc.commentRepo.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to create comment", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("Failed to create comment")
	}

	uc.notifyParticipants(ctx, t, membership.Project.Title(), cmd.UserID)

	uc.logger.Infow("comment created successfully", "comment_id", c.ID(), "ticket_id", t.ID())
	return dto.ToCommentDTO(c, uc.markup), nil
}

func (uc *CreateCommentUseCase) notifyParticipants(ctx context.Context, t *ticket.Ticket, projectTitle, actorID string) {
	recipients := setutil.NewStringSet()
	if a := t.Assignee(); a != nil {
		recipients.Add(*a)
	}
	recipients.Add(t.CreatedBy())
	recipients.Remove(actorID)

	ticketID := t.ID()
	projectID := t.ProjectID()
	title := notification.CommentTitle(t.Title(), projectTitle)
	for _, recipient := range recipients.ToSlice() {
		uc.notifier.Notify(ctx, notification.Request{
			RecipientID: recipient,
			Type:        notification.TypeComment,
			Title:       title,
			Metadata: notification.Metadata{
				TicketID:  &ticketID,
				ProjectID: &projectID,
				ActorID:   &actorID,
			},
		})
	}
}
