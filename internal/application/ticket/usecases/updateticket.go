package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/application/ticket/dto"
	"issueflow/internal/domain/notification"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/services/markup"
)

type UpdateTicketCommand struct {
	TicketID string
	UserID   string
	Patch    ticket.Patch
}

type UpdateTicketUseCase struct {
	policy     *access.Policy
	ticketRepo ticket.Repository
	notifier   notification.Notifier
	markup     markup.Service
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	policy *access.Policy,
	ticketRepo ticket.Repository,
	notifier notification.Notifier,
	markup markup.Service,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		policy:     policy,
		ticketRepo: ticketRepo,
		notifier:   notifier,
		markup:     markup,
		logger:     logger,
	}
}

// Execute applies a partial update. Any member may change any field. The new
// assignee is notified once when the assignee changed to someone other than
// the caller.
func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)

	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	membership, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: t.ProjectID(),
		UserID:    cmd.UserID,
		Resource:  access.ResourceTicket,
		Action:    access.ActionUpdate,
		Denied:    msgTicketAccessDenied,
	})
	if err != nil {
		return nil, err
	}

	patch := cmd.Patch
	previousAssignee := t.Assignee()
	if err := t.Apply(patch); err != nil {
		return nil, toAppError(err)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("Failed to update ticket")
	}

	if ticket.ShouldNotifyAssignee(previousAssignee, t.Assignee(), cmd.UserID) {
		notifyAssigned(ctx, uc.notifier, t, membership.Project.Title(), cmd.UserID)
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", t.ID())
	return dto.ToTicketDTO(t, uc.markup), nil
}
