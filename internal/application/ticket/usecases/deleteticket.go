package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/db"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type DeleteTicketUseCase struct {
	policy      *access.Policy
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	txManager   db.Transactor
	logger      logger.Interface
}

func NewDeleteTicketUseCase(
	policy *access.Policy,
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	txManager db.Transactor,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		policy:      policy,
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute removes the ticket's comments and then the ticket in one transaction.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, ticketID, userID string) error {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", ticketID, "user_id", userID)

	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, ticketID)
	if err != nil {
		return err
	}

	if _, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: t.ProjectID(),
		UserID:    userID,
		Resource:  access.ResourceTicket,
		Action:    access.ActionDelete,
		Denied:    msgTicketAccessDenied,
	}); err != nil {
		return err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.DeleteByTicket(txCtx, t.ID()); err != nil {
			return err
		}
		return uc.ticketRepo.Delete(txCtx, t.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", t.ID(), "error", err)
		return errors.NewInternalError("Failed to delete ticket")
	}

	uc.logger.Infow("ticket deleted successfully", "ticket_id", t.ID())
	return nil
}
