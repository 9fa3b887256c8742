package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/application/ticket/dto"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/services/markup"
)

type ListCommentsUseCase struct {
	policy      *access.Policy
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	markup      markup.Service
	logger      logger.Interface
}

func NewListCommentsUseCase(
	policy *access.Policy,
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	markup markup.Service,
	logger logger.Interface,
) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		policy:      policy,
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		markup:      markup,
		logger:      logger,
	}
}

// Execute lists a ticket's comments oldest first.
func (uc *ListCommentsUseCase) Execute(ctx context.Context, ticketID, userID string) ([]*dto.CommentDTO, error) {
	uc.logger.Infow("executing list comments use case", "ticket_id", ticketID, "user_id", userID)

	if ticketID == "" {
		return nil, errors.NewValidationError("ticket_id query parameter is required")
	}

	t, err := findTicket(ctx, uc.ticketRepo, uc.logger, ticketID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: t.ProjectID(),
		UserID:    userID,
		Resource:  access.ResourceComment,
		Action:    access.ActionRead,
		Denied:    msgTicketAccessDenied,
	}); err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("Failed to get comments")
	}
	return dto.ToCommentDTOs(comments, uc.markup), nil
}
