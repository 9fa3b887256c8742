package usecases

import (
	"context"
	"strings"

	"issueflow/internal/application/access"
	"issueflow/internal/application/ticket/dto"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/services/markup"
)

type UpdateCommentCommand struct {
	CommentID string
	Text      string
	UserID    string
}

type UpdateCommentUseCase struct {
	policy      *access.Policy
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	markup      markup.Service
	logger      logger.Interface
}

func NewUpdateCommentUseCase(
	policy *access.Policy,
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	markup markup.Service,
	logger logger.Interface,
) *UpdateCommentUseCase {
	return &UpdateCommentUseCase{
		policy:      policy,
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		markup:      markup,
		logger:      logger,
	}
}

// Execute edits a comment. Only its author may do so, and only while still a
// member of the ticket's project.
func (uc *UpdateCommentUseCase) Execute(ctx context.Context, cmd UpdateCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing update comment use case", "comment_id", cmd.CommentID, "user_id", cmd.UserID)

	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return nil, errors.NewValidationError("Text is required")
	}

	c, err := loadComment(ctx, uc.commentRepo, uc.logger, cmd.CommentID)
	if err != nil {
		return nil, err
	}
	if err := requireCommentMember(ctx, uc.policy, uc.ticketRepo, uc.logger, c, cmd.UserID); err != nil {
		return nil, err
	}
	if err := uc.policy.RequireAuthor(c.UserID(), cmd.UserID, access.ActionUpdate, "You can only update your own comments"); err != nil {
		return nil, err
	}

	if err := c.Edit(text); err != nil {
		return nil, toAppError(err)
	}
	if err := uc.commentRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update comment", "comment_id", c.ID(), "error", err)
		return nil, errors.NewInternalError("Failed to update comment")
	}

	return dto.ToCommentDTO(c, uc.markup), nil
}
