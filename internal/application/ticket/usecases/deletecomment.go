package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type DeleteCommentUseCase struct {
	policy      *access.Policy
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	logger      logger.Interface
}

func NewDeleteCommentUseCase(policy *access.Policy, ticketRepo ticket.Repository, commentRepo ticket.CommentRepository, logger logger.Interface) *DeleteCommentUseCase {
	return &DeleteCommentUseCase{
		policy:      policy,
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

func (uc *DeleteCommentUseCase) Execute(ctx context.Context, commentID, userID string) error {
	uc.logger.Infow("executing delete comment use case", "comment_id", commentID, "user_id", userID)

	c, err := loadComment(ctx, uc.commentRepo, uc.logger, commentID)
	if err != nil {
		return err
	}
	if err := requireCommentMember(ctx, uc.policy, uc.ticketRepo, uc.logger, c, userID); err != nil {
		return err
	}
	if err := uc.policy.RequireAuthor(c.UserID(), userID, access.ActionDelete, "You can only delete your own comments"); err != nil {
		return err
	}

	if err := uc.commentRepo.Delete(ctx, c.ID()); err != nil {
		uc.logger.Errorw("failed to delete comment", "comment_id", c.ID(), "error", err)
		return errors.NewInternalError("Failed to delete comment")
	}
	return nil
}
