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

const msgCommentNotFound = "Comment not found"

type GetCommentUseCase struct {
	policy      *access.Policy
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	markup      markup.Service
	logger      logger.Interface
}

func NewGetCommentUseCase(
	policy *access.Policy,
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	markup markup.Service,
	logger logger.Interface,
) *GetCommentUseCase {
	return &GetCommentUseCase{
		policy:      policy,
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		markup:      markup,
		logger:      logger,
	}
}

func (uc *GetCommentUseCase) Execute(ctx context.Context, commentID, userID string) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing get comment use case", "comment_id", commentID, "user_id", userID)

	c, err := loadComment(ctx, uc.commentRepo, uc.logger, commentID)
	if err != nil {
		return nil, err
	}

	if err := requireCommentMember(ctx, uc.policy, uc.ticketRepo, uc.logger, c, userID); err != nil {
		return nil, err
	}

	return dto.ToCommentDTO(c, uc.markup), nil
}

func loadComment(ctx context.Context, repo ticket.CommentRepository, log logger.Interface, commentID string) (*ticket.Comment, error) {
	if commentID == "" {
		return nil, errors.NewNotFoundError(msgCommentNotFound)
	}
	c, err := repo.GetByID(ctx, commentID)
	if err != nil {
		log.Errorw("failed to load comment", "comment_id", commentID, "error", err)
		return nil, errors.NewInternalError("Failed to get comment")
	}
	if c == nil {
		return nil, errors.NewNotFoundError(msgCommentNotFound)
	}
	return c, nil
}

// requireCommentMember checks that userID belongs to the project owning the
// comment's ticket. Edits additionally need the author relation.
func requireCommentMember(ctx context.Context, policy *access.Policy, ticketRepo ticket.Repository, log logger.Interface, c *ticket.Comment, userID string) error {
	t, err := findTicket(ctx, ticketRepo, log, c.TicketID())
	if err != nil {
		return err
	}
	_, err = policy.RequireMember(ctx, access.Check{
		ProjectID: t.ProjectID(),
		UserID:    userID,
		Resource:  access.ResourceComment,
		Action:    access.ActionRead,
		Denied:    "Access denied to this comment",
	})
	return err
}
