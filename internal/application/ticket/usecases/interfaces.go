package usecases

import (
	"context"

	"issueflow/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) ([]*dto.TicketDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, ticketID, userID string) (*dto.TicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, ticketID, userID string) error
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, projectID, userID string) (*dto.StatsDTO, error)
}

type CreateCommentExecutor interface {
	Execute(ctx context.Context, cmd CreateCommentCommand) (*dto.CommentDTO, error)
}

type ListCommentsExecutor interface {
	Execute(ctx context.Context, ticketID, userID string) ([]*dto.CommentDTO, error)
}

type GetCommentExecutor interface {
	Execute(ctx context.Context, commentID, userID string) (*dto.CommentDTO, error)
}

type UpdateCommentExecutor interface {
	Execute(ctx context.Context, cmd UpdateCommentCommand) (*dto.CommentDTO, error)
}

type DeleteCommentExecutor interface {
	Execute(ctx context.Context, commentID, userID string) error
}
