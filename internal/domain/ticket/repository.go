package ticket

import (
	"context"

	vo "issueflow/internal/domain/ticket/valueobjects"
)

// Repository persists tickets. Getters return (nil, nil) when the row is absent.
type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, ticketID string) error
	GetByID(ctx context.Context, ticketID string) (*Ticket, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, error)
	CountByProject(ctx context.Context, projectID string) (int64, error)
	// NextNumber returns max(ticket_number)+1 for the project. Call it inside
	// the transaction that inserts the ticket.
	NextNumber(ctx context.Context, projectID string) (int, error)
	ListIDsByProject(ctx context.Context, projectID string) ([]string, error)
	DeleteByProject(ctx context.Context, projectID string) error
	Stats(ctx context.Context, projectID string) (*Stats, error)
}

// Filter narrows a project's ticket list. Nil fields match everything.
type Filter struct {
	ProjectID  string
	Status     *vo.TicketStatus
	Priority   *vo.Priority
	TicketType *vo.TicketType
	Assignee   *string
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, commentID string) error
	GetByID(ctx context.Context, commentID string) (*Comment, error)
	// ListByTicket returns comments oldest first.
	ListByTicket(ctx context.Context, ticketID string) ([]*Comment, error)
	DeleteByTicket(ctx context.Context, ticketID string) error
	DeleteByTickets(ctx context.Context, ticketIDs []string) error
}
