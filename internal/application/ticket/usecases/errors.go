package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

const (
	msgTicketNotFound      = "Ticket not found"
	msgTicketAccessDenied  = "Access denied to this ticket"
	msgProjectAccessDenied = "Access denied to this project"
	msgProjectNotFound     = "Project not found"
	minTicketIDLength      = 10
)

func toAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, ticket.ErrInvalidStatus):
		return errors.NewValidationError("Invalid status value")
	case stderrors.Is(err, ticket.ErrInvalidType):
		return errors.NewValidationError("Invalid ticket type")
	case stderrors.Is(err, ticket.ErrTitleRequired):
		return errors.NewValidationError("Title is required")
	case stderrors.Is(err, ticket.ErrTextRequired):
		return errors.NewValidationError("Text is required")
	default:
		return errors.NewValidationError(err.Error())
	}
}

// loadTicket fetches a ticket by id. Ids too short to be real are rejected
// before touching the database.
func loadTicket(ctx context.Context, repo ticket.Repository, log logger.Interface, ticketID string) (*ticket.Ticket, error) {
	ticketID = strings.TrimSpace(ticketID)
	if len(ticketID) < minTicketIDLength {
		return nil, errors.NewValidationError("Invalid ticket id")
	}
	return findTicket(ctx, repo, log, ticketID)
}

// findTicket fetches a ticket referenced from another resource.
func findTicket(ctx context.Context, repo ticket.Repository, log logger.Interface, ticketID string) (*ticket.Ticket, error) {
	t, err := repo.GetByID(ctx, ticketID)
	if err != nil {
		log.Errorw("failed to load ticket", "ticket_id", ticketID, "error", err)
		return nil, errors.NewInternalError("Failed to get ticket")
	}
	if t == nil {
		return nil, errors.NewNotFoundError(msgTicketNotFound)
	}
	return t, nil
}
