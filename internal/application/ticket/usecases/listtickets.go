package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/application/ticket/dto"
	"issueflow/internal/domain/ticket"
	vo "issueflow/internal/domain/ticket/valueobjects"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/services/markup"
)

// ListTicketsQuery filters a project's tickets. Empty filters match everything.
type ListTicketsQuery struct {
	ProjectID  string
	Status     string
	Priority   string
	TicketType string
	Assignee   string
	UserID     string
}

type ListTicketsUseCase struct {
	policy     *access.Policy
	ticketRepo ticket.Repository
	markup     markup.Service
	logger     logger.Interface
}

func NewListTicketsUseCase(
	policy *access.Policy,
	ticketRepo ticket.Repository,
	markup markup.Service,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		policy:     policy,
		ticketRepo: ticketRepo,
		markup:     markup,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]*dto.TicketDTO, error) {
	uc.logger.Infow("executing list tickets use case", "project_id", query.ProjectID, "user_id", query.UserID)

	if query.ProjectID == "" {
		return nil, errors.NewValidationError("project_id query parameter is required")
	}

	if _, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: query.ProjectID,
		UserID:    query.UserID,
		Resource:  access.ResourceTicket,
		Action:    access.ActionRead,
		Denied:    msgProjectAccessDenied,
	}); err != nil {
		return nil, err
	}

	filter := ticket.Filter{ProjectID: query.ProjectID}
	if query.Status != "" {
		s := vo.TicketStatus(query.Status)
		filter.Status = &s
	}
	if query.Priority != "" {
		p := vo.Priority(query.Priority)
		filter.Priority = &p
	}
	if query.TicketType != "" {
		tt := vo.TicketType(query.TicketType)
		filter.TicketType = &tt
	}
	if query.Assignee != "" {
		a := query.Assignee
		filter.Assignee = &a
	}

	tickets, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "project_id", query.ProjectID, "error", err)
		return nil, errors.NewInternalError("Failed to get tickets")
	}
	return dto.ToTicketDTOs(tickets, uc.markup), nil
}
