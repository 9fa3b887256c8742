package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/application/ticket/dto"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/services/markup"
)

type GetTicketUseCase struct {
	policy     *access.Policy
	ticketRepo ticket.Repository
	markup     markup.Service
	logger     logger.Interface
}

func NewGetTicketUseCase(
	policy *access.Policy,
	ticketRepo ticket.Repository,
	markup markup.Service,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		policy:     policy,
		ticketRepo: ticketRepo,
		markup:     markup,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, ticketID, userID string) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing get ticket use case", "ticket_id", ticketID, "user_id", userID)

	t, err := loadTicket(ctx, uc.ticketRepo, uc.logger, ticketID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: t.ProjectID(),
		UserID:    userID,
		Resource:  access.ResourceTicket,
		Action:    access.ActionRead,
		Denied:    msgTicketAccessDenied,
	}); err != nil {
		return nil, err
	}

	return dto.ToTicketDTO(t, uc.markup), nil
}
