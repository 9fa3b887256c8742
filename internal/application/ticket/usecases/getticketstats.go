package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/application/ticket/dto"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type GetTicketStatsUseCase struct {
	policy     *access.Policy
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(policy *access.Policy, ticketRepo ticket.Repository, logger logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		policy:     policy,
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, projectID, userID string) (*dto.StatsDTO, error) {
	uc.logger.Infow("executing get ticket stats use case", "project_id", projectID, "user_id", userID)

	if projectID == "" {
		return nil, errors.NewValidationError("project_id is required")
	}

	if _, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: projectID,
		UserID:    userID,
		Resource:  access.ResourceTicket,
		Action:    access.ActionStats,
		Denied:    "Access denied",
	}); err != nil {
		return nil, err
	}

	stats, err := uc.ticketRepo.Stats(ctx, projectID)
	if err != nil {
		uc.logger.Errorw("failed to compute ticket stats", "project_id", projectID, "error", err)
		return nil, errors.NewInternalError("Failed to get ticket statistics")
	}
	return dto.ToStatsDTO(stats), nil
}
