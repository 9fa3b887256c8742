package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/application/project/dto"
	"issueflow/internal/domain/project"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type GetProjectUseCase struct {
	policy     *access.Policy
	memberRepo project.MemberRepository
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetProjectUseCase(
	policy *access.Policy,
	memberRepo project.MemberRepository,
	ticketRepo ticket.Repository,
	logger logger.Interface,
) *GetProjectUseCase {
	return &GetProjectUseCase{
		policy:     policy,
		memberRepo: memberRepo,
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute returns one active project with member and ticket counts. A trashed
// project is reported as missing to every caller, its creator included.
func (uc *GetProjectUseCase) Execute(ctx context.Context, projectID, userID string) (*dto.ProjectDTO, error) {
	uc.logger.Infow("executing get project use case", "project_id", projectID, "user_id", userID)

	p, err := uc.policy.LoadProject(ctx, projectID, msgProjectNotFound)
	if err != nil {
		return nil, err
	}
	if p.IsTrashed() {
		return nil, errors.NewNotFoundError(msgProjectInTrash)
	}

	membership, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: projectID,
		UserID:    userID,
		Resource:  access.ResourceProject,
		Action:    access.ActionRead,
		Denied:    msgAccessDenied,
	})
	if err != nil {
		return nil, err
	}

	memberCount, err := uc.memberRepo.CountByProject(ctx, projectID)
	if err != nil {
		uc.logger.Warnw("failed to count members", "project_id", projectID, "error", err)
	}
	if memberCount == 0 {
		memberCount = 1
	}

	ticketCount, err := uc.ticketRepo.CountByProject(ctx, projectID)
	if err != nil {
		uc.logger.Warnw("failed to count tickets", "project_id", projectID, "error", err)
		ticketCount = 0
	}

	result := dto.ToProjectDTO(membership.Project).WithStar(membership.Member.IsStarred())
	result.MemberCount = &memberCount
	result.TicketCount = &ticketCount
	return result, nil
}
