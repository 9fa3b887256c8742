package usecases

import (
	"context"

	"issueflow/internal/application/project/dto"
	"issueflow/internal/domain/project"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type ListProjectsUseCase struct {
	projectRepo project.Repository
	memberRepo  project.MemberRepository
	logger      logger.Interface
}

func NewListProjectsUseCase(
	projectRepo project.Repository,
	memberRepo project.MemberRepository,
	logger logger.Interface,
) *ListProjectsUseCase {
	return &ListProjectsUseCase{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		logger:      logger,
	}
}

// Execute returns the caller's active projects, newest first, each carrying
// the caller's star flag.
func (uc *ListProjectsUseCase) Execute(ctx context.Context, userID string) ([]*dto.ProjectDTO, error) {
	uc.logger.Infow("executing list projects use case", "user_id", userID)

	memberships, err := uc.memberRepo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list memberships", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("Failed to get projects")
	}
	if len(memberships) == 0 {
		return []*dto.ProjectDTO{}, nil
	}

	starred := make(map[string]bool, len(memberships))
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		starred[m.ProjectID()] = m.IsStarred()
		ids = append(ids, m.ProjectID())
	}

	projects, err := uc.projectRepo.ListActiveByIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to list projects", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("Failed to get projects")
	}

	result := make([]*dto.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		result = append(result, dto.ToProjectDTO(p).WithStar(starred[p.ID()]))
	}
	return result, nil
}
