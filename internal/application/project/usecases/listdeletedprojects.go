package usecases

import (
	"context"

	"issueflow/internal/application/project/dto"
	"issueflow/internal/domain/project"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type ListDeletedProjectsUseCase struct {
	projectRepo project.Repository
	logger      logger.Interface
}

func NewListDeletedProjectsUseCase(projectRepo project.Repository, logger logger.Interface) *ListDeletedProjectsUseCase {
	return &ListDeletedProjectsUseCase{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Execute lists the trashed projects the caller created, most recently trashed first.
func (uc *ListDeletedProjectsUseCase) Execute(ctx context.Context, userID string) ([]*dto.ProjectDTO, error) {
	uc.logger.Infow("executing list deleted projects use case", "user_id", userID)

	projects, err := uc.projectRepo.ListTrashedByCreator(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list deleted projects", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("Failed to get deleted projects")
	}
	return dto.ToProjectDTOs(projects), nil
}
