package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/application/project/dto"
	"issueflow/internal/domain/project"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type TrashProjectUseCase struct {
	policy      *access.Policy
	projectRepo project.Repository
	logger      logger.Interface
}

func NewTrashProjectUseCase(policy *access.Policy, projectRepo project.Repository, logger logger.Interface) *TrashProjectUseCase {
	return &TrashProjectUseCase{
		policy:      policy,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Execute moves the project to the trash. Trashing an already trashed
// project refreshes its deleted_at.
func (uc *TrashProjectUseCase) Execute(ctx context.Context, projectID, userID string) (*dto.ProjectDTO, error) {
	uc.logger.Infow("executing trash project use case", "project_id", projectID, "user_id", userID)

	p, err := uc.policy.LoadProject(ctx, projectID, msgProjectNotFound)
	if err != nil {
		return nil, err
	}
	if err := uc.policy.RequireCreator(p, userID, access.ActionTrash, "Only the project creator can delete the project"); err != nil {
		return nil, err
	}

	p.Trash()
	if err := uc.projectRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to trash project", "project_id", projectID, "error", err)
		return nil, errors.NewInternalError("Failed to delete project")
	}

	uc.logger.Infow("project moved to trash", "project_id", projectID)
	return dto.ToProjectDTO(p), nil
}
