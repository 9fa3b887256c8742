package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/domain/project"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type RestoreProjectUseCase struct {
	policy      *access.Policy
	projectRepo project.Repository
	logger      logger.Interface
}

func NewRestoreProjectUseCase(policy *access.Policy, projectRepo project.Repository, logger logger.Interface) *RestoreProjectUseCase {
	return &RestoreProjectUseCase{
		policy:      policy,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

func (uc *RestoreProjectUseCase) Execute(ctx context.Context, projectID, userID string) error {
	uc.logger.Infow("executing restore project use case", "project_id", projectID, "user_id", userID)

	p, err := uc.policy.LoadProject(ctx, projectID, msgProjectNotFound)
	if err != nil {
		return err
	}
	if err := uc.policy.RequireCreator(p, userID, access.ActionRestore, "Only the project creator can restore the project"); err != nil {
		return err
	}
	if err := p.Restore(); err != nil {
		return toAppError(err)
	}

	if err := uc.projectRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to restore project", "project_id", projectID, "error", err)
		return errors.NewInternalError("Failed to restore project")
	}

	uc.logger.Infow("project restored", "project_id", projectID)
	return nil
}
