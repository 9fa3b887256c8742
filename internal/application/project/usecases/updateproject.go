package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/application/project/dto"
	"issueflow/internal/domain/project"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type UpdateProjectCommand struct {
	ProjectID   string
	UserID      string
	Title       *string
	Description *string
	ProjectKey  *string
}

type UpdateProjectUseCase struct {
	policy      *access.Policy
	projectRepo project.Repository
	logger      logger.Interface
}

func NewUpdateProjectUseCase(policy *access.Policy, projectRepo project.Repository, logger logger.Interface) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{
		policy:      policy,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

func (uc *UpdateProjectUseCase) Execute(ctx context.Context, cmd UpdateProjectCommand) (*dto.ProjectDTO, error) {
	uc.logger.Infow("executing update project use case", "project_id", cmd.ProjectID, "user_id", cmd.UserID)

	membership, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: cmd.ProjectID,
		UserID:    cmd.UserID,
		Resource:  access.ResourceProject,
		Action:    access.ActionUpdate,
		Denied:    msgAccessDenied,
	})
	if err != nil {
		return nil, err
	}

	p := membership.Project
	if err := p.Update(cmd.Title, cmd.Description, cmd.ProjectKey); err != nil {
		return nil, toAppError(err)
	}

	if err := uc.projectRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update project", "project_id", p.ID(), "error", err)
		return nil, errors.NewInternalError("Failed to update project")
	}

	uc.logger.Infow("project updated successfully", "project_id", p.ID())
	return dto.ToProjectDTO(p), nil
}
