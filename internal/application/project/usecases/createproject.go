package usecases

import (
	"context"
	"strings"

	"issueflow/internal/application/project/dto"
	"issueflow/internal/domain/project"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type CreateProjectCommand struct {
	Title       string
	Description *string
	ProjectKey  string
	UserID      string
}

type CreateProjectUseCase struct {
	projectRepo project.Repository
	memberRepo  project.MemberRepository
	logger      logger.Interface
}

func NewCreateProjectUseCase(
	projectRepo project.Repository,
	memberRepo project.MemberRepository,
	logger logger.Interface,
) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		logger:      logger,
	}
}

// Execute creates the project and makes the caller its first member. If the
// membership cannot be stored the project row is removed again.
func (uc *CreateProjectUseCase) Execute(ctx context.Context, cmd CreateProjectCommand) (*dto.ProjectDTO, error) {
	uc.logger.Infow("executing create project use case", "title", cmd.Title, "user_id", cmd.UserID)

	if strings.TrimSpace(cmd.Title) == "" {
		return nil, errors.NewValidationError("Title is required")
	}

	p, err := project.NewProject(cmd.Title, cmd.Description, cmd.ProjectKey, cmd.UserID)
	if err != nil {
		return nil, toAppError(err)
	}

	if err := uc.projectRepo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to create project", "error", err)
		return nil, errors.NewInternalError("Failed to create project")
	}

	member, err := project.NewMember(p.ID(), cmd.UserID)
	if err == nil {
		err = uc.memberRepo.Create(ctx, member)
	}
	if err != nil {
		uc.logger.Errorw("failed to add creator as member, rolling back project", "project_id", p.ID(), "error", err)
		if delErr := uc.projectRepo.Delete(ctx, p.ID()); delErr != nil {
			uc.logger.Errorw("failed to roll back project", "project_id", p.ID(), "error", delErr)
		}
		return nil, errors.NewInternalError("Project created but failed to add you as member. Please try again.")
	}

	uc.logger.Infow("project created successfully", "project_id", p.ID(), "project_key", p.ProjectKey())
	return dto.ToProjectDTO(p), nil
}
