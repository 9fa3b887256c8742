package usecases

import (
	"context"

	"issueflow/internal/application/project/dto"
)

type CreateProjectExecutor interface {
	Execute(ctx context.Context, cmd CreateProjectCommand) (*dto.ProjectDTO, error)
}

type ListProjectsExecutor interface {
	Execute(ctx context.Context, userID string) ([]*dto.ProjectDTO, error)
}

type ListDeletedProjectsExecutor interface {
	Execute(ctx context.Context, userID string) ([]*dto.ProjectDTO, error)
}

type GetProjectExecutor interface {
	Execute(ctx context.Context, projectID, userID string) (*dto.ProjectDTO, error)
}

type UpdateProjectExecutor interface {
	Execute(ctx context.Context, cmd UpdateProjectCommand) (*dto.ProjectDTO, error)
}

type TrashProjectExecutor interface {
	Execute(ctx context.Context, projectID, userID string) (*dto.ProjectDTO, error)
}

type RestoreProjectExecutor interface {
	Execute(ctx context.Context, projectID, userID string) error
}

type PurgeProjectExecutor interface {
	Execute(ctx context.Context, projectID, userID string) error
}

type InviteMemberExecutor interface {
	Execute(ctx context.Context, cmd InviteMemberCommand) (*dto.MemberDTO, error)
}

type AddMemberExecutor interface {
	Execute(ctx context.Context, cmd AddMemberCommand) (*dto.MemberDTO, error)
}

type ListMembersExecutor interface {
	Execute(ctx context.Context, projectID, userID string) ([]*dto.MemberDTO, error)
}

type ToggleStarExecutor interface {
	Execute(ctx context.Context, projectID, userID string) (bool, error)
}
