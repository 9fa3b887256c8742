package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/application/project/dto"
	"issueflow/internal/domain/project"
	"issueflow/internal/domain/user"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type ListMembersUseCase struct {
	policy     *access.Policy
	memberRepo project.MemberRepository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewListMembersUseCase(
	policy *access.Policy,
	memberRepo project.MemberRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListMembersUseCase {
	return &ListMembersUseCase{
		policy:     policy,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Execute lists the project's members. Emails are attached when the user
// lookup succeeds; a failed lookup leaves them out.
func (uc *ListMembersUseCase) Execute(ctx context.Context, projectID, userID string) ([]*dto.MemberDTO, error) {
	uc.logger.Infow("executing list members use case", "project_id", projectID, "user_id", userID)

	if _, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: projectID,
		UserID:    userID,
		Resource:  access.ResourceProject,
		Action:    access.ActionListMembers,
		Denied:    "Access denied",
	}); err != nil {
		return nil, err
	}

	members, err := uc.memberRepo.ListByProject(ctx, projectID)
	if err != nil {
		uc.logger.Errorw("failed to list members", "project_id", projectID, "error", err)
		return nil, errors.NewInternalError("Failed to get project members")
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID())
	}

	emails := make(map[string]string, len(ids))
	if users, err := uc.userRepo.GetByIDs(ctx, ids); err != nil {
		uc.logger.Warnw("failed to resolve member emails", "project_id", projectID, "error", err)
	} else {
		for _, u := range users {
			emails[u.ID()] = u.Email()
		}
	}

	result := make([]*dto.MemberDTO, 0, len(members))
	for _, m := range members {
		item := dto.ToMemberDTO(m)
		if email, ok := emails[m.UserID()]; ok {
			item.Email = &email
		}
		result = append(result, item)
	}
	return result, nil
}
