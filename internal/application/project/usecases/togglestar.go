package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/domain/project"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type ToggleStarUseCase struct {
	policy     *access.Policy
	memberRepo project.MemberRepository
	logger     logger.Interface
}

func NewToggleStarUseCase(policy *access.Policy, memberRepo project.MemberRepository, logger logger.Interface) *ToggleStarUseCase {
	return &ToggleStarUseCase{
		policy:     policy,
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// Execute flips the caller's star on the project and returns the new value.
func (uc *ToggleStarUseCase) Execute(ctx context.Context, projectID, userID string) (bool, error) {
	uc.logger.Infow("executing toggle star use case", "project_id", projectID, "user_id", userID)

	membership, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: projectID,
		UserID:    userID,
		Resource:  access.ResourceProject,
		Action:    access.ActionStar,
		Denied:    msgAccessDenied,
	})
	if err != nil {
		return false, err
	}

	starred := membership.Member.ToggleStar()
	if err := uc.memberRepo.UpdateStar(ctx, membership.Member); err != nil {
		uc.logger.Errorw("failed to update star", "project_id", projectID, "error", err)
		return false, errors.NewInternalError("Failed to update star status")
	}
	return starred, nil
}
