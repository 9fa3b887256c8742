package usecases

import (
	"context"
	"strings"

	"issueflow/internal/application/access"
	"issueflow/internal/application/project/dto"
	"issueflow/internal/domain/project"
	"issueflow/internal/domain/user"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

const msgAlreadyMember = "User is already a member of this project"

type AddMemberCommand struct {
	ProjectID    string
	UserID       string
	MemberUserID string
}

type AddMemberUseCase struct {
	policy     *access.Policy
	memberRepo project.MemberRepository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewAddMemberUseCase(
	policy *access.Policy,
	memberRepo project.MemberRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *AddMemberUseCase {
	return &AddMemberUseCase{
		policy:     policy,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (uc *AddMemberUseCase) Execute(ctx context.Context, cmd AddMemberCommand) (*dto.MemberDTO, error) {
	uc.logger.Infow("executing add member use case", "project_id", cmd.ProjectID, "user_id", cmd.UserID, "member_user_id", cmd.MemberUserID)

	memberUserID := strings.TrimSpace(cmd.MemberUserID)
	if memberUserID == "" {
		return nil, errors.NewValidationError("user_id is required")
	}

	p, err := uc.policy.LoadProject(ctx, cmd.ProjectID, msgProjectNotFound)
	if err != nil {
		return nil, err
	}
	if err := uc.policy.RequireCreator(p, cmd.UserID, access.ActionAddMember, "Only the project creator (admin) can add members"); err != nil {
		return nil, err
	}
	if _, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: p.ID(),
		UserID:    cmd.UserID,
		Resource:  access.ResourceProject,
		Action:    access.ActionRead,
		Denied:    msgAccessDenied,
	}); err != nil {
		return nil, err
	}

	target, err := uc.userRepo.GetByID(ctx, memberUserID)
	if err != nil {
		uc.logger.Errorw("failed to look up user", "error", err)
		return nil, errors.NewInternalError("Failed to add member")
	}
	if target == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	existing, err := uc.memberRepo.Get(ctx, p.ID(), memberUserID)
	if err != nil {
		uc.logger.Errorw("failed to check membership", "error", err)
		return nil, errors.NewInternalError("Failed to add member")
	}
	if existing != nil {
		return nil, errors.NewValidationError(msgAlreadyMember)
	}

	member, err := project.NewMember(p.ID(), memberUserID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.memberRepo.Create(ctx, member); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewValidationError(msgAlreadyMember)
		}
		uc.logger.Errorw("failed to create membership", "error", err)
		return nil, errors.NewInternalError("Failed to add member")
	}

	uc.logger.Infow("member added successfully", "project_id", p.ID(), "member_id", memberUserID)
	return dto.ToMemberDTO(member), nil
}
