package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/application/project/dto"
	"issueflow/internal/domain/project"
	"issueflow/internal/domain/user"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/utils"
)

const msgAlreadyInvited = "This user is already a member of the project"

type InviteMemberCommand struct {
	ProjectID string
	UserID    string
	Email     string
}

type InviteMemberUseCase struct {
	policy     *access.Policy
	memberRepo project.MemberRepository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewInviteMemberUseCase(
	policy *access.Policy,
	memberRepo project.MemberRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *InviteMemberUseCase {
	return &InviteMemberUseCase{
		policy:     policy,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Execute adds the registered user owning cmd.Email to the project. The
// returned member carries that email.
func (uc *InviteMemberUseCase) Execute(ctx context.Context, cmd InviteMemberCommand) (*dto.MemberDTO, error) {
	email := utils.NormalizeEmail(cmd.Email)
	uc.logger.Infow("executing invite member use case", "project_id", cmd.ProjectID, "user_id", cmd.UserID)

	if email == "" || !utils.IsValidEmail(email) {
		return nil, errors.NewValidationError("Valid email is required")
	}

	p, err := uc.policy.LoadProject(ctx, cmd.ProjectID, msgProjectNotFound)
	if err != nil {
		return nil, err
	}
	if err := uc.policy.RequireCreator(p, cmd.UserID, access.ActionInvite, "Only the project creator (admin) can invite members"); err != nil {
		return nil, err
	}

	invitee, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to look up user by email", "email", utils.MaskEmail(email), "error", err)
		return nil, errors.NewInternalError("Failed to invite member")
	}
	if invitee == nil {
		return nil, errors.NewNotFoundError("No user found with this email. They must register first.")
	}

	existing, err := uc.memberRepo.Get(ctx, p.ID(), invitee.ID())
	if err != nil {
		uc.logger.Errorw("failed to check membership", "error", err)
		return nil, errors.NewInternalError("Failed to invite member")
	}
	if existing != nil {
		return nil, errors.NewValidationError(msgAlreadyInvited)
	}

	member, err := project.NewMember(p.ID(), invitee.ID())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.memberRepo.Create(ctx, member); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewValidationError(msgAlreadyInvited)
		}
		uc.logger.Errorw("failed to create membership", "error", err)
		return nil, errors.NewInternalError("Failed to invite member")
	}

	uc.logger.Infow("member invited successfully", "project_id", p.ID(), "member_id", invitee.ID())
	result := dto.ToMemberDTO(member)
	result.Email = &email
	return result, nil
}
