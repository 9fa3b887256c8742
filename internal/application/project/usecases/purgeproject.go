package usecases

import (
	"context"

	"issueflow/internal/application/access"
	"issueflow/internal/domain/project"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/db"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type PurgeProjectUseCase struct {
	policy      *access.Policy
	projectRepo project.Repository
	memberRepo  project.MemberRepository
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	txManager   db.Transactor
	logger      logger.Interface
}

func NewPurgeProjectUseCase(
	policy *access.Policy,
	projectRepo project.Repository,
	memberRepo project.MemberRepository,
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	txManager db.Transactor,
	logger logger.Interface,
) *PurgeProjectUseCase {
	return &PurgeProjectUseCase{
		policy:      policy,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute permanently deletes a trashed project together with its comments,
// tickets and memberships, in that order, inside one transaction.
func (uc *PurgeProjectUseCase) Execute(ctx context.Context, projectID, userID string) error {
	uc.logger.Infow("executing purge project use case", "project_id", projectID, "user_id", userID)

	p, err := uc.policy.LoadProject(ctx, projectID, msgProjectNotFound)
	if err != nil {
		return err
	}
	if err := uc.policy.RequireCreator(p, userID, access.ActionPurge, "Only the project creator can permanently delete the project"); err != nil {
		return err
	}
	if err := p.EnsurePurgeable(); err != nil {
		return toAppError(err)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		ticketIDs, err := uc.ticketRepo.ListIDsByProject(txCtx, projectID)
		if err != nil {
			return err
		}
		if err := uc.commentRepo.DeleteByTickets(txCtx, ticketIDs); err != nil {
			return err
		}
		if err := uc.ticketRepo.DeleteByProject(txCtx, projectID); err != nil {
			return err
		}
		if err := uc.memberRepo.DeleteByProject(txCtx, projectID); err != nil {
			return err
		}
		return uc.projectRepo.Delete(txCtx, projectID)
	})
	if err != nil {
		uc.logger.Errorw("failed to purge project", "project_id", projectID, "error", err)
		return errors.NewInternalError("Failed to delete project")
	}

	uc.logger.Infow("project permanently deleted", "project_id", projectID)
	return nil
}
