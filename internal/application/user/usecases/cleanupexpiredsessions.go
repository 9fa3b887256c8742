package usecases

import (
	"context"
	"fmt"

	"issueflow/internal/domain/user"
	"issueflow/internal/shared/logger"
)

// CleanupExpiredSessionsUseCase is run by the scheduler.
type CleanupExpiredSessionsUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewCleanupExpiredSessionsUseCase(sessionRepo user.SessionRepository, logger logger.Interface) *CleanupExpiredSessionsUseCase {
	return &CleanupExpiredSessionsUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (uc *CleanupExpiredSessionsUseCase) Execute(ctx context.Context) (int, error) {
	removed, err := uc.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return int(removed), nil
}
