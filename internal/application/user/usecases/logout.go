package usecases

import (
	"context"

	"issueflow/internal/domain/user"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type LogoutUseCase struct {
	sessionRepo user.SessionRepository
	logger      logger.Interface
}

func NewLogoutUseCase(sessionRepo user.SessionRepository, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute revokes the session behind the caller's token.
func (uc *LogoutUseCase) Execute(ctx context.Context, sessionID string) error {
	uc.logger.Infow("executing logout use case", "session_id", sessionID)

	if err := uc.sessionRepo.Delete(ctx, sessionID); err != nil {
		uc.logger.Errorw("failed to delete session", "session_id", sessionID, "error", err)
		return errors.NewInternalError("Logout failed")
	}
	return nil
}
