package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"issueflow/internal/domain/user"
	"issueflow/internal/infrastructure/persistence/mappers"
	"issueflow/internal/infrastructure/persistence/models"
	"issueflow/internal/shared/biztime"
	"issueflow/internal/shared/db"
)

type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
}

func NewSessionRepository(gormDB *gorm.DB) *SessionRepository {
	return &SessionRepository{
		db:     gormDB,
		mapper: mappers.NewSessionMapper(),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *user.Session) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.ToModel(session)).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	var model models.SessionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", sessionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", sessionID).Delete(&models.SessionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteByUserExcept(ctx context.Context, userID, keepID string) error {
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND id <> ?", userID, keepID).
		Delete(&models.SessionModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete sessions by user ID: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("expires_at <= ?", biztime.NowUTC()).
		Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

var _ user.SessionRepository = (*SessionRepository)(nil)
