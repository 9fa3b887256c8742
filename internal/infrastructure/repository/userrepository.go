package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"issueflow/internal/domain/user"
	"issueflow/internal/infrastructure/persistence/mappers"
	"issueflow/internal/infrastructure/persistence/models"
	"issueflow/internal/shared/db"
	"issueflow/internal/shared/logger"
)

const digestBatchSize = 200

// UserRepository implements user.Repository using GORM
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

// NewUserRepository creates a new user repository
func NewUserRepository(gormDB *gorm.DB, log logger.Interface) *UserRepository {
	return &UserRepository{
		db:     gormDB,
		mapper: mappers.NewUserMapper(),
		logger: log,
	}
}

// Create persists a new user. A duplicate email surfaces as the driver's unique violation.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.ToModel(u)).Error; err != nil {
		r.logger.Errorw("failed to create user", "user_id", u.ID(), "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]any{
			"display_name":             model.DisplayName,
			"password_hash":            model.PasswordHash,
			"notification_preferences": model.NotificationPreferences,
			"updated_at":               model.UpdatedAt,
		}).Error
	if err != nil {
		r.logger.Errorw("failed to update user", "user_id", u.ID(), "error", err)
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}

	var ms []models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}
	return r.mapper.ToDomainList(ms)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// ListDigestSubscribers scans users in batches and filters on the decoded
// preferences, since JSON column queries differ across drivers.
func (r *UserRepository) ListDigestSubscribers(ctx context.Context) ([]*user.User, error) {
	var subscribers []*user.User
	var batch []models.UserModel
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		FindInBatches(&batch, digestBatchSize, func(tx *gorm.DB, _ int) error {
			users, err := r.mapper.ToDomainList(batch)
			if err != nil {
				return err
			}
			for _, u := range users {
				if u.Preferences().EmailDigest {
					subscribers = append(subscribers, u)
				}
			}
			return nil
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list digest subscribers: %w", result.Error)
	}
	return subscribers, nil
}

var _ user.Repository = (*UserRepository)(nil)
