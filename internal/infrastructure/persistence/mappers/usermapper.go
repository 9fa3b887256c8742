package mappers

import (
	"issueflow/internal/domain/user"
	"issueflow/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between User domain entities and persistence models.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
	ToDomainList(ms []models.UserModel) ([]*user.User, error)
}

// UserMapperImpl is the concrete implementation of UserMapper.
type UserMapperImpl struct{}

// NewUserMapper creates a new UserMapper.
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	if u == nil {
		return nil
	}
	return &models.UserModel{
		ID:                      u.ID(),
		Email:                   u.Email(),
		DisplayName:             u.DisplayName(),
		PasswordHash:            u.PasswordHash(),
		NotificationPreferences: toJSONColumn(u.Preferences()),
		CreatedAt:               u.CreatedAt(),
		UpdatedAt:               u.UpdatedAt(),
	}
}

// ToDomain falls back to the default preferences for rows written before
// the preferences column was populated.
func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	prefs := user.DefaultNotificationPreferences()
	if err := fromJSONColumn(model.NotificationPreferences, &prefs, "notification preferences", model.ID); err != nil {
		return nil, err
	}

	return user.ReconstructUser(
		model.ID,
		model.Email,
		model.DisplayName,
		model.PasswordHash,
		prefs,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *UserMapperImpl) ToDomainList(ms []models.UserModel) ([]*user.User, error) {
	users := make([]*user.User, 0, len(ms))
	for i := range ms {
		u, err := m.ToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
