package mappers

import (
	"issueflow/internal/domain/notification"
	"issueflow/internal/infrastructure/persistence/models"
)

type NotificationMapper interface {
	ToModel(n *notification.Notification) *models.NotificationModel
	ToDomain(model *models.NotificationModel) (*notification.Notification, error)
	ToDomainList(ms []models.NotificationModel) ([]*notification.Notification, error)
}

type NotificationMapperImpl struct{}

func NewNotificationMapper() NotificationMapper {
	return &NotificationMapperImpl{}
}

func (m *NotificationMapperImpl) ToModel(n *notification.Notification) *models.NotificationModel {
	if n == nil {
		return nil
	}
	return &models.NotificationModel{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      n.Type().String(),
		Title:     n.Title(),
		IsRead:    n.IsRead(),
		Metadata:  toJSONColumn(n.Metadata()),
		CreatedAt: n.CreatedAt(),
	}
}

func (m *NotificationMapperImpl) ToDomain(model *models.NotificationModel) (*notification.Notification, error) {
	if model == nil {
		return nil, nil
	}

	var metadata notification.Metadata
	if err := fromJSONColumn(model.Metadata, &metadata, "notification metadata", model.ID); err != nil {
		return nil, err
	}

	return notification.ReconstructNotification(
		model.ID,
		model.UserID,
		notification.Type(model.Type),
		model.Title,
		model.IsRead,
		metadata,
		model.CreatedAt,
	)
}

func (m *NotificationMapperImpl) ToDomainList(ms []models.NotificationModel) ([]*notification.Notification, error) {
	notifications := make([]*notification.Notification, 0, len(ms))
	for i := range ms {
		n, err := m.ToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}
