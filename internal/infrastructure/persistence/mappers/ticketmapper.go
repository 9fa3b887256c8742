package mappers

import (
	"issueflow/internal/domain/ticket"
	vo "issueflow/internal/domain/ticket/valueobjects"
	"issueflow/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain converts a ticket persistence model to a domain entity.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	ToDomainList(ms []models.TicketModel) ([]*ticket.Ticket, error)

	CommentToModel(c *ticket.Comment) *models.CommentModel

	// CommentToDomain converts a comment persistence model to a domain entity.
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

// ToModel converts a ticket domain entity to a persistence model.
// Empty collections are stored as [] so readers never see null.
func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	labels := t.Labels()
	if labels == nil {
		labels = []string{}
	}
	subtasks := t.Subtasks()
	if subtasks == nil {
		subtasks = []ticket.Subtask{}
	}
	links := t.LinkedTicketIDs()
	if links == nil {
		links = []string{}
	}

	return &models.TicketModel{
		ID:              t.ID(),
		ProjectID:       t.ProjectID(),
		TicketNumber:    t.Number(),
		Title:           t.Title(),
		Description:     t.Description(),
		Priority:        t.Priority().String(),
		Status:          t.Status().String(),
		TicketType:      t.TicketType().String(),
		Assignee:        t.Assignee(),
		Labels:          toJSONColumn(labels),
		DueDate:         t.DueDate(),
		StoryPoints:     t.StoryPoints(),
		Subtasks:        toJSONColumn(subtasks),
		LinkedTicketIDs: toJSONColumn(links),
		CreatedBy:       t.CreatedBy(),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
}

// ToDomain converts a ticket persistence model to a domain entity.
// Comments are loaded separately by the comment repository.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	var labels []string
	if err := fromJSONColumn(model.Labels, &labels, "ticket labels", model.ID); err != nil {
		return nil, err
	}
	var subtasks []ticket.Subtask
	if err := fromJSONColumn(model.Subtasks, &subtasks, "ticket subtasks", model.ID); err != nil {
		return nil, err
	}
	var links []string
	if err := fromJSONColumn(model.LinkedTicketIDs, &links, "linked ticket ids", model.ID); err != nil {
		return nil, err
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.ProjectID,
		model.TicketNumber,
		model.Title,
		model.Description,
		vo.Priority(model.Priority),
		vo.TicketStatus(model.Status),
		vo.TicketType(model.TicketType),
		model.Assignee,
		labels,
		model.DueDate,
		model.StoryPoints,
		subtasks,
		links,
		model.CreatedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TicketMapperImpl) ToDomainList(ms []models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, 0, len(ms))
	for i := range ms {
		t, err := m.ToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		UserID:    c.UserID(),
		Text:      c.Text(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// CommentToDomain converts a comment persistence model to a domain entity.
func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	if model == nil {
		return nil, nil
	}
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.UserID,
		model.Text,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
