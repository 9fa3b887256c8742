package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"issueflow/internal/domain/ticket"
	vo "issueflow/internal/domain/ticket/valueobjects"
	"issueflow/internal/infrastructure/persistence/mappers"
	"issueflow/internal/infrastructure/persistence/models"
	"issueflow/internal/shared/db"
	"issueflow/internal/shared/logger"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketRepository(gormDB *gorm.DB, log logger.Interface) *TicketRepository {
	return &TicketRepository{
		db:     gormDB,
		mapper: mappers.NewTicketMapper(),
		logger: log,
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create ticket", "ticket_id", t.ID(), "project_id", t.ProjectID(), "error", err)
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns. Number, project and creator never change.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("id = ?", t.ID()).
		Updates(map[string]any{
			"title":             model.Title,
			"description":       model.Description,
			"priority":          model.Priority,
			"status":            model.Status,
			"ticket_type":       model.TicketType,
			"assignee":          model.Assignee,
			"labels":            model.Labels,
			"due_date":          model.DueDate,
			"story_points":      model.StoryPoints,
			"subtasks":          model.Subtasks,
			"linked_ticket_ids": model.LinkedTicketIDs,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", result.Error)
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, ticketID string) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", ticketID).Delete(&models.TicketModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", ticketID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket by ID: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("project_id = ?", filter.ProjectID)

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.TicketType != nil {
		query = query.Where("ticket_type = ?", filter.TicketType.String())
	}
	if filter.Assignee != nil {
		query = query.Where("assignee = ?", *filter.Assignee)
	}

	var ms []models.TicketModel
	if err := query.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return r.mapper.ToDomainList(ms)
}

func (r *TicketRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}

// NextNumber reads max(ticket_number)+1. Two concurrent transactions can read
// the same value; the (project_id, ticket_number) unique index rejects the loser.
func (r *TicketRepository) NextNumber(ctx context.Context, projectID string) (int, error) {
	var maxNumber int
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(ticket_number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute next ticket number: %w", err)
	}
	return maxNumber + 1, nil
}

func (r *TicketRepository) ListIDsByProject(ctx context.Context, projectID string) ([]string, error) {
	var ids []string
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("project_id = ?", projectID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket ids: %w", err)
	}
	return ids, nil
}

func (r *TicketRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("project_id = ?", projectID).Delete(&models.TicketModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete project tickets: %w", err)
	}
	return nil
}

type ticketStatsRow struct {
	Status     string
	Priority   string
	TicketType string
	Count      int64
}

func (r *TicketRepository) Stats(ctx context.Context, projectID string) (*ticket.Stats, error) {
	var rows []ticketStatsRow
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Select("status, priority, ticket_type, COUNT(*) AS count").
		Where("project_id = ?", projectID).
		Group("status, priority, ticket_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute ticket stats: %w", err)
	}

	stats := ticket.NewStats()
	for _, row := range rows {
		stats.AddN(vo.TicketStatus(row.Status), vo.Priority(row.Priority), vo.TicketType(row.TicketType), row.Count)
	}
	return stats, nil
}

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewCommentRepository(gormDB *gorm.DB) *CommentRepository {
	return &CommentRepository{
		db:     gormDB,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.CommentToModel(c)).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, c *ticket.Comment) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CommentModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]any{
			"text":       c.Text(),
			"updated_at": c.UpdatedAt(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, commentID string) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", commentID).Delete(&models.CommentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, commentID string) (*ticket.Comment, error) {
	var model models.CommentModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", commentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment by ID: %w", err)
	}
	return r.mapper.CommentToDomain(&model)
}

func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID string) ([]*ticket.Comment, error) {
	var ms []models.CommentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*ticket.Comment, 0, len(ms))
	for i := range ms {
		c, err := r.mapper.CommentToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func (r *CommentRepository) DeleteByTicket(ctx context.Context, ticketID string) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID).Delete(&models.CommentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket comments: %w", err)
	}
	return nil
}

func (r *CommentRepository) DeleteByTickets(ctx context.Context, ticketIDs []string) error {
	if len(ticketIDs) == 0 {
		return nil
	}
	if err := db.GetTxFromContext(ctx, r.db).Where("ticket_id IN ?", ticketIDs).Delete(&models.CommentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}

var (
	_ ticket.Repository        = (*TicketRepository)(nil)
	_ ticket.CommentRepository = (*CommentRepository)(nil)
)
