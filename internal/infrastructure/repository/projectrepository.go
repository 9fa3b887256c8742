package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"issueflow/internal/domain/project"
	"issueflow/internal/infrastructure/persistence/mappers"
	"issueflow/internal/infrastructure/persistence/models"
	"issueflow/internal/shared/db"
	"issueflow/internal/shared/logger"
)

// ProjectRepository implements project.Repository using GORM
type ProjectRepository struct {
	db     *gorm.DB
	mapper mappers.ProjectMapper
	logger logger.Interface
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(gormDB *gorm.DB, log logger.Interface) *ProjectRepository {
	return &ProjectRepository{
		db:     gormDB,
		mapper: mappers.NewProjectMapper(),
		logger: log,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	model := r.mapper.ToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create project", "project_id", p.ID(), "error", err)
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Update writes every mutable column. Nil description and deleted_at are written as NULL.
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProjectModel{}).
		Where("id = ?", p.ID()).
		Updates(map[string]any{
			"title":       p.Title(),
			"description": p.Description(),
			"project_key": p.ProjectKey(),
			"updated_at":  p.UpdatedAt(),
			"deleted_at":  p.DeletedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update project", "project_id", p.ID(), "error", result.Error)
		return fmt.Errorf("failed to update project: %w", result.Error)
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", projectID).Delete(&models.ProjectModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete project", "project_id", projectID, "error", err)
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*project.Project, error) {
	var model models.ProjectModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", projectID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project by ID: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *ProjectRepository) ListActiveByIDs(ctx context.Context, projectIDs []string) ([]*project.Project, error) {
	if len(projectIDs) == 0 {
		return []*project.Project{}, nil
	}

	var ms []models.ProjectModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.NotDeleted()).
		Where("id IN ?", projectIDs).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return r.mapper.ToDomainList(ms)
}

func (r *ProjectRepository) ListTrashedByCreator(ctx context.Context, userID string) ([]*project.Project, error) {
	var ms []models.ProjectModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OnlyDeleted()).
		Where("created_by = ?", userID).
		Order("deleted_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trashed projects: %w", err)
	}
	return r.mapper.ToDomainList(ms)
}

// MemberRepository implements project.MemberRepository using GORM
type MemberRepository struct {
	db     *gorm.DB
	mapper mappers.ProjectMapper
}

func NewMemberRepository(gormDB *gorm.DB) *MemberRepository {
	return &MemberRepository{
		db:     gormDB,
		mapper: mappers.NewProjectMapper(),
	}
}

// Create returns the driver error untouched (wrapped) so callers can detect duplicates.
func (r *MemberRepository) Create(ctx context.Context, m *project.Member) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.MemberToModel(m)).Error; err != nil {
		return fmt.Errorf("failed to create project member: %w", err)
	}
	return nil
}

func (r *MemberRepository) Get(ctx context.Context, projectID, userID string) (*project.Member, error) {
	var model models.ProjectMemberModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project member: %w", err)
	}
	return r.mapper.MemberToDomain(&model), nil
}

func (r *MemberRepository) UpdateStar(ctx context.Context, m *project.Member) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProjectMemberModel{}).
		Where("project_id = ? AND user_id = ?", m.ProjectID(), m.UserID()).
		Update("is_starred", m.IsStarred()).Error
	if err != nil {
		return fmt.Errorf("failed to update project star: %w", err)
	}
	return nil
}

func (r *MemberRepository) ListByUser(ctx context.Context, userID string) ([]*project.Member, error) {
	var ms []models.ProjectMemberModel
	if err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return r.mapper.MemberToDomainList(ms), nil
}

func (r *MemberRepository) ListByProject(ctx context.Context, projectID string) ([]*project.Member, error) {
	var ms []models.ProjectMemberModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	return r.mapper.MemberToDomainList(ms), nil
}

func (r *MemberRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProjectMemberModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count project members: %w", err)
	}
	return count, nil
}

func (r *MemberRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("project_id = ?", projectID).Delete(&models.ProjectMemberModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete project members: %w", err)
	}
	return nil
}

var (
	_ project.Repository       = (*ProjectRepository)(nil)
	_ project.MemberRepository = (*MemberRepository)(nil)
)
