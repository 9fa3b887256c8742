package mappers

import (
	"issueflow/internal/domain/project"
	"issueflow/internal/infrastructure/persistence/models"
)

// ProjectMapper handles the conversion between project entities and persistence models.
type ProjectMapper interface {
	ToModel(p *project.Project) *models.ProjectModel
	ToDomain(model *models.ProjectModel) (*project.Project, error)
	ToDomainList(ms []models.ProjectModel) ([]*project.Project, error)

	MemberToModel(m *project.Member) *models.ProjectMemberModel
	MemberToDomain(model *models.ProjectMemberModel) *project.Member
	MemberToDomainList(ms []models.ProjectMemberModel) []*project.Member
}

// ProjectMapperImpl is the concrete implementation of ProjectMapper.
type ProjectMapperImpl struct{}

// NewProjectMapper creates a new ProjectMapper.
func NewProjectMapper() ProjectMapper {
	return &ProjectMapperImpl{}
}

func (m *ProjectMapperImpl) ToModel(p *project.Project) *models.ProjectModel {
	if p == nil {
		return nil
	}
	return &models.ProjectModel{
		ID:          p.ID(),
		Title:       p.Title(),
		Description: p.Description(),
		ProjectKey:  p.ProjectKey(),
		CreatedBy:   p.CreatedBy(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
		DeletedAt:   p.DeletedAt(),
	}
}

func (m *ProjectMapperImpl) ToDomain(model *models.ProjectModel) (*project.Project, error) {
	if model == nil {
		return nil, nil
	}
	return project.ReconstructProject(
		model.ID,
		model.Title,
		model.Description,
		model.ProjectKey,
		model.CreatedBy,
		model.CreatedAt,
		model.UpdatedAt,
		model.DeletedAt,
	)
}

func (m *ProjectMapperImpl) ToDomainList(ms []models.ProjectModel) ([]*project.Project, error) {
	projects := make([]*project.Project, 0, len(ms))
	for i := range ms {
		p, err := m.ToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (m *ProjectMapperImpl) MemberToModel(member *project.Member) *models.ProjectMemberModel {
	if member == nil {
		return nil
	}
	return &models.ProjectMemberModel{
		ProjectID: member.ProjectID(),
		UserID:    member.UserID(),
		IsStarred: member.IsStarred(),
		CreatedAt: member.CreatedAt(),
	}
}

func (m *ProjectMapperImpl) MemberToDomain(model *models.ProjectMemberModel) *project.Member {
	if model == nil {
		return nil
	}
	return project.ReconstructMember(model.ProjectID, model.UserID, model.IsStarred, model.CreatedAt)
}

func (m *ProjectMapperImpl) MemberToDomainList(ms []models.ProjectMemberModel) []*project.Member {
	members := make([]*project.Member, 0, len(ms))
	for i := range ms {
		members = append(members, m.MemberToDomain(&ms[i]))
	}
	return members
}
