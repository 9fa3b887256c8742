package dto

import (
	"time"

	"issueflow/internal/domain/project"
	"issueflow/internal/shared/mapper"
)

type ProjectDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	ProjectKey  string     `json:"project_key"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
	IsStarred   *bool      `json:"is_starred,omitempty"`
	MemberCount *int64     `json:"member_count,omitempty"`
	TicketCount *int64     `json:"ticket_count,omitempty"`
}

type MemberDTO struct {
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	IsStarred bool      `json:"is_starred"`
	CreatedAt time.Time `json:"created_at"`
	Email     *string   `json:"email,omitempty"`
}

func ToProjectDTO(p *project.Project) *ProjectDTO {
	if p == nil {
		return nil
	}
	return &ProjectDTO{
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

func ToProjectDTOs(projects []*project.Project) []*ProjectDTO {
	return mapper.MapSlice(projects, ToProjectDTO)
}

// WithStar returns d annotated with the caller's star flag.
func (d *ProjectDTO) WithStar(starred bool) *ProjectDTO {
	d.IsStarred = &starred
	return d
}

func ToMemberDTO(m *project.Member) *MemberDTO {
	if m == nil {
		return nil
	}
	return &MemberDTO{
		ProjectID: m.ProjectID(),
		UserID:    m.UserID(),
		IsStarred: m.IsStarred(),
		CreatedAt: m.CreatedAt(),
	}
}
