package project

import (
	"issueflow/internal/application/project/usecases"
)

type CreateProjectRequest struct {
	Title       string  `json:"title" example:"Alpha" validate:"required" msg:"Title is required"`
	Description *string `json:"description,omitempty"`
	ProjectKey  string  `json:"project_key,omitempty" example:"ALP"`
}

func (r *CreateProjectRequest) ToCommand(userID string) usecases.CreateProjectCommand {
	return usecases.CreateProjectCommand{
		Title:       r.Title,
		Description: r.Description,
		ProjectKey:  r.ProjectKey,
		UserID:      userID,
	}
}

// UpdateProjectRequest leaves absent fields untouched.
type UpdateProjectRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ProjectKey  *string `json:"project_key,omitempty"`
}

func (r *UpdateProjectRequest) ToCommand(projectID, userID string) usecases.UpdateProjectCommand {
	return usecases.UpdateProjectCommand{
		ProjectID:   projectID,
		UserID:      userID,
		Title:       r.Title,
		Description: r.Description,
		ProjectKey:  r.ProjectKey,
	}
}

type InviteMemberRequest struct {
	Email string `json:"email" example:"bob@example.com" validate:"required,mailbox" msg:"Valid email is required"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id" validate:"required" msg:"user_id is required"`
}
