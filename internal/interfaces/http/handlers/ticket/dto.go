package ticket

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"issueflow/internal/application/ticket/usecases"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/shared/biztime"
	"issueflow/internal/shared/errors"
)

type CreateTicketRequest struct {
	ProjectID       string           `json:"project_id" validate:"required" msg:"Title and project_id are required"`
	Title           string           `json:"title" validate:"required" msg:"Title and project_id are required"`
	Description     string           `json:"description"`
	Priority        string           `json:"priority" example:"medium"`
	Status          string           `json:"status" example:"todo"`
	TicketType      string           `json:"ticket_type" example:"task"`
	Assignee        *string          `json:"assignee"`
	Labels          []string         `json:"labels"`
	DueDate         *string          `json:"due_date" example:"2026-03-01"`
	StoryPoints     *float64         `json:"story_points"`
	Subtasks        []ticket.Subtask `json:"subtasks"`
	LinkedTicketIDs []string         `json:"linked_ticket_ids"`
}

func (r *CreateTicketRequest) ToCommand(userID string) (usecases.CreateTicketCommand, error) {
	var due *time.Time
	if r.DueDate != nil {
		parsed, err := biztime.ParseDate(*r.DueDate)
		if err != nil {
			return usecases.CreateTicketCommand{}, errors.NewValidationError("Invalid due_date. Use YYYY-MM-DD")
		}
		due = parsed
	}

	return usecases.CreateTicketCommand{
		ProjectID:       r.ProjectID,
		Title:           r.Title,
		Description:     r.Description,
		Priority:        r.Priority,
		Status:          r.Status,
		TicketType:      r.TicketType,
		Assignee:        r.Assignee,
		Labels:          r.Labels,
		DueDate:         due,
		StoryPoints:     r.StoryPoints,
		Subtasks:        r.Subtasks,
		LinkedTicketIDs: r.LinkedTicketIDs,
		UserID:          userID,
	}, nil
}

// UpdateTicketRequest documents the accepted fields. The handler decodes the
// body by key so an explicit null can be told apart from an absent field.
type UpdateTicketRequest struct {
	Title           *string          `json:"title,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Priority        *string          `json:"priority,omitempty"`
	Status          *string          `json:"status,omitempty"`
	TicketType      *string          `json:"ticket_type,omitempty"`
	Assignee        *string          `json:"assignee,omitempty"`
	Labels          []string         `json:"labels,omitempty"`
	DueDate         *string          `json:"due_date,omitempty"`
	StoryPoints     *float64         `json:"story_points,omitempty"`
	Subtasks        []ticket.Subtask `json:"subtasks,omitempty"`
	LinkedTicketIDs []string         `json:"linked_ticket_ids,omitempty"`
}

var jsonNull = []byte("null")

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// decodeTicketPatch turns a raw update body into a ticket.Patch. Present keys
// are applied; null clears the nullable fields and is ignored elsewhere.
// Non-array subtasks and linked_ticket_ids are ignored.
func decodeTicketPatch(body map[string]json.RawMessage) (ticket.Patch, error) {
	var patch ticket.Patch

	stringField := func(key string, dst **string) error {
		raw, ok := body[key]
		if !ok || isNull(raw) {
			return nil
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return errors.NewValidationError("Invalid " + key)
		}
		*dst = &v
		return nil
	}

	for key, dst := range map[string]**string{
		"title":       &patch.Title,
		"description": &patch.Description,
		"priority":    &patch.Priority,
		"status":      &patch.Status,
		"ticket_type": &patch.TicketType,
	} {
		if err := stringField(key, dst); err != nil {
			return ticket.Patch{}, err
		}
	}

	if raw, ok := body["assignee"]; ok {
		patch.Assignee.Set = true
		if !isNull(raw) {
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return ticket.Patch{}, errors.NewValidationError("Invalid assignee")
			}
			patch.Assignee.Value = &v
		}
	}

	if raw, ok := body["labels"]; ok {
		patch.Labels = []string{}
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &patch.Labels); err != nil {
				return ticket.Patch{}, errors.NewValidationError("Invalid labels")
			}
		}
	}

	if raw, ok := body["due_date"]; ok {
		patch.DueDate.Set = true
		if !isNull(raw) {
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return ticket.Patch{}, errors.NewValidationError("Invalid due_date. Use YYYY-MM-DD")
			}
			due, err := biztime.ParseDate(v)
			if err != nil {
				return ticket.Patch{}, errors.NewValidationError("Invalid due_date. Use YYYY-MM-DD")
			}
			patch.DueDate.Value = due
		}
	}

	if raw, ok := body["story_points"]; ok {
		patch.StoryPoints.Set = true
		if !isNull(raw) {
			var v float64
			if err := json.Unmarshal(raw, &v); err != nil {
				return ticket.Patch{}, errors.NewValidationError("Invalid story_points")
			}
			patch.StoryPoints.Value = &v
		}
	}

	if raw, ok := body["subtasks"]; ok {
		var subtasks []ticket.Subtask
		if err := json.Unmarshal(raw, &subtasks); err == nil && subtasks != nil {
			patch.Subtasks = subtasks
		}
	}

	if raw, ok := body["linked_ticket_ids"]; ok {
		var ids []string
		if err := json.Unmarshal(raw, &ids); err == nil && ids != nil {
			patch.LinkedTicketIDs = ids
		}
	}

	return patch, nil
}

type ListTicketsRequest struct {
	ProjectID  string
	Status     string
	Priority   string
	TicketType string
	Assignee   string
}

func (r *ListTicketsRequest) ToQuery(userID string) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		ProjectID:  r.ProjectID,
		Status:     r.Status,
		Priority:   r.Priority,
		TicketType: r.TicketType,
		Assignee:   r.Assignee,
		UserID:     userID,
	}
}

func parseListTicketsRequest(c *gin.Context) *ListTicketsRequest {
	return &ListTicketsRequest{
		ProjectID:  c.Query("project_id"),
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		TicketType: c.Query("ticket_type"),
		Assignee:   c.Query("assignee"),
	}
}

type CreateCommentRequest struct {
	TicketID string `json:"ticket_id" validate:"required" msg:"ticket_id and text are required"`
	Text     string `json:"text" validate:"required" msg:"ticket_id and text are required"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required" msg:"Text is required"`
}
