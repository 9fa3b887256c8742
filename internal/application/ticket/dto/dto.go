package dto

import (
	"time"

	"issueflow/internal/domain/ticket"
	vo "issueflow/internal/domain/ticket/valueobjects"
	"issueflow/internal/shared/biztime"
)

// Renderer turns stored markdown into HTML.
type Renderer interface {
	Render(markdown string) (string, error)
}

type TicketDTO struct {
	ID              string           `json:"id"`
	ProjectID       string           `json:"project_id"`
	TicketNumber    int              `json:"ticket_number"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	DescriptionHTML string           `json:"description_html,omitempty"`
	Priority        string           `json:"priority"`
	Status          string           `json:"status"`
	TicketType      string           `json:"ticket_type"`
	Assignee        *string          `json:"assignee"`
	Labels          []string         `json:"labels"`
	DueDate         *string          `json:"due_date"`
	StoryPoints     *float64         `json:"story_points"`
	Subtasks        []ticket.Subtask `json:"subtasks"`
	LinkedTicketIDs []string         `json:"linked_ticket_ids"`
	CreatedBy       string           `json:"created_by"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type CommentDTO struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	TextHTML  string    `json:"text_html,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StatsDTO struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByPriority map[string]int64 `json:"byPriority"`
	ByType     map[string]int64 `json:"byType"`
}

func ToTicketDTO(t *ticket.Ticket, r Renderer) *TicketDTO {
	if t == nil {
		return nil
	}

	var dueDate *string
	if d := t.DueDate(); d != nil {
		formatted := biztime.FormatDate(d)
		dueDate = &formatted
	}

	return &TicketDTO{
		ID:              t.ID(),
		ProjectID:       t.ProjectID(),
		TicketNumber:    t.Number(),
		Title:           t.Title(),
		Description:     t.Description(),
		DescriptionHTML: render(r, t.Description()),
		Priority:        t.Priority().String(),
		Status:          t.Status().String(),
		TicketType:      t.TicketType().String(),
		Assignee:        t.Assignee(),
		Labels:          t.Labels(),
		DueDate:         dueDate,
		StoryPoints:     t.StoryPoints(),
		Subtasks:        t.Subtasks(),
		LinkedTicketIDs: t.LinkedTicketIDs(),
		CreatedBy:       t.CreatedBy(),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket, r Renderer) []*TicketDTO {
	result := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, ToTicketDTO(t, r))
	}
	return result
}

func ToCommentDTO(c *ticket.Comment, r Renderer) *CommentDTO {
	if c == nil {
		return nil
	}
	return &CommentDTO{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		UserID:    c.UserID(),
		Text:      c.Text(),
		TextHTML:  render(r, c.Text()),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func ToCommentDTOs(comments []*ticket.Comment, r Renderer) []*CommentDTO {
	result := make([]*CommentDTO, 0, len(comments))
	for _, c := range comments {
		result = append(result, ToCommentDTO(c, r))
	}
	return result
}

// ToStatsDTO flattens stats into the enum-keyed maps clients expect.
func ToStatsDTO(s *ticket.Stats) *StatsDTO {
	out := &StatsDTO{
		Total:      s.Total,
		ByStatus:   make(map[string]int64, len(vo.Statuses)),
		ByPriority: make(map[string]int64, len(vo.Priorities)),
		ByType:     make(map[string]int64, len(vo.TicketTypes)),
	}
	for _, st := range vo.Statuses {
		out.ByStatus[st.String()] = s.ByStatus[st]
	}
	for _, p := range vo.Priorities {
		out.ByPriority[p.String()] = s.ByPriority[p]
	}
	for _, tt := range vo.TicketTypes {
		out.ByType[tt.String()] = s.ByType[tt]
	}
	return out
}

func render(r Renderer, text string) string {
	if r == nil || text == "" {
		return ""
	}
	html, err := r.Render(text)
	if err != nil {
		return ""
	}
	return html
}
