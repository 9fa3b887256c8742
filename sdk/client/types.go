package client

import "time"

// User is an account profile.
type User struct {
	ID                      string                  `json:"id"`
	Email                   string                  `json:"email"`
	DisplayName             string                  `json:"display_name"`
	NotificationPreferences NotificationPreferences `json:"notification_preferences"`
	CreatedAt               time.Time               `json:"created_at"`
}

type NotificationPreferences struct {
	EmailOnAssign  bool `json:"email_on_assign"`
	EmailOnComment bool `json:"email_on_comment"`
	EmailDigest    bool `json:"email_digest"`
}

// Session carries the bearer token issued on register and login.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type AuthResult struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

// ProfileUpdate changes display name and/or notification preferences.
// Nil fields are left untouched.
type ProfileUpdate struct {
	DisplayName             *string                  `json:"display_name,omitempty"`
	NotificationPreferences *NotificationPreferences `json:"notification_preferences,omitempty"`
}

type Project struct {
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

type CreateProjectInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	ProjectKey  string  `json:"project_key,omitempty"`
}

type UpdateProjectInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ProjectKey  *string `json:"project_key,omitempty"`
}

type Member struct {
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	IsStarred bool      `json:"is_starred"`
	CreatedAt time.Time `json:"created_at"`
	Email     *string   `json:"email,omitempty"`
}

type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Ticket struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	TicketNumber    int       `json:"ticket_number"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html,omitempty"`
	Priority        string    `json:"priority"`
	Status          string    `json:"status"`
	TicketType      string    `json:"ticket_type"`
	Assignee        *string   `json:"assignee"`
	Labels          []string  `json:"labels"`
	DueDate         *string   `json:"due_date"`
	StoryPoints     *float64  `json:"story_points"`
	Subtasks        []Subtask `json:"subtasks"`
	LinkedTicketIDs []string  `json:"linked_ticket_ids"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateTicketInput struct {
	ProjectID       string    `json:"project_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Priority        string    `json:"priority,omitempty"`
	Status          string    `json:"status,omitempty"`
	TicketType      string    `json:"ticket_type,omitempty"`
	Assignee        *string   `json:"assignee,omitempty"`
	Labels          []string  `json:"labels,omitempty"`
	DueDate         *string   `json:"due_date,omitempty"`
	StoryPoints     *float64  `json:"story_points,omitempty"`
	Subtasks        []Subtask `json:"subtasks,omitempty"`
	LinkedTicketIDs []string  `json:"linked_ticket_ids,omitempty"`
}

// TicketPatch is a partial ticket update. Nil fields are not sent.
type TicketPatch struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Priority        *string   `json:"priority,omitempty"`
	Status          *string   `json:"status,omitempty"`
	TicketType      *string   `json:"ticket_type,omitempty"`
	Assignee        *string   `json:"assignee,omitempty"`
	Labels          []string  `json:"labels,omitempty"`
	DueDate         *string   `json:"due_date,omitempty"`
	StoryPoints     *float64  `json:"story_points,omitempty"`
	Subtasks        []Subtask `json:"subtasks,omitempty"`
	LinkedTicketIDs []string  `json:"linked_ticket_ids,omitempty"`
}

// applyTo returns a copy of t with the patch applied. Slices are replaced,
// never mutated, so t stays usable as a rollback snapshot.
func (p TicketPatch) applyTo(t Ticket) Ticket {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.TicketType != nil {
		t.TicketType = *p.TicketType
	}
	if p.Assignee != nil {
		t.Assignee = p.Assignee
	}
	if p.Labels != nil {
		t.Labels = append([]string(nil), p.Labels...)
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.StoryPoints != nil {
		t.StoryPoints = p.StoryPoints
	}
	if p.Subtasks != nil {
		t.Subtasks = append([]Subtask(nil), p.Subtasks...)
	}
	if p.LinkedTicketIDs != nil {
		t.LinkedTicketIDs = append([]string(nil), p.LinkedTicketIDs...)
	}
	return t
}

// TicketFilter narrows ListTickets. ProjectID is required.
type TicketFilter struct {
	ProjectID  string
	Status     string
	Priority   string
	TicketType string
	Assignee   string
}

type TicketStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByPriority map[string]int64 `json:"byPriority"`
	ByType     map[string]int64 `json:"byType"`
}

type Comment struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	TextHTML  string    `json:"text_html,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NotificationMetadata struct {
	TicketID  *string `json:"ticket_id"`
	ProjectID *string `json:"project_id"`
	ActorID   *string `json:"actor_id"`
}

type Notification struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	Type      string               `json:"type"`
	Title     string               `json:"title"`
	Read      bool                 `json:"read"`
	Metadata  NotificationMetadata `json:"metadata"`
	CreatedAt time.Time            `json:"created_at"`
}

// NotificationPage is one page of notifications. UnreadCount covers the
// returned page only.
type NotificationPage struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
