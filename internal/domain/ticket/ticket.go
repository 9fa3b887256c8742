package ticket

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "issueflow/internal/domain/ticket/valueobjects"
	"issueflow/internal/shared/biztime"
	"issueflow/internal/shared/id"
	"issueflow/internal/shared/utils/setutil"
)

const maxTitleLength = 255

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrProjectRequired = errors.New("project ID is required")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidType     = errors.New("invalid ticket type")
)

// Subtask is an ordered checklist item embedded in a ticket.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Ticket struct {
	id              string
	projectID       string
	number          int
	title           string
	description     string
	priority        vo.Priority
	status          vo.TicketStatus
	ticketType      vo.TicketType
	assignee        *string
	labels          []string
	dueDate         *time.Time
	storyPoints     *float64
	subtasks        []Subtask
	linkedTicketIDs []string
	createdBy       string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewTicketParams carries the raw create input. Priority is coerced; status
// and type must be valid or empty.
type NewTicketParams struct {
	ProjectID       string
	Title           string
	Description     string
	Priority        string
	Status          string
	TicketType      string
	Assignee        *string
	Labels          []string
	DueDate         *time.Time
	StoryPoints     *float64
	Subtasks        []Subtask
	LinkedTicketIDs []string
	CreatedBy       string
}

func NewTicket(p NewTicketParams) (*Ticket, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if p.ProjectID == "" {
		return nil, ErrProjectRequired
	}
	if p.CreatedBy == "" {
		return nil, fmt.Errorf("creator ID is required")
	}

	status := vo.StatusTodo
	if p.Status != "" {
		s, err := vo.NewTicketStatus(p.Status)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		status = s
	}

	ticketType := vo.TypeTask
	if p.TicketType != "" {
		tt, err := vo.NewTicketType(p.TicketType)
		if err != nil {
			return nil, ErrInvalidType
		}
		ticketType = tt
	}

	now := biztime.NowUTC()
	t := &Ticket{
		id:          id.New(),
		projectID:   p.ProjectID,
		title:       title,
		description: p.Description,
		priority:    vo.CoercePriority(p.Priority),
		status:      status,
		ticketType:  ticketType,
		assignee:    normalizeAssignee(p.Assignee),
		labels:      normalizeLabels(p.Labels),
		dueDate:     p.DueDate,
		storyPoints: p.StoryPoints,
		subtasks:    normalizeSubtasks(p.Subtasks),
		createdBy:   p.CreatedBy,
		createdAt:   now,
		updatedAt:   now,
	}
	t.linkedTicketIDs = t.normalizeLinks(p.LinkedTicketIDs)
	return t, nil
}

// ReconstructTicket rebuilds a ticket from persistence.
func ReconstructTicket(
	ticketID string,
	projectID string,
	number int,
	title string,
	description string,
	priority vo.Priority,
	status vo.TicketStatus,
	ticketType vo.TicketType,
	assignee *string,
	labels []string,
	dueDate *time.Time,
	storyPoints *float64,
	subtasks []Subtask,
	linkedTicketIDs []string,
	createdBy string,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if projectID == "" {
		return nil, ErrProjectRequired
	}

	if labels == nil {
		labels = []string{}
	}
	if subtasks == nil {
		subtasks = []Subtask{}
	}
	if linkedTicketIDs == nil {
		linkedTicketIDs = []string{}
	}

	return &Ticket{
		id:              ticketID,
		projectID:       projectID,
		number:          number,
		title:           title,
		description:     description,
		priority:        priority,
		status:          status,
		ticketType:      ticketType,
		assignee:        assignee,
		labels:          labels,
		dueDate:         dueDate,
		storyPoints:     storyPoints,
		subtasks:        subtasks,
		linkedTicketIDs: linkedTicketIDs,
		createdBy:       createdBy,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (t *Ticket) ID() string {
	return t.id
}

func (t *Ticket) ProjectID() string {
	return t.projectID
}

func (t *Ticket) Number() int {
	return t.number
}

// SetNumber assigns the per-project sequence number once, at creation.
func (t *Ticket) SetNumber(number int) error {
	if t.number != 0 {
		return fmt.Errorf("ticket number already set")
	}
	if number <= 0 {
		return fmt.Errorf("ticket number must be positive")
	}
	t.number = number
	return nil
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) TicketType() vo.TicketType {
	return t.ticketType
}

func (t *Ticket) Assignee() *string {
	return t.assignee
}

func (t *Ticket) Labels() []string {
	labels := make([]string, len(t.labels))
	copy(labels, t.labels)
	return labels
}

func (t *Ticket) DueDate() *time.Time {
	return t.dueDate
}

func (t *Ticket) StoryPoints() *float64 {
	return t.storyPoints
}

func (t *Ticket) Subtasks() []Subtask {
	subtasks := make([]Subtask, len(t.subtasks))
	copy(subtasks, t.subtasks)
	return subtasks
}

func (t *Ticket) LinkedTicketIDs() []string {
	ids := make([]string, len(t.linkedTicketIDs))
	copy(ids, t.linkedTicketIDs)
	return ids
}

func (t *Ticket) CreatedBy() string {
	return t.createdBy
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// IsAssignedTo reports whether userID is the current assignee.
func (t *Ticket) IsAssignedTo(userID string) bool {
	return t.assignee != nil && *t.assignee == userID
}

func normalizeAssignee(assignee *string) *string {
	if assignee == nil {
		return nil
	}
	a := strings.TrimSpace(*assignee)
	if a == "" {
		return nil
	}
	return &a
}

func normalizeLabels(labels []string) []string {
	set := setutil.NewStringSet()
	for _, l := range labels {
		set.Add(strings.TrimSpace(l))
	}
	return set.ToSlice()
}

func normalizeSubtasks(subtasks []Subtask) []Subtask {
	out := make([]Subtask, 0, len(subtasks))
	for _, s := range subtasks {
		s.Title = strings.TrimSpace(s.Title)
		if s.Title == "" {
			continue
		}
		if s.ID == "" {
			s.ID = id.New()
		}
		out = append(out, s)
	}
	return out
}

// normalizeLinks deduplicates ids and drops a self reference.
func (t *Ticket) normalizeLinks(ids []string) []string {
	set := setutil.NewStringSet()
	for _, linked := range ids {
		set.Add(strings.TrimSpace(linked))
	}
	set.Remove(t.id)
	return set.ToSlice()
}
