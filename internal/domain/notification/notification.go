package notification

import (
	"errors"
	"fmt"
	"time"

	"issueflow/internal/shared/biztime"
	"issueflow/internal/shared/id"
)

type Type string

const (
	TypeAssigned Type = "assigned"
	TypeComment  Type = "comment"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	return t == TypeAssigned || t == TypeComment
}

const maxTitleLength = 500

var (
	ErrRecipientRequired = errors.New("recipient is required")
	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidType       = errors.New("invalid notification type")
)

// Metadata points back at what triggered the notification. Every field is optional.
type Metadata struct {
	TicketID  *string `json:"ticket_id"`
	ProjectID *string `json:"project_id"`
	ActorID   *string `json:"actor_id"`
}

type Notification struct {
	id        string
	userID    string
	kind      Type
	title     string
	read      bool
	metadata  Metadata
	createdAt time.Time
}

func NewNotification(userID string, kind Type, title string, metadata Metadata) (*Notification, error) {
	if userID == "" {
		return nil, ErrRecipientRequired
	}
	if !kind.IsValid() {
		return nil, ErrInvalidType
	}
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len([]rune(title)) > maxTitleLength {
		title = string([]rune(title)[:maxTitleLength])
	}

	return &Notification{
		id:        id.New(),
		userID:    userID,
		kind:      kind,
		title:     title,
		metadata:  metadata,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructNotification(notificationID, userID string, kind Type, title string, read bool, metadata Metadata, createdAt time.Time) (*Notification, error) {
	if notificationID == "" {
		return nil, fmt.Errorf("notification ID is required")
	}
	if userID == "" {
		return nil, ErrRecipientRequired
	}

	return &Notification{
		id:        notificationID,
		userID:    userID,
		kind:      kind,
		title:     title,
		read:      read,
		metadata:  metadata,
		createdAt: createdAt,
	}, nil
}

func (n *Notification) ID() string {
	return n.id
}

func (n *Notification) UserID() string {
	return n.userID
}

func (n *Notification) Type() Type {
	return n.kind
}

func (n *Notification) Title() string {
	return n.title
}

func (n *Notification) IsRead() bool {
	return n.read
}

func (n *Notification) Metadata() Metadata {
	return n.metadata
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// AssignedTitle formats the title of an assignment notification.
func AssignedTitle(ticketTitle, projectTitle string) string {
	return fmt.Sprintf("You were assigned to \"%s\" in %s", ticketTitle, projectTitleOrDefault(projectTitle))
}

// CommentTitle formats the title of a new-comment notification.
func CommentTitle(ticketTitle, projectTitle string) string {
	return fmt.Sprintf("New comment on \"%s\" in %s", ticketTitle, projectTitleOrDefault(projectTitle))
}

func projectTitleOrDefault(title string) string {
	if title == "" {
		return "Project"
	}
	return title
}
