package ticket

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"issueflow/internal/shared/biztime"
	"issueflow/internal/shared/id"
)

const maxCommentLength = 10000

var ErrTextRequired = errors.New("text is required")

type Comment struct {
	id        string
	ticketID  string
	userID    string
	text      string
	createdAt time.Time
	updatedAt time.Time
}

func NewComment(ticketID, userID, text string) (*Comment, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}
	if len([]rune(text)) > maxCommentLength {
		return nil, fmt.Errorf("text exceeds maximum length of %d characters", maxCommentLength)
	}

	now := biztime.NowUTC()
	return &Comment{
		id:        id.New(),
		ticketID:  ticketID,
		userID:    userID,
		text:      text,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructComment(commentID, ticketID, userID, text string, createdAt, updatedAt time.Time) (*Comment, error) {
	if commentID == "" {
		return nil, fmt.Errorf("comment ID is required")
	}
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Comment{
		id:        commentID,
		ticketID:  ticketID,
		userID:    userID,
		text:      text,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (c *Comment) ID() string {
	return c.id
}

func (c *Comment) TicketID() string {
	return c.ticketID
}

func (c *Comment) UserID() string {
	return c.userID
}

func (c *Comment) Text() string {
	return c.text
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsAuthor is literal id equality; only the author may edit or delete.
func (c *Comment) IsAuthor(userID string) bool {
	return userID != "" && c.userID == userID
}

func (c *Comment) Edit(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrTextRequired
	}
	if len([]rune(text)) > maxCommentLength {
		return fmt.Errorf("text exceeds maximum length of %d characters", maxCommentLength)
	}
	c.text = text
	c.updatedAt = biztime.NowUTC()
	return nil
}
