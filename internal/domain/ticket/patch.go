package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "issueflow/internal/domain/ticket/valueobjects"
	"issueflow/internal/shared/biztime"
)

// Nullable distinguishes "not sent" (Set=false) from "sent as null" (Set=true, Value=nil).
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Patch is a partial ticket update. Nil pointers leave a field untouched;
// slices replace the stored list wholesale when non-nil.
type Patch struct {
	Title           *string
	Description     *string
	Priority        *string
	Status          *string
	TicketType      *string
	Assignee        Nullable[string]
	Labels          []string
	DueDate         Nullable[time.Time]
	StoryPoints     Nullable[float64]
	Subtasks        []Subtask
	LinkedTicketIDs []string
}

// Apply validates the whole patch before changing anything, so a rejected
// patch leaves the ticket as it was.
func (t *Ticket) Apply(p Patch) error {
	var title string
	if p.Title != nil {
		title = strings.TrimSpace(*p.Title)
		if title == "" {
			return ErrTitleRequired
		}
		if len([]rune(title)) > maxTitleLength {
			return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
		}
	}

	var status vo.TicketStatus
	if p.Status != nil {
		s, err := vo.NewTicketStatus(*p.Status)
		if err != nil {
			return ErrInvalidStatus
		}
		status = s
	}

	var ticketType vo.TicketType
	if p.TicketType != nil {
		tt, err := vo.NewTicketType(*p.TicketType)
		if err != nil {
			return ErrInvalidType
		}
		ticketType = tt
	}

	if p.Title != nil {
		t.title = title
	}
	if p.Description != nil {
		t.description = *p.Description
	}
	if p.Priority != nil {
		t.priority = vo.CoercePriority(*p.Priority)
	}
	if p.Status != nil {
		t.status = status
	}
	if p.TicketType != nil {
		t.ticketType = ticketType
	}
	if p.Assignee.Set {
		t.assignee = normalizeAssignee(p.Assignee.Value)
	}
	if p.Labels != nil {
		t.labels = normalizeLabels(p.Labels)
	}
	if p.DueDate.Set {
		t.dueDate = p.DueDate.Value
	}
	if p.StoryPoints.Set {
		t.storyPoints = p.StoryPoints.Value
	}
	if p.Subtasks != nil {
		t.subtasks = normalizeSubtasks(p.Subtasks)
	}
	if p.LinkedTicketIDs != nil {
		t.linkedTicketIDs = t.normalizeLinks(p.LinkedTicketIDs)
	}

	t.updatedAt = biztime.NowUTC()
	return nil
}

// ShouldNotifyAssignee is true when the assignee moved to a different,
// non-null user who is not the one making the change.
func ShouldNotifyAssignee(previous, next *string, actorID string) bool {
	if next == nil || *next == "" || *next == actorID {
		return false
	}
	return previous == nil || *previous != *next
}
