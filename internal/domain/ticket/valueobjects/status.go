package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusTodo       TicketStatus = "todo"
	StatusInProgress TicketStatus = "in_progress"
	StatusInReview   TicketStatus = "in_review"
	StatusDone       TicketStatus = "done"
)

// Statuses lists the board columns in order.
var Statuses = []TicketStatus{StatusTodo, StatusInProgress, StatusInReview, StatusDone}

var validStatuses = map[TicketStatus]bool{
	StatusTodo:       true,
	StatusInProgress: true,
	StatusInReview:   true,
	StatusDone:       true,
}

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) IsValid() bool {
	return validStatuses[s]
}

func (s TicketStatus) IsDone() bool {
	return s == StatusDone
}

func NewTicketStatus(s string) (TicketStatus, error) {
	status := TicketStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return status, nil
}
