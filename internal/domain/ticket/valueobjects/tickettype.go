package valueobjects

import "fmt"

type TicketType string

const (
	TypeBug         TicketType = "bug"
	TypeTask        TicketType = "task"
	TypeFeature     TicketType = "feature"
	TypeImprovement TicketType = "improvement"
	TypeEpic        TicketType = "epic"
)

var TicketTypes = []TicketType{TypeBug, TypeTask, TypeFeature, TypeImprovement, TypeEpic}

var validTicketTypes = map[TicketType]bool{
	TypeBug:         true,
	TypeTask:        true,
	TypeFeature:     true,
	TypeImprovement: true,
	TypeEpic:        true,
}

func (t TicketType) String() string {
	return string(t)
}

func (t TicketType) IsValid() bool {
	return validTicketTypes[t]
}

func NewTicketType(s string) (TicketType, error) {
	tt := TicketType(s)
	if !tt.IsValid() {
		return "", fmt.Errorf("invalid ticket type: %s", s)
	}
	return tt, nil
}
