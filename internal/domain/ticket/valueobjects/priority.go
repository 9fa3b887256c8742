package valueobjects

import "fmt"

type Priority string

const (
	PriorityLowest  Priority = "lowest"
	PriorityLow     Priority = "low"
	PriorityMedium  Priority = "medium"
	PriorityHigh    Priority = "high"
	PriorityHighest Priority = "highest"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHighest, PriorityHigh, PriorityMedium, PriorityLow, PriorityLowest}

var validPriorities = map[Priority]bool{
	PriorityLowest:  true,
	PriorityLow:     true,
	PriorityMedium:  true,
	PriorityHigh:    true,
	PriorityHighest: true,
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return validPriorities[p]
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}

// CoercePriority never fails: anything outside the enum becomes medium.
// Priority is lenient while status and type are strict; clients have long
// sent free-form priorities and rejecting them would break ticket creation.
func CoercePriority(s string) Priority {
	p := Priority(s)
	if !p.IsValid() {
		return PriorityMedium
	}
	return p
}
