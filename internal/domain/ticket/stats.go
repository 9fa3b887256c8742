package ticket

import (
	vo "issueflow/internal/domain/ticket/valueobjects"
)

// Stats aggregates a project's tickets. Every enum value is present even
// when its count is zero.
type Stats struct {
	Total      int64
	ByStatus   map[vo.TicketStatus]int64
	ByPriority map[vo.Priority]int64
	ByType     map[vo.TicketType]int64
}

func NewStats() *Stats {
	s := &Stats{
		ByStatus:   make(map[vo.TicketStatus]int64, len(vo.Statuses)),
		ByPriority: make(map[vo.Priority]int64, len(vo.Priorities)),
		ByType:     make(map[vo.TicketType]int64, len(vo.TicketTypes)),
	}
	for _, st := range vo.Statuses {
		s.ByStatus[st] = 0
	}
	for _, p := range vo.Priorities {
		s.ByPriority[p] = 0
	}
	for _, tt := range vo.TicketTypes {
		s.ByType[tt] = 0
	}
	return s
}

// Add counts one ticket.
func (s *Stats) Add(status vo.TicketStatus, priority vo.Priority, ticketType vo.TicketType) {
	s.AddN(status, priority, ticketType, 1)
}

// AddN counts n tickets sharing the same three attributes. Values outside
// the enums still contribute to Total but get no bucket.
func (s *Stats) AddN(status vo.TicketStatus, priority vo.Priority, ticketType vo.TicketType, n int64) {
	s.Total += n
	if status.IsValid() {
		s.ByStatus[status] += n
	}
	if priority.IsValid() {
		s.ByPriority[priority] += n
	}
	if ticketType.IsValid() {
		s.ByType[ticketType] += n
	}
}
