package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// TempIDPrefix marks ids generated locally for tickets the server has not
// stored yet. The server rejects comments against such ids.
const TempIDPrefix = "temp-"

var (
	// ErrTicketNotSaved is returned when an action needs a server id but the
	// ticket is still pending.
	ErrTicketNotSaved = errors.New("Save the ticket first")

	// ErrTicketNotOnBoard is returned for ids the board does not hold.
	ErrTicketNotOnBoard = errors.New("ticket not on board")
)

// IsPendingID reports whether id was generated locally.
func IsPendingID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// Entry is one ticket slot on a Board: either Pending or Persisted.
type Entry interface {
	// ID is the local id for a Pending entry and the server id otherwise.
	ID() string
	entry()
}

// Pending is a ticket that has been sent to the server but not confirmed.
type Pending struct {
	LocalID string
	// Draft is the speculative ticket shown while the request is in flight.
	Draft Ticket
}

func (p Pending) ID() string { return p.LocalID }
func (Pending) entry()       {}

// Persisted is a server-confirmed ticket.
type Persisted struct {
	Ticket Ticket
}

func (p Persisted) ID() string { return p.Ticket.ID }
func (Persisted) entry()       {}

// TicketAPI is the subset of Client a Board needs.
type TicketAPI interface {
	ListTickets(ctx context.Context, filter TicketFilter) ([]Ticket, error)
	CreateTicket(ctx context.Context, input CreateTicketInput) (*Ticket, error)
	UpdateTicket(ctx context.Context, ticketID string, patch TicketPatch) (*Ticket, error)
	DeleteTicket(ctx context.Context, ticketID string) error
	CreateComment(ctx context.Context, ticketID, text string) (*Comment, error)
}

// Board holds one project's tickets and applies mutations optimistically:
// the local state changes first and is rolled back if the server rejects
// the request. Requests are neither retried nor cancelled when a newer one
// supersedes them, so rapid updates to one ticket may resolve out of order.
type Board struct {
	api       TicketAPI
	projectID string

	mu       sync.Mutex
	entries  []Entry
	selected string
	onChange func([]Entry)
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithChangeHandler registers fn to receive a snapshot after every state
// change, including rollbacks. fn runs without the board lock held.
func WithChangeHandler(fn func([]Entry)) BoardOption {
	return func(b *Board) {
		b.onChange = fn
	}
}

func NewBoard(api TicketAPI, projectID string, opts ...BoardOption) *Board {
	b := &Board{
		api:       api,
		projectID: projectID,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load replaces the board contents with the project's tickets.
func (b *Board) Load(ctx context.Context) error {
	tickets, err := b.api.ListTickets(ctx, TicketFilter{ProjectID: b.projectID})
	if err != nil {
		return err
	}

	entries := make([]Entry, 0, len(tickets))
	for _, t := range tickets {
		entries = append(entries, Persisted{Ticket: t})
	}

	b.mutate(func() {
		b.entries = entries
	})
	return nil
}

// Entries returns a snapshot of the board in display order.
func (b *Board) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Select marks id as the open ticket. An empty id clears the selection.
func (b *Board) Select(id string) {
	b.mu.Lock()
	b.selected = id
	b.mu.Unlock()
}

// Selected returns the open ticket, if any.
func (b *Board) Selected() (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.selected == "" {
		return nil, false
	}
	idx := b.indexLocked(b.selected)
	if idx < 0 {
		return nil, false
	}
	return b.entries[idx], true
}

// CreateTicket shows a pending ticket immediately and replaces it with the
// server's ticket once created. A selection pointing at the pending ticket
// follows it to the server id. On failure the pending ticket is removed.
func (b *Board) CreateTicket(ctx context.Context, input CreateTicketInput) (*Ticket, error) {
	input.ProjectID = b.projectID
	localID := TempIDPrefix + uuid.NewString()

	b.mutate(func() {
		b.entries = append(b.entries, Pending{LocalID: localID, Draft: draftTicket(localID, input)})
	})

	created, err := b.api.CreateTicket(ctx, input)

	b.mutate(func() {
		idx := b.indexLocked(localID)
		if err != nil {
			if idx >= 0 {
				b.entries = append(b.entries[:idx], b.entries[idx+1:]...)
			}
			if b.selected == localID {
				b.selected = ""
			}
			return
		}

		entry := Persisted{Ticket: *created}
		if idx >= 0 {
			b.entries[idx] = entry
		} else {
			b.entries = append(b.entries, entry)
		}
		if b.selected == localID {
			b.selected = created.ID
		}
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTicket applies patch locally, then sends it. The server's ticket
// replaces the optimistic one on success; the previous ticket is restored on
// failure.
func (b *Board) UpdateTicket(ctx context.Context, ticketID string, patch TicketPatch) (*Ticket, error) {
	if IsPendingID(ticketID) {
		return nil, ErrTicketNotSaved
	}

	var snapshot Ticket
	var lookupErr error
	b.mutate(func() {
		snapshot, lookupErr = b.persistedLocked(ticketID)
		if lookupErr != nil {
			return
		}
		b.entries[b.indexLocked(ticketID)] = Persisted{Ticket: patch.applyTo(snapshot)}
	})
	if lookupErr != nil {
		return nil, lookupErr
	}

	updated, err := b.api.UpdateTicket(ctx, ticketID, patch)

	b.mutate(func() {
		idx := b.indexLocked(ticketID)
		if idx < 0 {
			return
		}
		if err != nil {
			b.entries[idx] = Persisted{Ticket: snapshot}
			return
		}
		b.entries[idx] = Persisted{Ticket: *updated}
	})

	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTicket removes the ticket locally, then deletes it on the server.
// On failure the ticket is put back at its old position.
func (b *Board) DeleteTicket(ctx context.Context, ticketID string) error {
	if IsPendingID(ticketID) {
		return ErrTicketNotSaved
	}

	var (
		removed  Entry
		position = -1
	)
	b.mutate(func() {
		position = b.indexLocked(ticketID)
		if position < 0 {
			return
		}
		removed = b.entries[position]
		b.entries = append(b.entries[:position], b.entries[position+1:]...)
	})
	if position < 0 {
		return ErrTicketNotOnBoard
	}

	err := b.api.DeleteTicket(ctx, ticketID)

	b.mutate(func() {
		if err == nil {
			if b.selected == ticketID {
				b.selected = ""
			}
			return
		}
		at := min(position, len(b.entries))
		b.entries = append(b.entries[:at], append([]Entry{removed}, b.entries[at:]...)...)
	})

	return err
}

// AddComment posts a comment on a saved ticket. Pending tickets are
// rejected before any request is made.
func (b *Board) AddComment(ctx context.Context, ticketID, text string) (*Comment, error) {
	if IsPendingID(ticketID) {
		return nil, ErrTicketNotSaved
	}
	return b.api.CreateComment(ctx, ticketID, text)
}

// mutate runs fn under the lock and then notifies the change handler.
func (b *Board) mutate(fn func()) {
	b.mu.Lock()
	fn()
	var snapshot []Entry
	if b.onChange != nil {
		snapshot = b.snapshotLocked()
	}
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange(snapshot)
	}
}

func (b *Board) snapshotLocked() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Board) indexLocked(id string) int {
	for i, e := range b.entries {
		if e.ID() == id {
			return i
		}
	}
	return -1
}

func (b *Board) persistedLocked(id string) (Ticket, error) {
	idx := b.indexLocked(id)
	if idx < 0 {
		return Ticket{}, ErrTicketNotOnBoard
	}
	switch e := b.entries[idx].(type) {
	case Persisted:
		return e.Ticket, nil
	case Pending:
		return Ticket{}, ErrTicketNotSaved
	default:
		return Ticket{}, fmt.Errorf("unknown board entry %T", e)
	}
}

// draftTicket builds the speculative ticket shown while a create is in
// flight, with the server's defaults filled in.
func draftTicket(localID string, input CreateTicketInput) Ticket {
	return Ticket{
		ID:              localID,
		ProjectID:       input.ProjectID,
		Title:           input.Title,
		Description:     input.Description,
		Priority:        defaultString(input.Priority, "medium"),
		Status:          defaultString(input.Status, "todo"),
		TicketType:      defaultString(input.TicketType, "task"),
		Assignee:        input.Assignee,
		Labels:          input.Labels,
		DueDate:         input.DueDate,
		StoryPoints:     input.StoryPoints,
		Subtasks:        input.Subtasks,
		LinkedTicketIDs: input.LinkedTicketIDs,
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
