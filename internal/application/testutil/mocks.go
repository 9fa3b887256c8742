// Package testutil provides in-memory repositories and recorders for testing
// the application layer without a database.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"issueflow/internal/domain/notification"
	"issueflow/internal/domain/project"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/domain/user"
)

// ErrDuplicate mimics a unique constraint violation.
var ErrDuplicate = errors.New("UNIQUE constraint failed")

// ProjectRepository is an in-memory project.Repository.
type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]*project.Project

	CreateErr error
	UpdateErr error
	DeleteErr error
	GetErr    error
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[string]*project.Project)}
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.projects[p.ID()] = p
	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.projects[p.ID()] = p
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	delete(r.projects, projectID)
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	return r.projects[projectID], nil
}

func (r *ProjectRepository) ListActiveByIDs(ctx context.Context, projectIDs []string) ([]*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*project.Project{}
	for _, id := range projectIDs {
		if p, ok := r.projects[id]; ok && !p.IsTrashed() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	return out, nil
}

func (r *ProjectRepository) ListTrashedByCreator(ctx context.Context, userID string) ([]*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*project.Project{}
	for _, p := range r.projects {
		if p.IsTrashed() && p.CreatedBy() == userID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DeletedAt().After(*out[j].DeletedAt()) })
	return out, nil
}

// Len returns how many projects are stored.
func (r *ProjectRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}

type memberKey struct{ projectID, userID string }

// MemberRepository is an in-memory project.MemberRepository.
type MemberRepository struct {
	mu      sync.RWMutex
	members map[memberKey]*project.Member
	order   []memberKey

	CreateErr error
	GetErr    error
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{members: make(map[memberKey]*project.Member)}
}

func (r *MemberRepository) Create(ctx context.Context, m *project.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	key := memberKey{m.ProjectID(), m.UserID()}
	if _, ok := r.members[key]; ok {
		return ErrDuplicate
	}
	r.members[key] = m
	r.order = append(r.order, key)
	return nil
}

func (r *MemberRepository) Get(ctx context.Context, projectID, userID string) (*project.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	return r.members[memberKey{projectID, userID}], nil
}

func (r *MemberRepository) UpdateStar(ctx context.Context, m *project.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[memberKey{m.ProjectID(), m.UserID()}] = m
	return nil
}

func (r *MemberRepository) ListByUser(ctx context.Context, userID string) ([]*project.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*project.Member{}
	for _, key := range r.order {
		if m, ok := r.members[key]; ok && key.userID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemberRepository) ListByProject(ctx context.Context, projectID string) ([]*project.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*project.Member{}
	for _, key := range r.order {
		if m, ok := r.members[key]; ok && key.projectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemberRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	members, _ := r.ListByProject(ctx, projectID)
	return int64(len(members)), nil
}

func (r *MemberRepository) DeleteByProject(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.members {
		if key.projectID == projectID {
			delete(r.members, key)
		}
	}
	return nil
}

// Remove drops a single membership.
func (r *MemberRepository) Remove(projectID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, memberKey{projectID, userID})
}

// TicketRepository is an in-memory ticket.Repository.
type TicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]*ticket.Ticket
	order   []string

	CreateErr error
	UpdateErr error
	DeleteErr error
}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{tickets: make(map[string]*ticket.Ticket)}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	for _, existing := range r.tickets {
		if existing.ProjectID() == t.ProjectID() && existing.Number() == t.Number() {
			return ErrDuplicate
		}
	}
	r.tickets[t.ID()] = t
	r.order = append(r.order, t.ID())
	return nil
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.tickets[t.ID()] = t
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, ticketID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	delete(r.tickets, ticketID)
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tickets[ticketID], nil
}

// List returns matches newest first.
func (r *TicketRepository) List(ctx context.Context, f ticket.Filter) ([]*ticket.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*ticket.Ticket{}
	for i := len(r.order) - 1; i >= 0; i-- {
		t, ok := r.tickets[r.order[i]]
		if !ok || t.ProjectID() != f.ProjectID {
			continue
		}
		if f.Status != nil && t.Status() != *f.Status {
			continue
		}
		if f.Priority != nil && t.Priority() != *f.Priority {
			continue
		}
		if f.TicketType != nil && t.TicketType() != *f.TicketType {
			continue
		}
		if f.Assignee != nil && !t.IsAssignedTo(*f.Assignee) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TicketRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	tickets, _ := r.List(ctx, ticket.Filter{ProjectID: projectID})
	return int64(len(tickets)), nil
}

func (r *TicketRepository) NextNumber(ctx context.Context, projectID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	max := 0
	for _, t := range r.tickets {
		if t.ProjectID() == projectID && t.Number() > max {
			max = t.Number()
		}
	}
	return max + 1, nil
}

func (r *TicketRepository) ListIDsByProject(ctx context.Context, projectID string) ([]string, error) {
	tickets, _ := r.List(ctx, ticket.Filter{ProjectID: projectID})
	ids := make([]string, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.ID())
	}
	return ids, nil
}

func (r *TicketRepository) DeleteByProject(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tickets {
		if t.ProjectID() == projectID {
			delete(r.tickets, id)
		}
	}
	return nil
}

func (r *TicketRepository) Stats(ctx context.Context, projectID string) (*ticket.Stats, error) {
	tickets, _ := r.List(ctx, ticket.Filter{ProjectID: projectID})
	stats := ticket.NewStats()
	for _, t := range tickets {
		stats.Add(t.Status(), t.Priority(), t.TicketType())
	}
	return stats, nil
}

// CommentRepository is an in-memory ticket.CommentRepository.
type CommentRepository struct {
	mu       sync.RWMutex
	comments map[string]*ticket.Comment
	order    []string

	CreateErr error
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[string]*ticket.Comment)}
}

func (r *CommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.comments[c.ID()] = c
	r.order = append(r.order, c.ID())
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, c *ticket.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[c.ID()] = c
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.comments, commentID)
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, commentID string) (*ticket.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.comments[commentID], nil
}

// ListByTicket returns comments oldest first.
func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID string) ([]*ticket.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*ticket.Comment{}
	for _, id := range r.order {
		if c, ok := r.comments[id]; ok && c.TicketID() == ticketID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CommentRepository) DeleteByTicket(ctx context.Context, ticketID string) error {
	return r.DeleteByTickets(ctx, []string{ticketID})
}

func (r *CommentRepository) DeleteByTickets(ctx context.Context, ticketIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	drop := make(map[string]bool, len(ticketIDs))
	for _, id := range ticketIDs {
		drop[id] = true
	}
	for id, c := range r.comments {
		if drop[c.TicketID()] {
			delete(r.comments, id)
		}
	}
	return nil
}

// Len returns how many comments are stored.
func (r *CommentRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.comments)
}

// UserRepository is an in-memory user.Repository keyed by id and email.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*user.User

	CreateErr error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*user.User)}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return ErrDuplicate
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[id], nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*user.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

func (r *UserRepository) ListDigestSubscribers(ctx context.Context) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*user.User{}
	for _, u := range r.users {
		if u.Preferences().EmailDigest {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// SessionRepository is an in-memory user.SessionRepository.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*user.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*user.Session)}
}

func (r *SessionRepository) Create(ctx context.Context, s *user.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*user.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[sessionID], nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

func (r *SessionRepository) DeleteByUserExcept(ctx context.Context, userID, keepID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID && id != keepID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.IsExpired() {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns how many sessions are stored.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// NotificationRepository is an in-memory notification.Repository.
type NotificationRepository struct {
	mu    sync.RWMutex
	items []*notification.Notification

	CreateErr error
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.items = append(r.items, n)
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*notification.Notification{}
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		if r.items[i].UserID() == userID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, item := range r.items {
		if item.UserID() == userID && !item.IsRead() {
			n++
		}
	}
	return n, nil
}

func (r *NotificationRepository) ListUnreadSince(ctx context.Context, userID string, since time.Time, limit int) ([]*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*notification.Notification{}
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		item := r.items[i]
		if item.UserID() == userID && !item.IsRead() && !item.CreatedAt().Before(since) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID() == notificationID && item.UserID() == userID {
			r.items[i] = markRead(item)
		}
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.UserID() == userID {
			r.items[i] = markRead(item)
		}
	}
	return nil
}

// All returns every stored notification in insertion order.
func (r *NotificationRepository) All() []*notification.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*notification.Notification(nil), r.items...)
}

func markRead(n *notification.Notification) *notification.Notification {
	read, _ := notification.ReconstructNotification(n.ID(), n.UserID(), n.Type(), n.Title(), true, n.Metadata(), n.CreatedAt())
	return read
}

// Notifier records requests synchronously instead of delivering them.
type Notifier struct {
	mu       sync.Mutex
	requests []notification.Request
}

func (n *Notifier) Notify(ctx context.Context, req notification.Request) {
	if !req.ShouldDeliver() {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, req)
}

// Requests returns what has been recorded so far.
func (n *Notifier) Requests() []notification.Request {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Request(nil), n.requests...)
}

// Transactor runs fn inline. Set Err to make every transaction fail before fn runs.
type Transactor struct {
	Calls int
	Err   error
}

func (t *Transactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	if t.Err != nil {
		return t.Err
	}
	return fn(ctx)
}

// AllowAll is an authorizer that permits every action.
type AllowAll struct{}

func (AllowAll) Enforce(relation, resource, action string) (bool, error) { return true, nil }
