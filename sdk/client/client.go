// Package client is a Go client for the IssueFlow REST API, plus the
// optimistic board state and unread-count poller built on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Client is the IssueFlow API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithToken starts the client with an existing bearer token.
func WithToken(token string) Option {
	return func(client *Client) {
		client.token = token
	}
}

// NewClient creates a new API client.
//
// Parameters:
//   - baseURL: The server root (e.g., "https://issues.example.com"); the /api prefix is added per call
//   - opts: Optional configuration
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token currently in use.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// =====================================================================
// Auth
// =====================================================================

// Register creates an account and adopts the returned session token.
func (c *Client) Register(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	if displayName != "" {
		body["display_name"] = displayName
	}

	result, err := c.authenticate(ctx, "/api/auth/register", body)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return result, nil
}

// Login signs in and adopts the returned session token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	result, err := c.authenticate(ctx, "/api/auth/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return result, nil
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*AuthResult, error) {
	env, err := c.doRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}

	var result AuthResult
	if err := env.decode("user", &result.User); err != nil {
		return nil, err
	}
	if err := env.decode("session", &result.Session); err != nil {
		return nil, err
	}
	if result.Session != nil {
		c.SetToken(result.Session.AccessToken)
	}
	return &result, nil
}

// Me returns the caller's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/api/auth/me", nil, "user", &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &user, nil
}

// Logout invalidates the current session and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	c.SetToken("")
	return nil
}

// ChangePassword changes the caller's password. Other sessions are revoked
// by the server.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{"current_password": currentPassword, "new_password": newPassword}
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/auth/password", nil, body); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := c.send(ctx, http.MethodPost, "/api/auth/profile", update, "user", &user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &user, nil
}

// =====================================================================
// Projects
// =====================================================================

func (c *Client) CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error) {
	var project Project
	if err := c.send(ctx, http.MethodPost, "/api/projects", input, "project", &project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

// ListProjects returns the caller's active projects with their star flag.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "/api/projects", nil, "projects", &projects); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// ListDeletedProjects returns the caller's trashed projects, most recently
// trashed first.
func (c *Client) ListDeletedProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "/api/projects/deleted", nil, "projects", &projects); err != nil {
		return nil, fmt.Errorf("list deleted projects: %w", err)
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	if err := c.get(ctx, projectPath(projectID, ""), nil, "project", &project); err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &project, nil
}

func (c *Client) UpdateProject(ctx context.Context, projectID string, input UpdateProjectInput) (*Project, error) {
	var project Project
	if err := c.send(ctx, http.MethodPut, projectPath(projectID, ""), input, "project", &project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &project, nil
}

// TrashProject soft-deletes a project. Creator only.
func (c *Client) TrashProject(ctx context.Context, projectID string) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, projectPath(projectID, ""), nil, nil); err != nil {
		return fmt.Errorf("trash project: %w", err)
	}
	return nil
}

func (c *Client) RestoreProject(ctx context.Context, projectID string) error {
	if _, err := c.doRequest(ctx, http.MethodPost, projectPath(projectID, "/restore"), nil, nil); err != nil {
		return fmt.Errorf("restore project: %w", err)
	}
	return nil
}

// PurgeProject permanently deletes a trashed project and everything in it.
func (c *Client) PurgeProject(ctx context.Context, projectID string) error {
	if _, err := c.doRequest(ctx, http.MethodPost, projectPath(projectID, "/permanent-delete"), nil, nil); err != nil {
		return fmt.Errorf("purge project: %w", err)
	}
	return nil
}

func (c *Client) InviteMember(ctx context.Context, projectID, email string) (*Member, error) {
	var member Member
	if err := c.send(ctx, http.MethodPost, projectPath(projectID, "/invite"), map[string]string{"email": email}, "member", &member); err != nil {
		return nil, fmt.Errorf("invite member: %w", err)
	}
	return &member, nil
}

func (c *Client) AddMember(ctx context.Context, projectID, userID string) (*Member, error) {
	var member Member
	if err := c.send(ctx, http.MethodPost, projectPath(projectID, "/members"), map[string]string{"user_id": userID}, "member", &member); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	return &member, nil
}

func (c *Client) ListMembers(ctx context.Context, projectID string) ([]Member, error) {
	var members []Member
	if err := c.get(ctx, projectPath(projectID, "/members"), nil, "members", &members); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// ToggleStar flips the caller's favorite flag and returns the new value.
func (c *Client) ToggleStar(ctx context.Context, projectID string) (bool, error) {
	env, err := c.doRequest(ctx, http.MethodPost, projectPath(projectID, "/star"), nil, nil)
	if err != nil {
		return false, fmt.Errorf("toggle star: %w", err)
	}

	var starred bool
	if err := env.decode("is_starred", &starred); err != nil {
		return false, fmt.Errorf("toggle star: %w", err)
	}
	return starred, nil
}

// =====================================================================
// Tickets
// =====================================================================

func (c *Client) CreateTicket(ctx context.Context, input CreateTicketInput) (*Ticket, error) {
	var ticket Ticket
	if err := c.send(ctx, http.MethodPost, "/api/tickets", input, "ticket", &ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return &ticket, nil
}

func (c *Client) ListTickets(ctx context.Context, filter TicketFilter) ([]Ticket, error) {
	query := url.Values{}
	query.Set("project_id", filter.ProjectID)
	setIfNotEmpty(query, "status", filter.Status)
	setIfNotEmpty(query, "priority", filter.Priority)
	setIfNotEmpty(query, "ticket_type", filter.TicketType)
	setIfNotEmpty(query, "assignee", filter.Assignee)

	var tickets []Ticket
	if err := c.get(ctx, "/api/tickets", query, "tickets", &tickets); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (c *Client) TicketStats(ctx context.Context, projectID string) (*TicketStats, error) {
	var stats TicketStats
	query := url.Values{"project_id": {projectID}}
	if err := c.get(ctx, "/api/tickets/stats", query, "stats", &stats); err != nil {
		return nil, fmt.Errorf("ticket stats: %w", err)
	}
	return &stats, nil
}

func (c *Client) GetTicket(ctx context.Context, ticketID string) (*Ticket, error) {
	var ticket Ticket
	if err := c.get(ctx, "/api/tickets/"+url.PathEscape(ticketID), nil, "ticket", &ticket); err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &ticket, nil
}

func (c *Client) UpdateTicket(ctx context.Context, ticketID string, patch TicketPatch) (*Ticket, error) {
	var ticket Ticket
	if err := c.send(ctx, http.MethodPut, "/api/tickets/"+url.PathEscape(ticketID), patch, "ticket", &ticket); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	return &ticket, nil
}

// DeleteTicket deletes a ticket and its comments.
func (c *Client) DeleteTicket(ctx context.Context, ticketID string) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, "/api/tickets/"+url.PathEscape(ticketID), nil, nil); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}

// =====================================================================
// Comments
// =====================================================================

func (c *Client) CreateComment(ctx context.Context, ticketID, text string) (*Comment, error) {
	var comment Comment
	body := map[string]string{"ticket_id": ticketID, "text": text}
	if err := c.send(ctx, http.MethodPost, "/api/comments", body, "comment", &comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

func (c *Client) ListComments(ctx context.Context, ticketID string) ([]Comment, error) {
	var comments []Comment
	if err := c.get(ctx, "/api/comments", url.Values{"ticket_id": {ticketID}}, "comments", &comments); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (c *Client) GetComment(ctx context.Context, commentID string) (*Comment, error) {
	var comment Comment
	if err := c.get(ctx, "/api/comments/"+url.PathEscape(commentID), nil, "comment", &comment); err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &comment, nil
}

// UpdateComment edits a comment. Author only.
func (c *Client) UpdateComment(ctx context.Context, commentID, text string) (*Comment, error) {
	var comment Comment
	body := map[string]string{"text": text}
	if err := c.send(ctx, http.MethodPut, "/api/comments/"+url.PathEscape(commentID), body, "comment", &comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, "/api/comments/"+url.PathEscape(commentID), nil, nil); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// =====================================================================
// Notifications
// =====================================================================

// ListNotifications returns up to limit recent notifications, newest first.
// A non-positive limit uses the server default.
func (c *Client) ListNotifications(ctx context.Context, limit int) (*NotificationPage, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}

	env, err := c.doRequest(ctx, http.MethodGet, "/api/notifications", query, nil)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	var page NotificationPage
	if err := env.decode("notifications", &page.Notifications); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if err := env.decode("unread_count", &page.UnreadCount); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return &page, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var count int64
	if err := c.get(ctx, "/api/notifications/unread-count", nil, "unread_count", &count); err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	path := "/api/notifications/" + url.PathEscape(notificationID) + "/read"
	if _, err := c.doRequest(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// =====================================================================
// Transport
// =====================================================================

// envelope is a decoded success body: { message?, <resource>: ... }.
type envelope map[string]json.RawMessage

func (e envelope) decode(key string, dst any) error {
	raw, ok := e[key]
	if !ok {
		return fmt.Errorf("response missing %q", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, key string, dst any) error {
	env, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return env.decode(key, dst)
}

func (c *Client) send(ctx context.Context, method, path string, body any, key string, dst any) error {
	env, err := c.doRequest(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	return env.decode(key, dst)
}

// doRequest performs an HTTP request and decodes the response envelope.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) (envelope, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	env := envelope{}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return env, nil
}

func newAPIError(status int, body []byte) *APIError {
	var errBody struct {
		Error string `json:"error"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error != "" {
		message = errBody.Error
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: message}
}

func projectPath(projectID, suffix string) string {
	return "/api/projects/" + url.PathEscape(projectID) + suffix
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
