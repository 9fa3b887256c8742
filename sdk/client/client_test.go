package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_LoginAdoptsToken(t *testing.T) {
	var meAuth string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "bob1@x.com", body["email"])
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]any{
				"message": "Login successful",
				"user":    map[string]any{"id": "u-1", "email": "bob1@x.com"},
				"session": map[string]any{"access_token": "tok-1", "token_type": "Bearer"},
			})
		case "/api/auth/me":
			meAuth = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": "u-1"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	result, err := c.Login(context.Background(), "bob1@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", result.User.ID)
	assert.Equal(t, "tok-1", c.Token())

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "Bearer tok-1", meAuth)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "This email is already registered. Please login instead."})
	})

	_, err := c.Register(context.Background(), "bob1@x.com", "secret1", "")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "This email is already registered. Please login instead.", apiErr.Message)
	assert.True(t, IsStatus(err, http.StatusConflict))
	assert.Empty(t, c.Token())
}

func TestClient_ErrorWithoutEnvelope(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListProjects(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestClient_ListTicketsQuery(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tickets", r.URL.Path)
		gotQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, map[string]any{"tickets": []map[string]any{{"id": "t-1", "ticket_number": 1}}})
	})

	tickets, err := c.ListTickets(context.Background(), TicketFilter{ProjectID: "p-1", Status: "todo"})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, 1, tickets[0].TicketNumber)
	assert.Equal(t, []string{"p-1"}, gotQuery["project_id"])
	assert.Equal(t, []string{"todo"}, gotQuery["status"])
	assert.NotContains(t, gotQuery, "priority")
}

func TestClient_UpdateTicketSendsOnlySetFields(t *testing.T) {
	var body map[string]any
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/tickets/t-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, map[string]any{"message": "Ticket updated successfully", "ticket": map[string]any{"id": "t-1", "status": "done"}})
	})

	status := "done"
	ticket, err := c.UpdateTicket(context.Background(), "t-1", TicketPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "done", ticket.Status)
	assert.Equal(t, map[string]any{"status": "done"}, body)
}

func TestClient_ToggleStar(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/p-1/star", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"message": "Project starred", "is_starred": true})
	})

	starred, err := c.ToggleStar(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, starred)
}

func TestClient_ListNotifications(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, map[string]any{
			"notifications": []map[string]any{{"id": "n-1", "type": "assigned", "read": false}},
			"unread_count":  1,
		})
	})

	page, err := c.ListNotifications(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, page.Notifications, 1)
	assert.Equal(t, "assigned", page.Notifications[0].Type)
	assert.Equal(t, 1, page.UnreadCount)
}

func TestClient_LogoutClearsToken(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
	})
	c.SetToken("tok-1")

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Token())
}

func TestClient_MissingResourceKey(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	_, err := c.GetProject(context.Background(), "p-1")
	assert.ErrorContains(t, err, `response missing "project"`)
}
