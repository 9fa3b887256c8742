package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appDto "issueflow/internal/application/notification/dto"
	"issueflow/internal/interfaces/http/handlers/testutil"
	"issueflow/internal/shared/constants"
	"issueflow/internal/shared/errors"
)

// =====================================================================
// Mock notification service
// =====================================================================

type mockNotificationService struct {
	listNotificationsFn  func(ctx context.Context, userID string, limit int) (*appDto.ListResult, error)
	getUnreadCountFn     func(ctx context.Context, userID string) (*appDto.UnreadCountDTO, error)
	markNotifAsReadFn    func(ctx context.Context, id, userID string) error
	markAllNotifAsReadFn func(ctx context.Context, userID string) error
}

func (m *mockNotificationService) ListNotifications(ctx context.Context, userID string, limit int) (*appDto.ListResult, error) {
	if m.listNotificationsFn != nil {
		return m.listNotificationsFn(ctx, userID, limit)
	}
	return &appDto.ListResult{Notifications: []*appDto.NotificationDTO{}}, nil
}

func (m *mockNotificationService) GetUnreadCount(ctx context.Context, userID string) (*appDto.UnreadCountDTO, error) {
	if m.getUnreadCountFn != nil {
		return m.getUnreadCountFn(ctx, userID)
	}
	return &appDto.UnreadCountDTO{}, nil
}

func (m *mockNotificationService) MarkNotificationAsRead(ctx context.Context, id, userID string) error {
	if m.markNotifAsReadFn != nil {
		return m.markNotifAsReadFn(ctx, id, userID)
	}
	return nil
}

func (m *mockNotificationService) MarkAllNotificationsAsRead(ctx context.Context, userID string) error {
	if m.markAllNotifAsReadFn != nil {
		return m.markAllNotifAsReadFn(ctx, userID)
	}
	return nil
}

// =====================================================================
// Tests
// =====================================================================

func TestNotificationHandler_ListNotifications(t *testing.T) {
	tests := []struct {
		name      string
		query     map[string]string
		wantLimit int
	}{
		{"default limit", nil, constants.DefaultNotificationLimit},
		{"explicit limit", map[string]string{"limit": "10"}, 10},
		{"garbage limit", map[string]string{"limit": "lots"}, constants.DefaultNotificationLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			svc := &mockNotificationService{listNotificationsFn: func(_ context.Context, _ string, limit int) (*appDto.ListResult, error) {
				gotLimit = limit
				return &appDto.ListResult{
					Notifications: []*appDto.NotificationDTO{{ID: "n-1", Title: "You were assigned"}},
					UnreadCount:   1,
				}, nil
			}}
			h := NewNotificationHandler(svc, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodGet, "/api/notifications", nil)
			testutil.SetAuthContext(c, "u-1")
			if tt.query != nil {
				testutil.SetQueryParams(c, tt.query)
			}

			h.ListNotifications(c)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantLimit, gotLimit)

			var resp struct {
				Notifications []*appDto.NotificationDTO `json:"notifications"`
				UnreadCount   int                       `json:"unread_count"`
			}
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Len(t, resp.Notifications, 1)
			assert.Equal(t, 1, resp.UnreadCount)
		})
	}
}

func TestNotificationHandler_GetUnreadCount(t *testing.T) {
	svc := &mockNotificationService{getUnreadCountFn: func(context.Context, string) (*appDto.UnreadCountDTO, error) {
		return &appDto.UnreadCountDTO{UnreadCount: 4}, nil
	}}
	h := NewNotificationHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/notifications/unread-count", nil)
	testutil.SetAuthContext(c, "u-1")

	h.GetUnreadCount(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unread_count":4}`, w.Body.String())
}

func TestNotificationHandler_MarkAsRead(t *testing.T) {
	var gotID, gotUser string
	svc := &mockNotificationService{markNotifAsReadFn: func(_ context.Context, id, userID string) error {
		gotID, gotUser = id, userID
		return nil
	}}
	h := NewNotificationHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/notifications/n-1/read", nil)
	testutil.SetAuthContext(c, "u-1")
	testutil.SetURLParam(c, "id", "n-1")

	h.MarkAsRead(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "n-1", gotID)
	assert.Equal(t, "u-1", gotUser)
}

func TestNotificationHandler_MarkAllAsRead_Idempotent(t *testing.T) {
	calls := 0
	svc := &mockNotificationService{markAllNotifAsReadFn: func(context.Context, string) error {
		calls++
		return nil
	}}
	h := NewNotificationHandler(svc, testutil.NewMockLogger())

	for i := 0; i < 2; i++ {
		c, w := testutil.NewTestContext(http.MethodPost, "/api/notifications/read-all", nil)
		testutil.SetAuthContext(c, "u-1")

		h.MarkAllAsRead(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"All marked as read"}`, w.Body.String())
	}
	assert.Equal(t, 2, calls)
}

func TestNotificationHandler_InternalErrorKeepsResourceMessage(t *testing.T) {
	svc := &mockNotificationService{getUnreadCountFn: func(context.Context, string) (*appDto.UnreadCountDTO, error) {
		return nil, errors.NewInternalError("Failed to get unread count")
	}}
	h := NewNotificationHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/notifications/unread-count", nil)
	testutil.SetAuthContext(c, "u-1")

	h.GetUnreadCount(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to get unread count", testutil.ErrorMessage(w))
}
