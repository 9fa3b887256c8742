package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issueflow/internal/application/testutil"
	"issueflow/internal/domain/notification"
	"issueflow/internal/domain/user"
	"issueflow/internal/shared/logger"
)

func digestPrefs() user.NotificationPreferences {
	prefs := user.DefaultNotificationPreferences()
	prefs.EmailDigest = true
	return prefs
}

func addNotificationAt(t *testing.T, repo *testutil.NotificationRepository, id, userID, title string, read bool, at time.Time) {
	t.Helper()
	n, err := notification.ReconstructNotification(id, userID, notification.TypeComment, title, read, notification.Metadata{}, at)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), n))
}

func TestSendDigest(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	repo := testutil.NewNotificationRepository()
	users := testutil.NewUserRepository()
	mailer := &recordingMailer{}

	addUser(t, users, "u1", "u1@example.com", digestPrefs())
	addUser(t, users, "u2", "u2@example.com", user.DefaultNotificationPreferences())
	addUser(t, users, "u3", "u3@example.com", digestPrefs())

	addNotificationAt(t, repo, "n1", "u1", "New comment on Login page", false, now.Add(-48*time.Hour))
	addNotificationAt(t, repo, "n2", "u1", "Already seen", true, now.Add(-24*time.Hour))
	addNotificationAt(t, repo, "n3", "u1", "Too old", false, now.Add(-10*24*time.Hour))
	addNotificationAt(t, repo, "n4", "u2", "Not subscribed", false, now.Add(-time.Hour))
	addNotificationAt(t, repo, "n5", "u3", "Read already", true, now.Add(-time.Hour))

	uc := NewSendDigestUseCase(repo, users, mailer, logger.Discard())
	sent, err := uc.Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	require.Len(t, mailer.sent, 1)
	mail := mailer.sent[0]
	assert.Equal(t, "u1@example.com", mail.to)
	assert.Equal(t, "Your IssueFlow weekly digest: 1 unread notification", mail.subject)
	assert.Contains(t, mail.body, "New comment on Login page")
	assert.NotContains(t, mail.body, "Already seen")
	assert.NotContains(t, mail.body, "Too old")
}

func TestSendDigest_MailFailureContinues(t *testing.T) {
	repo := testutil.NewNotificationRepository()
	users := testutil.NewUserRepository()
	addUser(t, users, "u1", "u1@example.com", digestPrefs())
	addNotificationAt(t, repo, "n1", "u1", "New comment", false, time.Now().UTC())

	uc := NewSendDigestUseCase(repo, users, &recordingMailer{err: errors.New("smtp down")}, logger.Discard())
	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestSendDigest_NoMailer(t *testing.T) {
	users := testutil.NewUserRepository()
	addUser(t, users, "u1", "u1@example.com", digestPrefs())

	uc := NewSendDigestUseCase(testutil.NewNotificationRepository(), users, nil, logger.Discard())
	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestDigestSubject(t *testing.T) {
	assert.Equal(t, "Your IssueFlow weekly digest: 3 unread notifications", digestSubject(3))
	assert.Equal(t, "Your IssueFlow weekly digest: 20+ unread notifications", digestSubject(digestMaxItems))
}
