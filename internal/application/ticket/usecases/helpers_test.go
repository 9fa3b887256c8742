package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"issueflow/internal/application/access"
	"issueflow/internal/application/testutil"
	"issueflow/internal/domain/project"
	"issueflow/internal/infrastructure/permission"
	apperrors "issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/services/markup"
)

type env struct {
	projects *testutil.ProjectRepository
	members  *testutil.MemberRepository
	tickets  *testutil.TicketRepository
	comments *testutil.CommentRepository
	notifier *testutil.Notifier
	tx       *testutil.Transactor
	policy   *access.Policy
	markup   markup.Service
	log      logger.Interface
	project  *project.Project
}

// newEnv builds a project "Alpha" created by "creator" with "member" as a
// second member.
func newEnv(t *testing.T) *env {
	t.Helper()
	enforcer, err := permission.NewEnforcer(nil, logger.Discard())
	require.NoError(t, err)

	e := &env{
		projects: testutil.NewProjectRepository(),
		members:  testutil.NewMemberRepository(),
		tickets:  testutil.NewTicketRepository(),
		comments: testutil.NewCommentRepository(),
		notifier: &testutil.Notifier{},
		tx:       &testutil.Transactor{},
		markup:   markup.NewService(),
		log:      logger.Discard(),
	}
	e.policy = access.NewPolicy(e.projects, e.members, enforcer, e.log)

	ctx := context.Background()
	p, err := project.NewProject("Alpha", nil, "", "creator")
	require.NoError(t, err)
	require.NoError(t, e.projects.Create(ctx, p))
	for _, userID := range []string{"creator", "member"} {
		m, err := project.NewMember(p.ID(), userID)
		require.NoError(t, err)
		require.NoError(t, e.members.Create(ctx, m))
	}
	e.project = p
	return e
}

func (e *env) createUseCase() *CreateTicketUseCase {
	return NewCreateTicketUseCase(e.policy, e.tickets, e.tx, e.notifier, e.markup, e.log)
}

func strPtr(s string) *string { return &s }

func codeOf(err error) int {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return 0
}

func messageOf(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return ""
}
