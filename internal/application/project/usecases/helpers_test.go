package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"issueflow/internal/application/access"
	"issueflow/internal/application/testutil"
	"issueflow/internal/domain/project"
	"issueflow/internal/domain/ticket"
	"issueflow/internal/domain/user"
	"issueflow/internal/infrastructure/permission"
	apperrors "issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type env struct {
	projects *testutil.ProjectRepository
	members  *testutil.MemberRepository
	tickets  *testutil.TicketRepository
	comments *testutil.CommentRepository
	users    *testutil.UserRepository
	tx       *testutil.Transactor
	policy   *access.Policy
	log      logger.Interface
}

func newEnv(t *testing.T) *env {
	t.Helper()
	enforcer, err := permission.NewEnforcer(nil, logger.Discard())
	require.NoError(t, err)

	e := &env{
		projects: testutil.NewProjectRepository(),
		members:  testutil.NewMemberRepository(),
		tickets:  testutil.NewTicketRepository(),
		comments: testutil.NewCommentRepository(),
		users:    testutil.NewUserRepository(),
		tx:       &testutil.Transactor{},
		log:      logger.Discard(),
	}
	e.policy = access.NewPolicy(e.projects, e.members, enforcer, e.log)
	return e
}

func (e *env) createProject(t *testing.T, title, creator string) *project.Project {
	t.Helper()
	uc := NewCreateProjectUseCase(e.projects, e.members, e.log)
	result, err := uc.Execute(context.Background(), CreateProjectCommand{Title: title, UserID: creator})
	require.NoError(t, err)
	p, err := e.projects.GetByID(context.Background(), result.ID)
	require.NoError(t, err)
	return p
}

func (e *env) addMember(t *testing.T, projectID, userID string) {
	t.Helper()
	m, err := project.NewMember(projectID, userID)
	require.NoError(t, err)
	require.NoError(t, e.members.Create(context.Background(), m))
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }
func (plainHasher) Verify(p, h string) error      { return nil }

func (e *env) createUser(t *testing.T, email string) *user.User {
	t.Helper()
	u, err := user.NewUser(email, "secret1", "", plainHasher{})
	require.NoError(t, err)
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *env) createTicket(t *testing.T, projectID string) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(ticket.NewTicketParams{ProjectID: projectID, Title: "Ticket", CreatedBy: "creator"})
	require.NoError(t, err)
	n, err := e.tickets.NextNumber(context.Background(), projectID)
	require.NoError(t, err)
	require.NoError(t, tk.SetNumber(n))
	require.NoError(t, e.tickets.Create(context.Background(), tk))
	return tk
}

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
