package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issueflow/internal/domain/notification"
	"issueflow/internal/domain/ticket"
)

func TestCreateTicketUseCase_Validation(t *testing.T) {
	e := newEnv(t)
	uc := e.createUseCase()

	tests := []struct {
		name    string
		cmd     CreateTicketCommand
		code    int
		message string
	}{
		{"missing title", CreateTicketCommand{ProjectID: e.project.ID(), UserID: "creator"}, 400, "Title and project_id are required"},
		{"missing project", CreateTicketCommand{Title: "x", UserID: "creator"}, 400, "Title and project_id are required"},
		{"bad status", CreateTicketCommand{ProjectID: e.project.ID(), Title: "x", Status: "blocked", UserID: "creator"}, 400, "Invalid status value"},
		{"bad type", CreateTicketCommand{ProjectID: e.project.ID(), Title: "x", TicketType: "story", UserID: "creator"}, 400, "Invalid ticket type"},
		{"unknown project", CreateTicketCommand{ProjectID: "nope", Title: "x", UserID: "creator"}, 404, "Project not found"},
		{"non-member", CreateTicketCommand{ProjectID: e.project.ID(), Title: "x", UserID: "stranger"}, 403, "Access denied to this project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			assert.Equal(t, tt.code, codeOf(err))
			assert.Equal(t, tt.message, messageOf(err))
		})
	}
}

func TestCreateTicketUseCase_Success(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	uc := e.createUseCase()

	first, err := uc.Execute(ctx, CreateTicketCommand{
		ProjectID:   e.project.ID(),
		Title:       "Login fails",
		Description: "if a < b then swap <script>alert(1)</script>",
		Priority:    "urgent",
		UserID:      "creator",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.TicketNumber)
	assert.Equal(t, "medium", first.Priority)
	assert.Equal(t, "todo", first.Status)
	assert.Equal(t, "task", first.TicketType)
	assert.Equal(t, "if a < b then swap <script>alert(1)</script>", first.Description, "stored as written")
	assert.Contains(t, first.DescriptionHTML, "if a &lt; b then swap")
	assert.NotContains(t, first.DescriptionHTML, "<script>")
	assert.Equal(t, []string{}, first.Labels)
	assert.Equal(t, 1, e.tx.Calls)

	second, err := uc.Execute(ctx, CreateTicketCommand{ProjectID: e.project.ID(), Title: "Second", UserID: "member"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.TicketNumber)

	assert.Empty(t, e.notifier.Requests())
}

func TestCreateTicketUseCase_TrashedProject(t *testing.T) {
	e := newEnv(t)
	e.project.Trash()

	_, err := e.createUseCase().Execute(context.Background(), CreateTicketCommand{ProjectID: e.project.ID(), Title: "x", UserID: "creator"})
	assert.Equal(t, 404, codeOf(err))
	assert.Equal(t, "Project not found", messageOf(err))
}

func TestCreateTicketUseCase_NotifiesAssignee(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	uc := e.createUseCase()

	_, err := uc.Execute(ctx, CreateTicketCommand{ProjectID: e.project.ID(), Title: "Self", Assignee: strPtr("creator"), UserID: "creator"})
	require.NoError(t, err)
	assert.Empty(t, e.notifier.Requests())

	created, err := uc.Execute(ctx, CreateTicketCommand{ProjectID: e.project.ID(), Title: "Fix login", Assignee: strPtr("member"), UserID: "creator"})
	require.NoError(t, err)

	reqs := e.notifier.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "member", reqs[0].RecipientID)
	assert.Equal(t, notification.TypeAssigned, reqs[0].Type)
	assert.Equal(t, `You were assigned to "Fix login" in Alpha`, reqs[0].Title)
	require.NotNil(t, reqs[0].Metadata.TicketID)
	assert.Equal(t, created.ID, *reqs[0].Metadata.TicketID)
}

func TestUpdateTicketUseCase(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	created, err := e.createUseCase().Execute(ctx, CreateTicketCommand{ProjectID: e.project.ID(), Title: "Task", UserID: "creator"})
	require.NoError(t, err)
	uc := NewUpdateTicketUseCase(e.policy, e.tickets, e.notifier, e.markup, e.log)

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateTicketCommand{TicketID: created.ID, UserID: "member", Patch: ticket.Patch{Status: strPtr("blocked")}})
		assert.Equal(t, 400, codeOf(err))
		assert.Equal(t, "Invalid status value", messageOf(err))
	})

	t.Run("invalid priority is coerced", func(t *testing.T) {
		result, err := uc.Execute(ctx, UpdateTicketCommand{TicketID: created.ID, UserID: "member", Patch: ticket.Patch{Priority: strPtr("bogus")}})
		require.NoError(t, err)
		assert.Equal(t, "medium", result.Priority)
	})

	t.Run("exactly one notification per assignee change", func(t *testing.T) {
		assign := ticket.Patch{Assignee: ticket.Nullable[string]{Set: true, Value: strPtr("creator")}}

		_, err := uc.Execute(ctx, UpdateTicketCommand{TicketID: created.ID, UserID: "member", Patch: assign})
		require.NoError(t, err)
		_, err = uc.Execute(ctx, UpdateTicketCommand{TicketID: created.ID, UserID: "member", Patch: assign})
		require.NoError(t, err)

		reqs := e.notifier.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "creator", reqs[0].RecipientID)
	})

	t.Run("self assignment does not notify", func(t *testing.T) {
		before := len(e.notifier.Requests())
		_, err := uc.Execute(ctx, UpdateTicketCommand{
			TicketID: created.ID,
			UserID:   "member",
			Patch:    ticket.Patch{Assignee: ticket.Nullable[string]{Set: true, Value: strPtr("member")}},
		})
		require.NoError(t, err)
		assert.Len(t, e.notifier.Requests(), before)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateTicketCommand{TicketID: created.ID, UserID: "stranger", Patch: ticket.Patch{Title: strPtr("x")}})
		assert.Equal(t, 403, codeOf(err))
		assert.Equal(t, "Access denied to this ticket", messageOf(err))
	})

	t.Run("missing ticket", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateTicketCommand{TicketID: "00000000-0000-0000-0000-000000000000", UserID: "member"})
		assert.Equal(t, 404, codeOf(err))
	})

	t.Run("short id is invalid", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateTicketCommand{TicketID: "abc", UserID: "member"})
		assert.Equal(t, "Invalid ticket id", messageOf(err))
	})
}

func TestListTicketsAndStats(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	create := e.createUseCase()
	for _, cmd := range []CreateTicketCommand{
		{Title: "a", Status: "done", TicketType: "bug"},
		{Title: "b", Priority: "high"},
		{Title: "c", Assignee: strPtr("member")},
	} {
		cmd.ProjectID = e.project.ID()
		cmd.UserID = "creator"
		_, err := create.Execute(ctx, cmd)
		require.NoError(t, err)
	}

	list := NewListTicketsUseCase(e.policy, e.tickets, e.markup, e.log)

	_, err := list.Execute(ctx, ListTicketsQuery{UserID: "creator"})
	assert.Equal(t, "project_id query parameter is required", messageOf(err))

	all, err := list.Execute(ctx, ListTicketsQuery{ProjectID: e.project.ID(), UserID: "member"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Title)

	done, err := list.Execute(ctx, ListTicketsQuery{ProjectID: e.project.ID(), Status: "done", UserID: "member"})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "a", done[0].Title)

	assigned, err := list.Execute(ctx, ListTicketsQuery{ProjectID: e.project.ID(), Assignee: "member", UserID: "member"})
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	stats, err := NewGetTicketStatsUseCase(e.policy, e.tickets, e.log).Execute(ctx, e.project.ID(), "member")
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.ByStatus["done"])
	assert.Equal(t, int64(2), stats.ByStatus["todo"])
	assert.Equal(t, int64(0), stats.ByStatus["in_review"])
	assert.Equal(t, int64(1), stats.ByPriority["high"])
	assert.Equal(t, int64(1), stats.ByType["bug"])
	assert.Len(t, stats.ByType, 5)

	_, err = NewGetTicketStatsUseCase(e.policy, e.tickets, e.log).Execute(ctx, e.project.ID(), "stranger")
	assert.Equal(t, 403, codeOf(err))
}

func TestDeleteTicketUseCase(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	created, err := e.createUseCase().Execute(ctx, CreateTicketCommand{ProjectID: e.project.ID(), Title: "Task", UserID: "creator"})
	require.NoError(t, err)
	c, err := ticket.NewComment(created.ID, "creator", "note")
	require.NoError(t, err)
	require.NoError(t, e.comments.Create(ctx, c))

	uc := NewDeleteTicketUseCase(e.policy, e.tickets, e.comments, e.tx, e.log)
	assert.Equal(t, 403, codeOf(uc.Execute(ctx, created.ID, "stranger")))

	require.NoError(t, uc.Execute(ctx, created.ID, "member"))
	assert.Zero(t, e.comments.Len())
	got, err := e.tickets.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
