package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issueflow/internal/application/ticket/dto"
	"issueflow/internal/domain/notification"
)

func createTicket(t *testing.T, e *env, cmd CreateTicketCommand) *dto.TicketDTO {
	t.Helper()
	cmd.ProjectID = e.project.ID()
	result, err := e.createUseCase().Execute(context.Background(), cmd)
	require.NoError(t, err)
	return result
}

func TestCreateCommentUseCase(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tk := createTicket(t, e, CreateTicketCommand{Title: "Fix login", UserID: "creator", Assignee: strPtr("member")})
	before := len(e.notifier.Requests())
	uc := NewCreateCommentUseCase(e.policy, e.tickets, e.comments, e.notifier, e.markup, e.log)

	t.Run("validation", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateCommentCommand{TicketID: tk.ID, Text: "  ", UserID: "member"})
		assert.Equal(t, "ticket_id and text are required", messageOf(err))

		_, err = uc.Execute(ctx, CreateCommentCommand{TicketID: "temp-abc123", Text: "hi", UserID: "member"})
		assert.Equal(t, 400, codeOf(err))
		assert.Equal(t, "Save the ticket first, then add a comment.", messageOf(err))

		_, err = uc.Execute(ctx, CreateCommentCommand{TicketID: "missing-ticket-id", Text: "hi", UserID: "member"})
		assert.Equal(t, 404, codeOf(err))

		_, err = uc.Execute(ctx, CreateCommentCommand{TicketID: tk.ID, Text: "hi", UserID: "stranger"})
		assert.Equal(t, "Access denied to this ticket", messageOf(err))
	})

	t.Run("assignee commenting notifies only the creator", func(t *testing.T) {
		c, err := uc.Execute(ctx, CreateCommentCommand{TicketID: tk.ID, Text: " looks good ", UserID: "member"})
		require.NoError(t, err)
		assert.Equal(t, "looks good", c.Text)

		reqs := e.notifier.Requests()[before:]
		require.Len(t, reqs, 1)
		assert.Equal(t, "creator", reqs[0].RecipientID)
		assert.Equal(t, notification.TypeComment, reqs[0].Type)
		assert.Equal(t, `New comment on "Fix login" in Alpha`, reqs[0].Title)
	})

	t.Run("creator commenting on own unassigned ticket notifies nobody", func(t *testing.T) {
		own := createTicket(t, e, CreateTicketCommand{Title: "Solo", UserID: "creator"})
		count := len(e.notifier.Requests())

		_, err := uc.Execute(ctx, CreateCommentCommand{TicketID: own.ID, Text: "note to self", UserID: "creator"})
		require.NoError(t, err)
		assert.Len(t, e.notifier.Requests(), count)
	})
}

func TestCommentAuthorOnlyEdits(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tk := createTicket(t, e, CreateTicketCommand{Title: "Task", UserID: "creator"})

	create := NewCreateCommentUseCase(e.policy, e.tickets, e.comments, e.notifier, e.markup, e.log)
	c, err := create.Execute(ctx, CreateCommentCommand{TicketID: tk.ID, Text: "first", UserID: "member"})
	require.NoError(t, err)

	update := NewUpdateCommentUseCase(e.policy, e.tickets, e.comments, e.markup, e.log)
	_, err = update.Execute(ctx, UpdateCommentCommand{CommentID: c.ID, Text: "hijack", UserID: "creator"})
	assert.Equal(t, 403, codeOf(err))
	assert.Equal(t, "You can only update your own comments", messageOf(err))

	_, err = update.Execute(ctx, UpdateCommentCommand{CommentID: c.ID, Text: " ", UserID: "member"})
	assert.Equal(t, "Text is required", messageOf(err))

	updated, err := update.Execute(ctx, UpdateCommentCommand{CommentID: c.ID, Text: "  use vector<int> here -> done <3  ", UserID: "member"})
	require.NoError(t, err)
	assert.Equal(t, "use vector<int> here -> done <3", updated.Text)

	updated, err = update.Execute(ctx, UpdateCommentCommand{CommentID: c.ID, Text: "edited", UserID: "member"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	get := NewGetCommentUseCase(e.policy, e.tickets, e.comments, e.markup, e.log)
	fetched, err := get.Execute(ctx, c.ID, "creator")
	require.NoError(t, err)
	assert.Equal(t, "edited", fetched.Text)
	_, err = get.Execute(ctx, c.ID, "stranger")
	assert.Equal(t, "Access denied to this comment", messageOf(err))
	_, err = get.Execute(ctx, "missing", "creator")
	assert.Equal(t, "Comment not found", messageOf(err))

	list := NewListCommentsUseCase(e.policy, e.tickets, e.comments, e.markup, e.log)
	_, err = list.Execute(ctx, "", "member")
	assert.Equal(t, "ticket_id query parameter is required", messageOf(err))
	comments, err := list.Execute(ctx, tk.ID, "creator")
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	del := NewDeleteCommentUseCase(e.policy, e.tickets, e.comments, e.log)
	err = del.Execute(ctx, c.ID, "creator")
	assert.Equal(t, "You can only delete your own comments", messageOf(err))
	require.NoError(t, del.Execute(ctx, c.ID, "member"))
	assert.Zero(t, e.comments.Len())
}

func TestCommentEdits_RequireCurrentMembership(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	tk := createTicket(t, e, CreateTicketCommand{Title: "Task", UserID: "creator"})

	create := NewCreateCommentUseCase(e.policy, e.tickets, e.comments, e.notifier, e.markup, e.log)
	c, err := create.Execute(ctx, CreateCommentCommand{TicketID: tk.ID, Text: "mine", UserID: "member"})
	require.NoError(t, err)

	e.members.Remove(e.project.ID(), "member")

	update := NewUpdateCommentUseCase(e.policy, e.tickets, e.comments, e.markup, e.log)
	_, err = update.Execute(ctx, UpdateCommentCommand{CommentID: c.ID, Text: "still mine", UserID: "member"})
	assert.Equal(t, 403, codeOf(err))
	assert.Equal(t, "Access denied to this comment", messageOf(err))

	del := NewDeleteCommentUseCase(e.policy, e.tickets, e.comments, e.log)
	err = del.Execute(ctx, c.ID, "member")
	assert.Equal(t, 403, codeOf(err))
	assert.Equal(t, "Access denied to this comment", messageOf(err))
	assert.Equal(t, 1, e.comments.Len())
}
