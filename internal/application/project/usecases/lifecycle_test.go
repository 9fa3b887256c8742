package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issueflow/internal/domain/ticket"
)

func TestCreateProjectUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creator becomes the sole member", func(t *testing.T) {
		e := newEnv(t)
		uc := NewCreateProjectUseCase(e.projects, e.members, e.log)

		result, err := uc.Execute(ctx, CreateProjectCommand{Title: "alpha", UserID: "creator"})
		require.NoError(t, err)
		assert.Equal(t, "ALP", result.ProjectKey)
		assert.Nil(t, result.DeletedAt)

		members, err := e.members.ListByProject(ctx, result.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "creator", members[0].UserID())
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		e := newEnv(t)
		uc := NewCreateProjectUseCase(e.projects, e.members, e.log)

		_, err := uc.Execute(ctx, CreateProjectCommand{Title: "  ", UserID: "creator"})
		assert.Equal(t, 400, codeOf(err))
		assert.Equal(t, "Title is required", messageOf(err))
	})

	t.Run("membership failure rolls the project back", func(t *testing.T) {
		e := newEnv(t)
		e.members.CreateErr = errors.New("insert failed")
		uc := NewCreateProjectUseCase(e.projects, e.members, e.log)

		_, err := uc.Execute(ctx, CreateProjectCommand{Title: "Alpha", UserID: "creator"})
		assert.Equal(t, 500, codeOf(err))
		assert.Equal(t, "Project created but failed to add you as member. Please try again.", messageOf(err))
		assert.Zero(t, e.projects.Len())
	})
}

func TestGetProjectUseCase(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.createProject(t, "Alpha", "creator")
	e.addMember(t, p.ID(), "member")
	e.createTicket(t, p.ID())
	uc := NewGetProjectUseCase(e.policy, e.members, e.tickets, e.log)

	t.Run("member sees counts", func(t *testing.T) {
		result, err := uc.Execute(ctx, p.ID(), "member")
		require.NoError(t, err)
		require.NotNil(t, result.MemberCount)
		assert.Equal(t, int64(2), *result.MemberCount)
		assert.Equal(t, int64(1), *result.TicketCount)
		require.NotNil(t, result.IsStarred)
		assert.False(t, *result.IsStarred)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		_, err := uc.Execute(ctx, p.ID(), "stranger")
		assert.Equal(t, 403, codeOf(err))
		assert.Equal(t, "Access denied to this project", messageOf(err))
	})

	t.Run("missing project", func(t *testing.T) {
		_, err := uc.Execute(ctx, "missing", "creator")
		assert.Equal(t, 404, codeOf(err))
		assert.Equal(t, "Project not found", messageOf(err))
	})
}

func TestTrashRestoreVisibility(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.createProject(t, "Alpha", "creator")
	e.addMember(t, p.ID(), "member")

	trash := NewTrashProjectUseCase(e.policy, e.projects, e.log)
	restore := NewRestoreProjectUseCase(e.policy, e.projects, e.log)
	get := NewGetProjectUseCase(e.policy, e.members, e.tickets, e.log)
	list := NewListProjectsUseCase(e.projects, e.members, e.log)
	deleted := NewListDeletedProjectsUseCase(e.projects, e.log)

	_, err := trash.Execute(ctx, p.ID(), "member")
	assert.Equal(t, 403, codeOf(err))
	assert.Equal(t, "Only the project creator can delete the project", messageOf(err))

	err = restore.Execute(ctx, p.ID(), "creator")
	assert.Equal(t, 400, codeOf(err))
	assert.Equal(t, "Project is not in trash", messageOf(err))

	trashed, err := trash.Execute(ctx, p.ID(), "creator")
	require.NoError(t, err)
	require.NotNil(t, trashed.DeletedAt)

	for _, caller := range []string{"creator", "member"} {
		_, err = get.Execute(ctx, p.ID(), caller)
		assert.Equal(t, 404, codeOf(err))
		assert.Equal(t, "Project is in trash. Restore it from Trash first.", messageOf(err))

		active, err := list.Execute(ctx, caller)
		require.NoError(t, err)
		assert.Empty(t, active)
	}

	creatorTrash, err := deleted.Execute(ctx, "creator")
	require.NoError(t, err)
	assert.Len(t, creatorTrash, 1)
	memberTrash, err := deleted.Execute(ctx, "member")
	require.NoError(t, err)
	assert.Empty(t, memberTrash)

	err = restore.Execute(ctx, p.ID(), "member")
	assert.Equal(t, 403, codeOf(err))
	require.NoError(t, restore.Execute(ctx, p.ID(), "creator"))

	restored, err := get.Execute(ctx, p.ID(), "member")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", restored.Title)
	assert.Equal(t, p.ProjectKey(), restored.ProjectKey)
	assert.Nil(t, restored.DeletedAt)
}

func TestPurgeProjectUseCase(t *testing.T) {
	ctx := context.Background()

	newPurge := func(e *env) *PurgeProjectUseCase {
		return NewPurgeProjectUseCase(e.policy, e.projects, e.members, e.tickets, e.comments, e.tx, e.log)
	}

	t.Run("active project must be trashed first", func(t *testing.T) {
		e := newEnv(t)
		p := e.createProject(t, "Alpha", "creator")

		err := newPurge(e).Execute(ctx, p.ID(), "creator")
		assert.Equal(t, 400, codeOf(err))
		assert.Equal(t, "Move project to trash first, then you can delete it permanently.", messageOf(err))
		assert.Zero(t, e.tx.Calls)
	})

	t.Run("non-creator is forbidden", func(t *testing.T) {
		e := newEnv(t)
		p := e.createProject(t, "Alpha", "creator")
		err := newPurge(e).Execute(ctx, p.ID(), "member")
		assert.Equal(t, 403, codeOf(err))
		assert.Equal(t, "Only the project creator can permanently delete the project", messageOf(err))
	})

	t.Run("cascades comments tickets and members", func(t *testing.T) {
		e := newEnv(t)
		p := e.createProject(t, "Alpha", "creator")
		e.addMember(t, p.ID(), "member")
		tk := e.createTicket(t, p.ID())
		c, err := ticket.NewComment(tk.ID(), "member", "hi")
		require.NoError(t, err)
		require.NoError(t, e.comments.Create(ctx, c))

		_, err = NewTrashProjectUseCase(e.policy, e.projects, e.log).Execute(ctx, p.ID(), "creator")
		require.NoError(t, err)
		require.NoError(t, newPurge(e).Execute(ctx, p.ID(), "creator"))

		assert.Equal(t, 1, e.tx.Calls)
		assert.Zero(t, e.projects.Len())
		assert.Zero(t, e.comments.Len())
		count, _ := e.tickets.CountByProject(ctx, p.ID())
		assert.Zero(t, count)
		members, _ := e.members.ListByProject(ctx, p.ID())
		assert.Empty(t, members)
	})

	t.Run("transaction failure is internal", func(t *testing.T) {
		e := newEnv(t)
		p := e.createProject(t, "Alpha", "creator")
		_, err := NewTrashProjectUseCase(e.policy, e.projects, e.log).Execute(ctx, p.ID(), "creator")
		require.NoError(t, err)
		e.tx.Err = errors.New("begin failed")

		err = newPurge(e).Execute(ctx, p.ID(), "creator")
		assert.Equal(t, 500, codeOf(err))
		assert.Equal(t, 1, e.projects.Len())
	})
}

func TestUpdateProjectUseCase(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.createProject(t, "Alpha", "creator")
	e.addMember(t, p.ID(), "member")
	uc := NewUpdateProjectUseCase(e.policy, e.projects, e.log)

	title := "Beta"
	key := "bet"
	result, err := uc.Execute(ctx, UpdateProjectCommand{ProjectID: p.ID(), UserID: "member", Title: &title, ProjectKey: &key})
	require.NoError(t, err)
	assert.Equal(t, "Beta", result.Title)
	assert.Equal(t, "BET", result.ProjectKey)

	blank := " "
	_, err = uc.Execute(ctx, UpdateProjectCommand{ProjectID: p.ID(), UserID: "member", Title: &blank})
	assert.Equal(t, 400, codeOf(err))

	_, err = uc.Execute(ctx, UpdateProjectCommand{ProjectID: p.ID(), UserID: "stranger", Title: &title})
	assert.Equal(t, 403, codeOf(err))
}
