package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteMemberUseCase(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.createProject(t, "Alpha", "creator")
	bob := e.createUser(t, "bob@example.com")
	uc := NewInviteMemberUseCase(e.policy, e.members, e.users, e.log)

	tests := []struct {
		name    string
		cmd     InviteMemberCommand
		code    int
		message string
	}{
		{"empty email", InviteMemberCommand{ProjectID: p.ID(), UserID: "creator", Email: " "}, 400, "Valid email is required"},
		{"no at sign", InviteMemberCommand{ProjectID: p.ID(), UserID: "creator", Email: "bob"}, 400, "Valid email is required"},
		{"digits only local part", InviteMemberCommand{ProjectID: p.ID(), UserID: "creator", Email: "5551234@example.com"}, 400, "Valid email is required"},
		{"not creator", InviteMemberCommand{ProjectID: p.ID(), UserID: "someone", Email: "bob@example.com"}, 403, "Only the project creator (admin) can invite members"},
		{"unknown user", InviteMemberCommand{ProjectID: p.ID(), UserID: "creator", Email: "nobody@example.com"}, 404, "No user found with this email. They must register first."},
		{"missing project", InviteMemberCommand{ProjectID: "missing", UserID: "creator", Email: "bob@example.com"}, 404, "Project not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.cmd)
			assert.Equal(t, tt.code, codeOf(err))
			assert.Equal(t, tt.message, messageOf(err))
		})
	}

	t.Run("invites and rejects duplicates", func(t *testing.T) {
		member, err := uc.Execute(ctx, InviteMemberCommand{ProjectID: p.ID(), UserID: "creator", Email: "  BOB@example.com "})
		require.NoError(t, err)
		assert.Equal(t, bob.ID(), member.UserID)
		require.NotNil(t, member.Email)
		assert.Equal(t, "bob@example.com", *member.Email)

		_, err = uc.Execute(ctx, InviteMemberCommand{ProjectID: p.ID(), UserID: "creator", Email: "bob@example.com"})
		assert.Equal(t, 400, codeOf(err))
		assert.Equal(t, "This user is already a member of the project", messageOf(err))
	})
}

func TestAddMemberUseCase(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	p := e.createProject(t, "Alpha", "creator")
	carol := e.createUser(t, "carol@example.com")
	uc := NewAddMemberUseCase(e.policy, e.members, e.users, e.log)

	_, err := uc.Execute(ctx, AddMemberCommand{ProjectID: p.ID(), UserID: "creator"})
	assert.Equal(t, "user_id is required", messageOf(err))

	_, err = uc.Execute(ctx, AddMemberCommand{ProjectID: p.ID(), UserID: carol.ID(), MemberUserID: carol.ID()})
	assert.Equal(t, 403, codeOf(err))

	member, err := uc.Execute(ctx, AddMemberCommand{ProjectID: p.ID(), UserID: "creator", MemberUserID: carol.ID()})
	require.NoError(t, err)
	assert.Equal(t, carol.ID(), member.UserID)

	_, err = uc.Execute(ctx, AddMemberCommand{ProjectID: p.ID(), UserID: "creator", MemberUserID: carol.ID()})
	assert.Equal(t, 400, codeOf(err))
	assert.Equal(t, "User is already a member of this project", messageOf(err))
}

func TestToggleStarAndListMembers(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	dave := e.createUser(t, "dave@example.com")
	p := e.createProject(t, "Alpha", dave.ID())
	e.addMember(t, p.ID(), "ghost")

	star := NewToggleStarUseCase(e.policy, e.members, e.log)
	starred, err := star.Execute(ctx, p.ID(), dave.ID())
	require.NoError(t, err)
	assert.True(t, starred)
	starred, err = star.Execute(ctx, p.ID(), dave.ID())
	require.NoError(t, err)
	assert.False(t, starred)

	_, err = star.Execute(ctx, p.ID(), "stranger")
	assert.Equal(t, 403, codeOf(err))

	list := NewListMembersUseCase(e.policy, e.members, e.users, e.log)
	members, err := list.Execute(ctx, p.ID(), dave.ID())
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.NotNil(t, members[0].Email)
	assert.Equal(t, "dave@example.com", *members[0].Email)
	assert.Nil(t, members[1].Email)

	_, err = list.Execute(ctx, p.ID(), "stranger")
	assert.Equal(t, "Access denied", messageOf(err))
}

func TestListProjects_StarFlag(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	a := e.createProject(t, "Alpha", "creator")
	e.createProject(t, "Beta", "other")

	_, err := NewToggleStarUseCase(e.policy, e.members, e.log).Execute(ctx, a.ID(), "creator")
	require.NoError(t, err)

	projects, err := NewListProjectsUseCase(e.projects, e.members, e.log).Execute(ctx, "creator")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Alpha", projects[0].Title)
	require.NotNil(t, projects[0].IsStarred)
	assert.True(t, *projects[0].IsStarred)
}
