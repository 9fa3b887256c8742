package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		kind    Type
		title   string
		wantErr error
	}{
		{"valid", "u1", TypeAssigned, "hello", nil},
		{"missing recipient", "", TypeComment, "hello", ErrRecipientRequired},
		{"unknown type", "u1", Type("mention"), "hello", ErrInvalidType},
		{"empty title", "u1", TypeComment, "", ErrTitleRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewNotification(tt.userID, tt.kind, tt.title, Metadata{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, n.ID())
			assert.False(t, n.IsRead())
		})
	}
}

func TestNewNotification_TruncatesTitle(t *testing.T) {
	n, err := NewNotification("u1", TypeComment, strings.Repeat("a", maxTitleLength+20), Metadata{})
	require.NoError(t, err)
	assert.Len(t, n.Title(), maxTitleLength)
}

func TestTitles(t *testing.T) {
	assert.Equal(t, `You were assigned to "Fix login" in Alpha`, AssignedTitle("Fix login", "Alpha"))
	assert.Equal(t, `New comment on "Fix login" in Project`, CommentTitle("Fix login", ""))
}

func TestRequest_ShouldDeliver(t *testing.T) {
	actor := "u1"
	tests := []struct {
		name string
		req  Request
		want bool
	}{
		{"deliverable", Request{RecipientID: "u2", Type: TypeComment, Title: "x", Metadata: Metadata{ActorID: &actor}}, true},
		{"self", Request{RecipientID: "u1", Type: TypeComment, Title: "x", Metadata: Metadata{ActorID: &actor}}, false},
		{"no recipient", Request{Type: TypeComment, Title: "x"}, false},
		{"no title", Request{RecipientID: "u2", Type: TypeAssigned}, false},
		{"no type", Request{RecipientID: "u2", Title: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.ShouldDeliver())
		})
	}
}
