package project

import (
	"fmt"
	"time"

	"issueflow/internal/shared/biztime"
)

// Member links a user to a project. It is the only access gate for the
// project and everything under it.
type Member struct {
	projectID string
	userID    string
	isStarred bool
	createdAt time.Time
}

func NewMember(projectID, userID string) (*Member, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project ID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	return &Member{
		projectID: projectID,
		userID:    userID,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructMember(projectID, userID string, isStarred bool, createdAt time.Time) *Member {
	return &Member{
		projectID: projectID,
		userID:    userID,
		isStarred: isStarred,
		createdAt: createdAt,
	}
}

func (m *Member) ProjectID() string {
	return m.projectID
}

func (m *Member) UserID() string {
	return m.userID
}

func (m *Member) IsStarred() bool {
	return m.isStarred
}

func (m *Member) CreatedAt() time.Time {
	return m.createdAt
}

// ToggleStar flips the favourite flag and returns the new value.
func (m *Member) ToggleStar() bool {
	m.isStarred = !m.isStarred
	return m.isStarred
}
