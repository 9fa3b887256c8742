package project

import (
	"context"
)

// Repository persists projects. Getters return (nil, nil) when the row is absent.
type Repository interface {
	Create(ctx context.Context, project *Project) error
	Update(ctx context.Context, project *Project) error
	// Delete removes the project row only; dependents are purged by the caller.
	Delete(ctx context.Context, projectID string) error
	GetByID(ctx context.Context, projectID string) (*Project, error)
	// ListActiveByIDs returns non-trashed projects among ids, newest first.
	ListActiveByIDs(ctx context.Context, projectIDs []string) ([]*Project, error)
	// ListTrashedByCreator returns the creator's trashed projects, most recently trashed first.
	ListTrashedByCreator(ctx context.Context, userID string) ([]*Project, error)
}

// MemberRepository persists memberships.
type MemberRepository interface {
	// Create fails with a duplicate error when the pair already exists.
	Create(ctx context.Context, member *Member) error
	Get(ctx context.Context, projectID, userID string) (*Member, error)
	UpdateStar(ctx context.Context, member *Member) error
	ListByUser(ctx context.Context, userID string) ([]*Member, error)
	ListByProject(ctx context.Context, projectID string) ([]*Member, error)
	CountByProject(ctx context.Context, projectID string) (int64, error)
	DeleteByProject(ctx context.Context, projectID string) error
}
