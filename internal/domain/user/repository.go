package user

import "context"

// Repository defines the interface for user data operations.
// Getters return (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByIDs returns the users that exist; unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ListDigestSubscribers returns users whose preferences enable the weekly digest.
	ListDigestSubscribers(ctx context.Context) ([]*User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	// DeleteByUserExcept revokes every session of userID other than keepID.
	DeleteByUserExcept(ctx context.Context, userID, keepID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
