package usecases

import "context"

// UnreadCountCache is optional; a nil cache means every read hits the database.
type UnreadCountCache interface {
	Get(ctx context.Context, userID string) (int64, bool, error)
	Set(ctx context.Context, userID string, count int64) error
	Invalidate(ctx context.Context, userID string) error
}

// Mailer sends plain-text email. A nil Mailer disables email delivery.
type Mailer interface {
	SendPlain(to, subject, body string) error
}
