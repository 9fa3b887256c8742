package notification

import "context"

// Request is one notification to deliver.
type Request struct {
	RecipientID string
	Type        Type
	Title       string
	Metadata    Metadata
}

// Notifier delivers notifications best effort. Notify returns immediately;
// failures are logged by the implementation and never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, req Request)
}

// ShouldDeliver reports whether req names a recipient other than its actor
// and carries a type and title.
func (r Request) ShouldDeliver() bool {
	if r.RecipientID == "" || r.Type == "" || r.Title == "" {
		return false
	}
	if r.Metadata.ActorID != nil && *r.Metadata.ActorID == r.RecipientID {
		return false
	}
	return true
}
