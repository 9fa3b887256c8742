package usecases

import (
	"context"

	"issueflow/internal/domain/notification"
	"issueflow/internal/domain/ticket"
)

func notifyAssigned(ctx context.Context, notifier notification.Notifier, t *ticket.Ticket, projectTitle, actorID string) {
	assignee := t.Assignee()
	if assignee == nil {
		return
	}
	ticketID := t.ID()
	projectID := t.ProjectID()
	notifier.Notify(ctx, notification.Request{
		RecipientID: *assignee,
		Type:        notification.TypeAssigned,
		Title:       notification.AssignedTitle(t.Title(), projectTitle),
		Metadata: notification.Metadata{
			TicketID:  &ticketID,
			ProjectID: &projectID,
			ActorID:   &actorID,
		},
	})
}
