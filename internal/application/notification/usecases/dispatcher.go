package usecases

import (
	"context"
	"fmt"
	"time"

	"issueflow/internal/domain/notification"
	"issueflow/internal/domain/user"
	"issueflow/internal/shared/goroutine"
	"issueflow/internal/shared/logger"
)

const deliveryTimeout = 10 * time.Second

// Dispatcher is the production notification.Notifier. Each request is stored
// on its own goroutine with a detached context; failures are only logged.
type Dispatcher struct {
	repo     notification.Repository
	userRepo user.Repository
	cache    UnreadCountCache
	mailer   Mailer
	logger   logger.Interface

	spawn func(name string, fn func(ctx context.Context))
}

func NewDispatcher(
	repo notification.Repository,
	userRepo user.Repository,
	cache UnreadCountCache,
	mailer Mailer,
	log logger.Interface,
) *Dispatcher {
	d := &Dispatcher{
		repo:     repo,
		userRepo: userRepo,
		cache:    cache,
		mailer:   mailer,
		logger:   log,
	}
	d.spawn = func(name string, fn func(ctx context.Context)) {
		goroutine.SafeGoWithTimeout(log, name, deliveryTimeout, fn)
	}
	return d
}

func (d *Dispatcher) Notify(_ context.Context, req notification.Request) {
	if !req.ShouldDeliver() {
		return
	}
	d.spawn("notification-delivery", func(ctx context.Context) {
		d.deliver(ctx, req)
	})
}

func (d *Dispatcher) deliver(ctx context.Context, req notification.Request) {
	n, err := notification.NewNotification(req.RecipientID, req.Type, req.Title, req.Metadata)
	if err != nil {
		d.logger.Warnw("dropping invalid notification", "user_id", req.RecipientID, "type", req.Type, "error", err)
		return
	}

	if err := d.repo.Create(ctx, n); err != nil {
		d.logger.Errorw("failed to create notification", "user_id", req.RecipientID, "type", req.Type, "error", err)
		return
	}

	if d.cache != nil {
		if err := d.cache.Invalidate(ctx, req.RecipientID); err != nil {
			d.logger.Warnw("failed to invalidate unread count", "user_id", req.RecipientID, "error", err)
		}
	}

	d.sendEmail(ctx, req)
}

func (d *Dispatcher) sendEmail(ctx context.Context, req notification.Request) {
	if d.mailer == nil {
		return
	}

	recipient, err := d.userRepo.GetByID(ctx, req.RecipientID)
	if err != nil {
		d.logger.Warnw("failed to load notification recipient", "user_id", req.RecipientID, "error", err)
		return
	}
	if recipient == nil || !recipient.Preferences().AllowsEmailFor(req.Type.String()) {
		return
	}

	body := fmt.Sprintf("%s\n\nOpen IssueFlow to view the ticket.\n", req.Title)
	if err := d.mailer.SendPlain(recipient.Email(), req.Title, body); err != nil {
		d.logger.Warnw("failed to send notification email", "user_id", req.RecipientID, "error", err)
		return
	}
	d.logger.Debugw("notification email sent", "user_id", req.RecipientID, "type", req.Type)
}
