package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"issueflow/internal/domain/notification"
	"issueflow/internal/domain/user"
	"issueflow/internal/shared/biztime"
	"issueflow/internal/shared/logger"
)

const (
	digestWindow   = 7 * 24 * time.Hour
	digestMaxItems = 20
)

// SendDigestUseCase emails each digest subscriber a summary of the unread
// notifications from the past week. Users with nothing unread get no mail.
type SendDigestUseCase struct {
	repo     notification.Repository
	userRepo user.Repository
	mailer   Mailer
	logger   logger.Interface
}

func NewSendDigestUseCase(
	repo notification.Repository,
	userRepo user.Repository,
	mailer Mailer,
	logger logger.Interface,
) *SendDigestUseCase {
	return &SendDigestUseCase{
		repo:     repo,
		userRepo: userRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// Execute returns the number of digests sent. A failure for one user is
// logged and does not stop the run.
func (uc *SendDigestUseCase) Execute(ctx context.Context) (int, error) {
	if uc.mailer == nil {
		return 0, nil
	}

	subscribers, err := uc.userRepo.ListDigestSubscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list digest subscribers: %w", err)
	}

	since := biztime.NowUTC().Add(-digestWindow)
	sent := 0
	for _, u := range subscribers {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		unread, err := uc.repo.ListUnreadSince(ctx, u.ID(), since, digestMaxItems)
		if err != nil {
			uc.logger.Warnw("failed to load digest notifications", "user_id", u.ID(), "error", err)
			continue
		}
		if len(unread) == 0 {
			continue
		}

		if err := uc.mailer.SendPlain(u.Email(), digestSubject(len(unread)), digestBody(unread)); err != nil {
			uc.logger.Warnw("failed to send digest email", "user_id", u.ID(), "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

func digestSubject(n int) string {
	if n == 1 {
		return "Your IssueFlow weekly digest: 1 unread notification"
	}
	if n >= digestMaxItems {
		return fmt.Sprintf("Your IssueFlow weekly digest: %d+ unread notifications", digestMaxItems)
	}
	return fmt.Sprintf("Your IssueFlow weekly digest: %d unread notifications", n)
}

func digestBody(items []*notification.Notification) string {
	var b strings.Builder
	b.WriteString("Here is what happened while you were away:\n\n")
	for _, n := range items {
		fmt.Fprintf(&b, "- %s (%s)\n", n.Title(), n.CreatedAt().UTC().Format("Jan 2"))
	}
	b.WriteString("\nOpen IssueFlow to catch up. You can turn off the weekly digest in Settings.\n")
	return b.String()
}
