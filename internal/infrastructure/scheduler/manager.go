// Package scheduler runs periodic maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"issueflow/internal/shared/biztime"
	"issueflow/internal/shared/logger"
)

const (
	sessionCleanupInterval = time.Hour

	digestWeekday = time.Monday
	digestHour    = 8
)

// BatchJob processes one batch and returns the number of items handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterSessionCleanupJob removes expired sessions every hour, starting
// immediately.
func (m *SchedulerManager) RegisterSessionCleanupJob(job BatchJob) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(sessionCleanupInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.runBatch(ctx, "session-cleanup", job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("session", "cleanup"),
		gocron.WithName("session-cleanup"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered session cleanup job", "interval", sessionCleanupInterval)
	return nil
}

// RegisterDigestJob sends the weekly email digest every Monday at 08:00 UTC.
func (m *SchedulerManager) RegisterDigestJob(job BatchJob) error {
	_, err := m.scheduler.NewJob(
		gocron.WeeklyJob(1,
			gocron.NewWeekdays(digestWeekday),
			gocron.NewAtTimes(gocron.NewAtTime(digestHour, 0, 0)),
		),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()
			m.runBatch(ctx, "weekly-digest", job)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("notification", "digest"),
		gocron.WithName("weekly-digest"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered weekly digest job", "weekday", digestWeekday, "hour_utc", digestHour)
	return nil
}

func (m *SchedulerManager) runBatch(ctx context.Context, name string, job BatchJob) {
	startTime := biztime.NowUTC()

	count, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("scheduled job failed",
			"job", name,
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if count > 0 {
		m.logger.Infow("scheduled job processed items",
			"job", name,
			"count", count,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("scheduled job had nothing to do", "job", name)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
