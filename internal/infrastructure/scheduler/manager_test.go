package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issueflow/internal/shared/logger"
)

type countingJob struct {
	calls atomic.Int32
	err   error
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.calls.Add(1)
	return 3, j.err
}

func TestSchedulerManager_SessionCleanup(t *testing.T) {
	m, err := NewSchedulerManager(logger.Discard())
	require.NoError(t, err)

	job := &countingJob{}
	require.NoError(t, m.RegisterSessionCleanupJob(job))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "session-cleanup", m.Jobs()[0].Name())

	m.Start()
	m.Start()
	assert.True(t, m.IsStarted())

	assert.Eventually(t, func() bool { return job.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	require.NoError(t, m.Stop())
}

func TestSchedulerManager_RunBatchSwallowsErrors(t *testing.T) {
	m, err := NewSchedulerManager(logger.Discard())
	require.NoError(t, err)

	job := &countingJob{err: errors.New("db down")}
	assert.NotPanics(t, func() { m.runBatch(context.Background(), "x", job) })
	assert.Equal(t, int32(1), job.calls.Load())
}

func TestSchedulerManager_DigestJobIsWeekly(t *testing.T) {
	m, err := NewSchedulerManager(logger.Discard())
	require.NoError(t, err)

	require.NoError(t, m.RegisterDigestJob(&countingJob{}))
	require.Len(t, m.Jobs(), 1)

	job := m.Jobs()[0]
	assert.Equal(t, "weekly-digest", job.Name())
	assert.ElementsMatch(t, []string{"notification", "digest"}, job.Tags())

	m.Start()
	defer func() { _ = m.Stop() }()

	var next time.Time
	require.Eventually(t, func() bool {
		next, err = job.NextRun()
		return err == nil && !next.IsZero()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, time.Monday, next.UTC().Weekday())
	assert.Equal(t, 8, next.UTC().Hour())
}
