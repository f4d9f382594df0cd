package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/domain"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSyncRunner struct {
	summary  *domain.SyncSummary
	err      error
	calls    int
	deadline bool
}

func (f *fakeSyncRunner) Run(ctx context.Context) (*domain.SyncSummary, error) {
	f.calls++
	_, f.deadline = ctx.Deadline()
	return f.summary, f.err
}

func TestBitrixSyncJob_RunInvokesServiceWithTimeout(t *testing.T) {
	runner := &fakeSyncRunner{summary: &domain.SyncSummary{Success: true, Total: 3}}
	job := jobs.NewBitrixSyncJob(runner, zap.NewNop(), time.Minute)

	job.Run()

	assert.Equal(t, 1, runner.calls)
	assert.True(t, runner.deadline, "sync context should carry the job timeout")
}

func TestBitrixSyncJob_RunSwallowsErrors(t *testing.T) {
	runner := &fakeSyncRunner{err: errors.New("bitrix unreachable")}
	job := jobs.NewBitrixSyncJob(runner, zap.NewNop(), time.Minute)

	// A failed cycle must not panic; the next tick retries
	job.Run()
	job.Run()

	assert.Equal(t, 2, runner.calls)
}

func TestScheduler_RejectsDuplicateJobNames(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("sync", "@hourly", func() {}))
	err := s.AddJob("sync", "@hourly", func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	assert.Equal(t, []string{"sync"}, s.GetJobNames())
}

func TestScheduler_RejectsInvalidCronExpression(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("bad", "not a cron expr", func() {})
	require.Error(t, err)
	assert.Empty(t, s.GetJobNames())
}
