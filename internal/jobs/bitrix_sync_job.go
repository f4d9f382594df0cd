package jobs

import (
	"context"
	"time"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/domain"
	"go.uber.org/zap"
)

// BitrixSyncJobName is the name of the periodic CRM sync job
const BitrixSyncJobName = "bitrix_sync"

// SyncRunner defines the interface for running a CRM sync.
// This interface allows the job to call the service without importing the service package directly.
type SyncRunner interface {
	Run(ctx context.Context) (*domain.SyncSummary, error)
}

// BitrixSyncJob periodically pulls deals from Bitrix24 so the dashboard stays
// current even when nobody triggers a manual sync.
type BitrixSyncJob struct {
	syncService SyncRunner
	logger      *zap.Logger
	timeout     time.Duration
}

// NewBitrixSyncJob creates a new CRM sync job.
// The timeout controls how long one sync run is allowed to take.
func NewBitrixSyncJob(syncService SyncRunner, logger *zap.Logger, timeout time.Duration) *BitrixSyncJob {
	return &BitrixSyncJob{
		syncService: syncService,
		logger:      logger,
		timeout:     timeout,
	}
}

// Run executes one CRM sync. This is called by the scheduler according to
// the configured cron expression.
func (j *BitrixSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting periodic CRM sync job")

	summary, err := j.syncService.Run(ctx)
	if err != nil {
		j.logger.Error("periodic CRM sync failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("periodic CRM sync job completed",
		zap.Int("total", summary.Total),
		zap.Int("ticketed", summary.Ticketed),
		zap.Int("flown", summary.Flown),
		zap.Int("error_batches", summary.Errors),
		zap.Duration("duration", time.Since(start)))
}

// RegisterBitrixSyncJob registers the periodic CRM sync job with the scheduler.
func RegisterBitrixSyncJob(scheduler *Scheduler, syncService SyncRunner, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewBitrixSyncJob(syncService, logger, timeout)
	return scheduler.AddJob(BitrixSyncJobName, cronExpr, job.Run)
}
