package service

import (
	"context"
	"fmt"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/bitrix"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/config"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DealLister is the slice of the Bitrix client the sync needs
type DealLister interface {
	ListDeals(ctx context.Context, stageID string) ([]bitrix.Deal, error)
}

// DealWriter is the slice of the deal repository the sync needs
type DealWriter interface {
	UpsertBatch(ctx context.Context, deals []domain.Deal, batchSize int) (written int, errorBatches int)
}

// SyncService pulls deal records for the two tracked pipeline stages from
// Bitrix, normalizes them, and bulk-upserts them into the store.
type SyncService struct {
	crm        DealLister
	repo       DealWriter
	normalizer *Normalizer
	stages     map[domain.DealStage]string
	batchSize  int
	logger     *zap.Logger
}

func NewSyncService(
	crm DealLister,
	repo DealWriter,
	normalizer *Normalizer,
	bitrixCfg *config.BitrixConfig,
	syncCfg *config.SyncConfig,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		crm:        crm,
		repo:       repo,
		normalizer: normalizer,
		stages: map[domain.DealStage]string{
			domain.DealStageTicketed: bitrixCfg.StageTicketed,
			domain.DealStageFlown:    bitrixCfg.StageFlown,
		},
		batchSize: syncCfg.BatchSize,
		logger:    logger,
	}
}

// Run executes one full sync cycle: fetch-all, normalize-all, upsert-all.
// The two stage fetches run concurrently; a transport failure on either stage
// aborts the whole cycle (no partial stage result). Failed upsert chunks are
// counted in the summary, never escalated.
func (s *SyncService) Run(ctx context.Context) (*domain.SyncSummary, error) {
	s.logger.Info("starting bitrix sync")

	var ticketedDeals, flownDeals []bitrix.Deal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deals, err := s.crm.ListDeals(gctx, s.stages[domain.DealStageTicketed])
		if err != nil {
			return fmt.Errorf("fetch ticketed deals: %w", err)
		}
		ticketedDeals = deals
		return nil
	})
	g.Go(func() error {
		deals, err := s.crm.ListDeals(gctx, s.stages[domain.DealStageFlown])
		if err != nil {
			return fmt.Errorf("fetch flown deals: %w", err)
		}
		flownDeals = deals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("fetched deals from bitrix",
		zap.Int("ticketed", len(ticketedDeals)),
		zap.Int("flown", len(flownDeals)),
	)

	rows := make([]domain.Deal, 0, len(ticketedDeals)+len(flownDeals))
	for _, raw := range ticketedDeals {
		rows = append(rows, s.normalizer.Normalize(raw, domain.DealStageTicketed))
	}
	for _, raw := range flownDeals {
		rows = append(rows, s.normalizer.Normalize(raw, domain.DealStageFlown))
	}

	written, errorBatches := s.repo.UpsertBatch(ctx, rows, s.batchSize)

	summary := &domain.SyncSummary{
		Success:  true,
		Total:    len(rows),
		Ticketed: len(ticketedDeals),
		Flown:    len(flownDeals),
		Errors:   errorBatches,
	}

	s.logger.Info("bitrix sync complete",
		zap.Int("total", summary.Total),
		zap.Int("ticketed", summary.Ticketed),
		zap.Int("flown", summary.Flown),
		zap.Int("written", written),
		zap.Int("error_batches", summary.Errors),
	)

	return summary, nil
}
