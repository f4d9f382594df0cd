package repository

import (
	"context"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultBatchSize is the upsert chunk size used when none is configured
const DefaultBatchSize = 50

type DealRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDealRepository(db *gorm.DB, logger *zap.Logger) *DealRepository {
	return &DealRepository{db: db, logger: logger}
}

// UpsertBatch persists rows in fixed-size chunks, keyed on bitrix_id: a row
// with a known key is fully overwritten, not merged. A failed chunk is logged
// and counted but does not stop the remaining chunks, and no chunk is retried;
// partial application is an accepted outcome.
func (r *DealRepository) UpsertBatch(ctx context.Context, deals []domain.Deal, batchSize int) (written int, errorBatches int) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	for start := 0; start < len(deals); start += batchSize {
		end := start + batchSize
		if end > len(deals) {
			end = len(deals)
		}
		chunk := deals[start:end]

		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "bitrix_id"}},
				UpdateAll: true,
			}).
			Create(&chunk).Error
		if err != nil {
			errorBatches++
			r.logger.Error("deal upsert batch failed",
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(chunk)),
				zap.Error(err),
			)
			continue
		}
		written += len(chunk)
	}

	return written, errorBatches
}

// ListAll returns every persisted deal, newest deal date first
func (r *DealRepository) ListAll(ctx context.Context) ([]domain.Deal, error) {
	var deals []domain.Deal
	err := r.db.WithContext(ctx).
		Order("deal_date DESC NULLS LAST").
		Find(&deals).Error
	return deals, err
}

// CountByStage returns the number of stored rows per stage. Used by the sync
// job for post-run reporting.
func (r *DealRepository) CountByStage(ctx context.Context, stage domain.DealStage) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Deal{}).
		Where("stage = ?", stage).
		Count(&count).Error
	return count, err
}
