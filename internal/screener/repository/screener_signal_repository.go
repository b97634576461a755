package repository

import (
	"context"

	"golang-swing-screener/internal/entity"

	"gorm.io/gorm"
)

// ScreenerSignalRepository persists emitted Early Expansion signals.
type ScreenerSignalRepository interface {
	Create(ctx context.Context, signal *entity.ScreenerSignal) error
	GetLatest(ctx context.Context, limit int) ([]entity.ScreenerSignal, error)
}

type screenerSignalRepository struct {
	db *gorm.DB
}

// NewScreenerSignalRepository creates a new ScreenerSignalRepository.
func NewScreenerSignalRepository(db *gorm.DB) ScreenerSignalRepository {
	return &screenerSignalRepository{db: db}
}

func (r *screenerSignalRepository) Create(ctx context.Context, signal *entity.ScreenerSignal) error {
	return r.db.WithContext(ctx).Create(signal).Error
}

func (r *screenerSignalRepository) GetLatest(ctx context.Context, limit int) ([]entity.ScreenerSignal, error) {
	var signals []entity.ScreenerSignal
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&signals).Error
	return signals, err
}
