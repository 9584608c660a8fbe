package repository

import (
	"context"

	"golang-stock-advisor/internal/model"

	"gorm.io/gorm"
)

type BatchRunRepository interface {
	Create(ctx context.Context, run *model.BatchRun) error
	GetLatest(ctx context.Context, limit int) ([]model.BatchRun, error)
}

type batchRunRepository struct {
	db *gorm.DB
}

func NewBatchRunRepository(db *gorm.DB) BatchRunRepository {
	return &batchRunRepository{db: db}
}

func (b *batchRunRepository) Create(ctx context.Context, run *model.BatchRun) error {
	return b.db.WithContext(ctx).Create(run).Error
}

func (b *batchRunRepository) GetLatest(ctx context.Context, limit int) ([]model.BatchRun, error) {
	var runs []model.BatchRun
	err := b.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
