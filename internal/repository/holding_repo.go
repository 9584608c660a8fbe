package repository

import (
	"context"

	"golang-stock-advisor/internal/model"

	"gorm.io/gorm"
)

type HoldingRepository interface {
	GetByUserID(ctx context.Context, userID uint) ([]model.Holding, error)
}

type holdingRepository struct {
	db *gorm.DB
}

func NewHoldingRepository(db *gorm.DB) HoldingRepository {
	return &holdingRepository{db: db}
}

func (h *holdingRepository) GetByUserID(ctx context.Context, userID uint) ([]model.Holding, error) {
	var holdings []model.Holding
	err := h.db.WithContext(ctx).
		Preload("Industry").
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, err
	}
	return holdings, nil
}
