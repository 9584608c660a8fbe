package repository

import (
	"context"

	"golang-stock-advisor/internal/model"

	"gorm.io/gorm"
)

type StockRepository interface {
	GetAll(ctx context.Context) ([]model.Stock, error)
	GetByTicker(ctx context.Context, ticker string) (*model.Stock, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (s *stockRepository) GetAll(ctx context.Context) ([]model.Stock, error) {
	var stocks []model.Stock
	err := s.db.WithContext(ctx).Order("ticker ASC").Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

func (s *stockRepository) GetByTicker(ctx context.Context, ticker string) (*model.Stock, error) {
	var stock model.Stock
	err := s.db.WithContext(ctx).Where("ticker = ?", ticker).First(&stock).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}
