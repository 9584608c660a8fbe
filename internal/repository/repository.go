package repository

import (
	"golang-stock-advisor/config"
	"golang-stock-advisor/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	StockRepo        StockRepository
	RatingRepo       RatingRepository
	HoldingRepo      HoldingRepository
	UserRepo         UserRepository
	BatchRunRepo     BatchRunRepository
	YahooFinanceRepo YahooFinanceRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) *Repository {
	return &Repository{
		StockRepo:        NewStockRepository(db),
		RatingRepo:       NewRatingRepository(db),
		HoldingRepo:      NewHoldingRepository(db),
		UserRepo:         NewUserRepository(db),
		BatchRunRepo:     NewBatchRunRepository(db),
		YahooFinanceRepo: NewYahooFinanceRepository(cfg, log),
	}
}
