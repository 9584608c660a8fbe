package service

import (
	"golang-stock-advisor/config"
	"golang-stock-advisor/internal/repository"
	"golang-stock-advisor/pkg/cache"
	"golang-stock-advisor/pkg/logger"
)

type Service struct {
	RatingBatchService    RatingBatchService
	SchedulerService      SchedulerService
	RecommendationService RecommendationService
	AuthService           AuthService
	PortfolioService      PortfolioService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	ratingBatch := NewRatingBatchService(cfg, log, repo.StockRepo, repo.YahooFinanceRepo, repo.RatingRepo, repo.BatchRunRepo, inmemoryCache)

	return &Service{
		RatingBatchService:    ratingBatch,
		SchedulerService:      NewSchedulerService(cfg, log, ratingBatch),
		RecommendationService: NewRecommendationService(cfg, log, repo.UserRepo, repo.HoldingRepo, repo.RatingRepo, inmemoryCache),
		AuthService:           NewAuthService(cfg, log, repo.UserRepo),
		PortfolioService:      NewPortfolioService(log, repo.UserRepo, repo.HoldingRepo),
	}
}
