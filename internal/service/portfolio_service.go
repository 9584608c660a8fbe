package service

import (
	"context"

	"golang-stock-advisor/internal/dto"
	"golang-stock-advisor/internal/repository"
	"golang-stock-advisor/pkg/logger"
)

type PortfolioService interface {
	GetPortfolio(ctx context.Context, userID uint) ([]dto.PortfolioEntry, error)
}

type portfolioService struct {
	log         *logger.Logger
	userRepo    repository.UserRepository
	holdingRepo repository.HoldingRepository
}

func NewPortfolioService(log *logger.Logger, userRepo repository.UserRepository, holdingRepo repository.HoldingRepository) PortfolioService {
	return &portfolioService{
		log:         log,
		userRepo:    userRepo,
		holdingRepo: holdingRepo,
	}
}

func (s *portfolioService) GetPortfolio(ctx context.Context, userID uint) ([]dto.PortfolioEntry, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	holdings, err := s.holdingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.PortfolioEntry, 0, len(holdings))
	for _, h := range holdings {
		industry := ""
		if h.Industry != nil {
			industry = h.Industry.Name
		}
		entries = append(entries, dto.PortfolioEntry{
			Ticker:        h.Ticker,
			Industry:      industry,
			Quantity:      h.Quantity,
			PricePerShare: h.PricePerShare,
			Date:          h.Date.Format("2006-01-02"),
		})
	}

	return entries, nil
}
