package service

import (
	"context"
	"errors"
	"math"

	"golang-stock-advisor/config"
	"golang-stock-advisor/internal/dto"
	"golang-stock-advisor/internal/model"
	"golang-stock-advisor/internal/pipeline"
	"golang-stock-advisor/internal/repository"
	"golang-stock-advisor/pkg/cache"
	"golang-stock-advisor/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// ErrUserNotFound distinguishes an unknown user from a known user with an
// empty portfolio; the latter still gets recommendations.
var ErrUserNotFound = errors.New("user not found")

const maxRecommendations = 3

const cacheKeyRatingPool = "rating_pool"

// RecommendationService turns stored ratings into a small personalized list:
// prefer the industries the user is least invested in, backfill pool-wide,
// never recommend a symbol the user already holds.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID uint) ([]dto.Recommendation, error)
}

type recommendationService struct {
	cfg         *config.Config
	log         *logger.Logger
	userRepo    repository.UserRepository
	holdingRepo repository.HoldingRepository
	ratingRepo  repository.RatingRepository
	poolCache   cache.Cache
}

func NewRecommendationService(
	cfg *config.Config,
	log *logger.Logger,
	userRepo repository.UserRepository,
	holdingRepo repository.HoldingRepository,
	ratingRepo repository.RatingRepository,
	poolCache cache.Cache,
) RecommendationService {
	return &recommendationService{
		cfg:         cfg,
		log:         log,
		userRepo:    userRepo,
		holdingRepo: holdingRepo,
		ratingRepo:  ratingRepo,
		poolCache:   poolCache,
	}
}

func (s *recommendationService) GetRecommendations(ctx context.Context, userID uint) ([]dto.Recommendation, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var (
		holdings []model.Holding
		pool     []model.RatedStock
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		holdings, err = s.holdingRepo.GetByUserID(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		pool, err = s.ratingPool(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	selected := Select(holdings, pool)

	recommendations := make([]dto.Recommendation, 0, len(selected))
	for _, r := range selected {
		recommendations = append(recommendations, dto.Recommendation{
			Ticker:     r.Ticker,
			Name:       r.Name,
			Industry:   r.IndustryName,
			Label:      dto.RatingLabel(r.Score),
			Confidence: int(math.Round(r.Score / pipeline.RatingScale * 100)),
		})
	}

	return recommendations, nil
}

// ratingPool reads the scored pool, cached briefly since it only changes when
// a batch completes (which flushes this cache).
func (s *recommendationService) ratingPool(ctx context.Context) ([]model.RatedStock, error) {
	if cached, found := s.poolCache.Get(cacheKeyRatingPool); found {
		if pool, ok := cached.([]model.RatedStock); ok {
			return pool, nil
		}
	}

	pool, err := s.ratingRepo.GetPool(ctx)
	if err != nil {
		return nil, err
	}

	s.poolCache.Set(cacheKeyRatingPool, pool, s.cfg.Cache.RatingPoolTTL)
	return pool, nil
}

// Select applies the diversification pass then the backfill over a rating
// pool already ordered by descending score.
//
// Diversification: among the industries the user holds in, find the minimum
// holding count and draw candidates only from industries at that minimum.
// A user with no holdings has no represented industries, so selection
// degrades directly to the pool-wide ranking.
func Select(holdings []model.Holding, pool []model.RatedStock) []model.RatedStock {
	held := make(map[string]bool, len(holdings))
	industryCounts := make(map[uint]int)
	for _, h := range holdings {
		held[h.Ticker] = true
		industryCounts[h.IndustryID]++
	}

	var selected []model.RatedStock
	picked := make(map[string]bool)

	if len(industryCounts) > 0 {
		minCount := math.MaxInt
		for _, c := range industryCounts {
			if c < minCount {
				minCount = c
			}
		}

		underinvested := make(map[uint]bool)
		for id, c := range industryCounts {
			if c == minCount {
				underinvested[id] = true
			}
		}

		for _, r := range pool {
			if len(selected) == maxRecommendations {
				break
			}
			if !underinvested[r.IndustryID] || held[r.Ticker] || picked[r.Ticker] {
				continue
			}
			selected = append(selected, r)
			picked[r.Ticker] = true
		}
	}

	// Backfill from the whole pool so even concentrated or empty portfolios
	// get a usable response.
	for _, r := range pool {
		if len(selected) == maxRecommendations {
			break
		}
		if held[r.Ticker] || picked[r.Ticker] {
			continue
		}
		selected = append(selected, r)
		picked[r.Ticker] = true
	}

	return selected
}
