package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"golang-stock-advisor/config"
	"golang-stock-advisor/internal/dto"
	"golang-stock-advisor/internal/model"
	"golang-stock-advisor/internal/pipeline"
	"golang-stock-advisor/internal/repository"
	"golang-stock-advisor/pkg/cache"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/utils"

	"gorm.io/datatypes"
)

// ErrRatingStoreUnavailable aborts a batch whose computed ratings could not be
// persisted at all. Per-row failures only degrade the run to PARTIAL.
var ErrRatingStoreUnavailable = errors.New("rating store unavailable, batch aborted")

// RatingBatchService runs one full pass of the predictive-scoring pipeline:
// ingest each pool symbol, build features, train and score, normalize the
// batch of gains onto the rating scale, and upsert the results.
type RatingBatchService interface {
	Run(ctx context.Context) (*model.BatchRun, error)
}

type ratingBatchService struct {
	cfg         *config.Config
	log         *logger.Logger
	stockRepo   repository.StockRepository
	seriesRepo  repository.YahooFinanceRepository
	ratingRepo  repository.RatingRepository
	batchRepo   repository.BatchRunRepository
	poolCache   cache.Cache
}

func NewRatingBatchService(
	cfg *config.Config,
	log *logger.Logger,
	stockRepo repository.StockRepository,
	seriesRepo repository.YahooFinanceRepository,
	ratingRepo repository.RatingRepository,
	batchRepo repository.BatchRunRepository,
	poolCache cache.Cache,
) RatingBatchService {
	return &ratingBatchService{
		cfg:        cfg,
		log:        log,
		stockRepo:  stockRepo,
		seriesRepo: seriesRepo,
		ratingRepo: ratingRepo,
		batchRepo:  batchRepo,
		poolCache:  poolCache,
	}
}

func (s *ratingBatchService) Run(ctx context.Context) (*model.BatchRun, error) {
	startedAt := utils.TimeNowUTC()

	stocks, err := s.stockRepo.GetAll(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load stock pool", logger.ErrorField(err))
		return nil, err
	}

	if len(stocks) == 0 {
		s.log.InfoContext(ctx, "Stock pool is empty, nothing to rate")
		return s.finishRun(ctx, startedAt, nil, 0)
	}

	s.log.InfoContext(ctx, "Starting rating batch",
		logger.IntField("symbols", len(stocks)),
		logger.IntField("max_concurrency", s.cfg.Pipeline.MaxConcurrency),
	)

	// Fan out per symbol. Workers share nothing; each returns its outcome to
	// the collector, which hands the complete batch to the normalizer.
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		outcomes  []pipeline.SymbolOutcome
		semaphore = make(chan struct{}, s.cfg.Pipeline.MaxConcurrency)
	)

	for _, stock := range stocks {
		if !utils.ShouldContinue(ctx, s.log) {
			s.log.Info("Received stop signal, rating batch interrupted")
			break
		}

		stock := stock
		wg.Add(1)
		semaphore <- struct{}{}

		utils.GoSafe(func() {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			outcome := s.processSymbol(ctx, stock)

			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
		})
	}

	// Barrier: the normalizer needs every symbol's gain before it can compute
	// the batch min/max.
	wg.Wait()

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Ticker < outcomes[j].Ticker })

	rated := pipeline.Rated(outcomes)
	gains := make([]float64, len(rated))
	for i, o := range rated {
		gains[i] = o.Gain
	}
	scores := pipeline.NormalizeScores(gains)

	storeFailures := 0
	for i := range rated {
		rated[i].Score = scores[i]

		rating := &model.Rating{
			StockID:    rated[i].StockID,
			IndustryID: rated[i].IndustryID,
			Score:      scores[i],
		}
		if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
			s.log.ErrorContext(ctx, "Failed to persist rating",
				logger.ErrorField(err),
				logger.StringField("ticker", rated[i].Ticker),
			)
			rated[i].Skipped = true
			rated[i].SkipReason = pipeline.SkipReasonStoreFailed
			rated[i].Detail = err.Error()
			storeFailures++
			continue
		}

		s.log.DebugContext(ctx, "Rating stored",
			logger.StringField("ticker", rated[i].Ticker),
			logger.Float64Field("gain", rated[i].Gain),
			logger.Float64Field("score", scores[i]),
		)
	}

	// Copy scored/store-failure state back into the full outcome list.
	merged := mergeOutcomes(outcomes, rated)

	if len(rated) > 0 && storeFailures == len(rated) {
		s.log.ErrorContext(ctx, "Every rating write failed, aborting batch",
			logger.IntField("failures", storeFailures))
		return nil, ErrRatingStoreUnavailable
	}

	return s.finishRun(ctx, startedAt, merged, storeFailures)
}

// processSymbol runs ingest -> features -> train/score for one symbol under
// its own deadline. Every failure is a skip for that symbol only.
func (s *ratingBatchService) processSymbol(ctx context.Context, stock model.Stock) pipeline.SymbolOutcome {
	outcome := pipeline.SymbolOutcome{
		StockID:    stock.ID,
		Ticker:     stock.Ticker,
		IndustryID: stock.IndustryID,
	}

	symbolCtx, cancel := context.WithTimeout(ctx, s.cfg.Pipeline.SymbolTimeout)
	defer cancel()

	end := utils.TimeNowUTC()
	start := end.AddDate(0, 0, -s.cfg.Pipeline.LookbackDays)

	data, err := s.seriesRepo.Get(symbolCtx, dto.GetStockDataParam{
		Ticker:    stock.Ticker,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		s.log.WarnContext(ctx, "Series unavailable, skipping symbol",
			logger.ErrorField(err), logger.StringField("ticker", stock.Ticker))
		outcome.Skipped = true
		outcome.SkipReason = pipeline.SkipReasonIngestFailed
		outcome.Detail = err.Error()
		return outcome
	}

	rows := pipeline.BuildFeatures(data.OHLCV)
	if len(rows) == 0 {
		s.log.WarnContext(ctx, "Feature table empty after drop, skipping symbol",
			logger.StringField("ticker", stock.Ticker),
			logger.IntField("bars", len(data.OHLCV)))
		outcome.Skipped = true
		outcome.SkipReason = pipeline.SkipReasonEmptyFeatures
		return outcome
	}

	gain, eval, err := pipeline.TrainAndScore(rows, data.LatestClose())
	if err != nil {
		s.log.WarnContext(ctx, "Training failed, skipping symbol",
			logger.ErrorField(err), logger.StringField("ticker", stock.Ticker))
		outcome.Skipped = true
		outcome.SkipReason = pipeline.SkipReasonTrainFailed
		outcome.Detail = err.Error()
		return outcome
	}

	s.log.InfoContext(ctx, "Symbol scored",
		logger.StringField("ticker", stock.Ticker),
		logger.Float64Field("predicted_gain_pct", gain),
		logger.Float64Field("mae", eval.MAE),
		logger.Float64Field("mse", eval.MSE),
		logger.Float64Field("tolerance_accuracy", eval.ToleranceAccuracy),
	)

	outcome.Gain = gain
	outcome.Evaluation = &eval
	return outcome
}

func (s *ratingBatchService) finishRun(ctx context.Context, startedAt time.Time, outcomes []pipeline.SymbolOutcome, storeFailures int) (*model.BatchRun, error) {
	ratedCount := len(pipeline.Rated(outcomes))

	status := model.BatchStatusCompleted
	if ratedCount < len(outcomes) || storeFailures > 0 {
		status = model.BatchStatusPartial
	}
	if len(outcomes) > 0 && ratedCount == 0 {
		status = model.BatchStatusFailed
	}

	report, err := json.Marshal(outcomes)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal batch report", logger.ErrorField(err))
		report = []byte("[]")
	}

	run := &model.BatchRun{
		Status:       status,
		SymbolsTotal: len(outcomes),
		SymbolsRated: ratedCount,
		Report:       datatypes.JSON(report),
		StartedAt:    startedAt,
		CompletedAt:  utils.TimeNowUTC(),
	}

	// The run record is observability, not pipeline state; losing it does not
	// invalidate the ratings already stored.
	if err := s.batchRepo.Create(ctx, run); err != nil {
		s.log.ErrorContext(ctx, "Failed to record batch run", logger.ErrorField(err))
	}

	// New ratings are live, drop any cached selector pool.
	s.poolCache.Flush()

	s.log.InfoContext(ctx, "Rating batch finished",
		logger.StringField("status", status),
		logger.IntField("symbols_total", len(outcomes)),
		logger.IntField("symbols_rated", ratedCount),
		logger.IntField("store_failures", storeFailures),
	)

	return run, nil
}

func mergeOutcomes(all, rated []pipeline.SymbolOutcome) []pipeline.SymbolOutcome {
	byID := make(map[uint]pipeline.SymbolOutcome, len(rated))
	for _, o := range rated {
		byID[o.StockID] = o
	}
	merged := make([]pipeline.SymbolOutcome, len(all))
	for i, o := range all {
		if updated, ok := byID[o.StockID]; ok {
			merged[i] = updated
		} else {
			merged[i] = o
		}
	}
	return merged
}
