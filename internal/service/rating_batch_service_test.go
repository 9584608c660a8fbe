package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang-stock-advisor/config"
	"golang-stock-advisor/internal/dto"
	"golang-stock-advisor/internal/model"
	"golang-stock-advisor/pkg/cache"
	"golang-stock-advisor/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{
			JWTSecret:   "test-secret",
			TokenExpiry: 30 * time.Minute,
		},
		Pipeline: config.Pipeline{
			MaxConcurrency: 2,
			SymbolTimeout:  time.Minute,
			LookbackDays:   365,
		},
		Cache: config.Cache{
			RatingPoolTTL: time.Minute,
		},
	}
}

func testLogger(t *testing.T) *logger.Logger {
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

type fakeStockRepo struct {
	stocks []model.Stock
	err    error
}

func (f *fakeStockRepo) GetAll(ctx context.Context) ([]model.Stock, error) {
	return f.stocks, f.err
}

func (f *fakeStockRepo) GetByTicker(ctx context.Context, ticker string) (*model.Stock, error) {
	for _, s := range f.stocks {
		if s.Ticker == ticker {
			return &s, nil
		}
	}
	return nil, nil
}

type fakeSeriesRepo struct {
	series map[string][]dto.StockOHLCV
	errs   map[string]error
}

func (f *fakeSeriesRepo) Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	if err, ok := f.errs[param.Ticker]; ok {
		return nil, err
	}
	bars := f.series[param.Ticker]
	if len(bars) == 0 {
		return nil, errors.New("no data returned for symbol: " + param.Ticker)
	}
	return &dto.StockData{OHLCV: bars}, nil
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	stored  map[uint]model.Rating
	pool    []model.RatedStock
	failAll bool
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{stored: make(map[uint]model.Rating)}
}

func (f *fakeRatingRepo) Upsert(ctx context.Context, rating *model.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("connection refused")
	}
	f.stored[rating.StockID] = *rating
	return nil
}

func (f *fakeRatingRepo) GetPool(ctx context.Context) ([]model.RatedStock, error) {
	return f.pool, nil
}

func (f *fakeRatingRepo) GetByStockID(ctx context.Context, stockID uint) (*model.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.stored[stockID]; ok {
		return &r, nil
	}
	return nil, nil
}

type fakeBatchRunRepo struct {
	mu   sync.Mutex
	runs []model.BatchRun
}

func (f *fakeBatchRunRepo) Create(ctx context.Context, run *model.BatchRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, *run)
	return nil
}

func (f *fakeBatchRunRepo) GetLatest(ctx context.Context, limit int) ([]model.BatchRun, error) {
	return f.runs, nil
}

func flatSeries(n int, high float64) []dto.StockOHLCV {
	bars := make([]dto.StockOHLCV, n)
	for i := 0; i < n; i++ {
		bars[i] = dto.StockOHLCV{
			Timestamp: int64(i) * 86400,
			Open:      high - 2,
			High:      high,
			Low:       high - 3,
			Close:     high - 1,
			Volume:    1000,
		}
	}
	return bars
}

func risingSeries(n int) []dto.StockOHLCV {
	bars := make([]dto.StockOHLCV, n)
	for i := 0; i < n; i++ {
		high := 100 + float64(i)
		bars[i] = dto.StockOHLCV{
			Timestamp: int64(i) * 86400,
			Open:      high - 2,
			High:      high,
			Low:       high - 3,
			Close:     high - 1,
			Volume:    1000,
		}
	}
	return bars
}

func newBatchService(t *testing.T, stocks *fakeStockRepo, series *fakeSeriesRepo, ratings *fakeRatingRepo, runs *fakeBatchRunRepo) RatingBatchService {
	cfg := testConfig()
	inmemoryCache := cache.NewCache(time.Minute, time.Minute)
	return NewRatingBatchService(cfg, testLogger(t), stocks, series, ratings, runs, inmemoryCache)
}

func TestRatingBatchStoresBoundedScores(t *testing.T) {
	stocks := &fakeStockRepo{stocks: []model.Stock{
		{ID: 1, Ticker: "AAA", IndustryID: 1},
		{ID: 2, Ticker: "BBB", IndustryID: 2},
		{ID: 3, Ticker: "CCC", IndustryID: 3},
	}}
	series := &fakeSeriesRepo{
		series: map[string][]dto.StockOHLCV{
			"AAA": flatSeries(40, 100),
			"BBB": risingSeries(40),
		},
		errs: map[string]error{"CCC": errors.New("provider timeout")},
	}
	ratings := newFakeRatingRepo()
	runs := &fakeBatchRunRepo{}

	run, err := newBatchService(t, stocks, series, ratings, runs).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, run.SymbolsTotal)
	assert.Equal(t, 2, run.SymbolsRated)
	assert.Equal(t, model.BatchStatusPartial, run.Status)

	// Skipped symbol never reaches the store.
	assert.Len(t, ratings.stored, 2)
	_, storedFailed := ratings.stored[3]
	assert.False(t, storedFailed)

	for _, r := range ratings.stored {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 5.0)
	}

	// Two distinct gains span the whole scale under min-max normalization.
	scores := []float64{ratings.stored[1].Score, ratings.stored[2].Score}
	assert.Contains(t, scores, 0.0)
	assert.Contains(t, scores, 5.0)

	require.Len(t, runs.runs, 1)
	assert.NotEmpty(t, runs.runs[0].Report)
}

func TestRatingBatchSkipsShortSeries(t *testing.T) {
	stocks := &fakeStockRepo{stocks: []model.Stock{
		{ID: 1, Ticker: "AAA", IndustryID: 1},
		{ID: 2, Ticker: "TINY", IndustryID: 2},
	}}
	series := &fakeSeriesRepo{
		series: map[string][]dto.StockOHLCV{
			"AAA":  risingSeries(40),
			"TINY": flatSeries(9, 50), // below rolling window + forward shift
		},
	}
	ratings := newFakeRatingRepo()
	runs := &fakeBatchRunRepo{}

	run, err := newBatchService(t, stocks, series, ratings, runs).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, run.SymbolsRated)
	_, stored := ratings.stored[2]
	assert.False(t, stored)
}

func TestRatingBatchSingleSymbolGetsMidpoint(t *testing.T) {
	stocks := &fakeStockRepo{stocks: []model.Stock{
		{ID: 7, Ticker: "ONLY", IndustryID: 1},
	}}
	series := &fakeSeriesRepo{
		series: map[string][]dto.StockOHLCV{"ONLY": risingSeries(40)},
	}
	ratings := newFakeRatingRepo()
	runs := &fakeBatchRunRepo{}

	_, err := newBatchService(t, stocks, series, ratings, runs).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, ratings.stored, 1)
	assert.InDelta(t, 2.5, ratings.stored[7].Score, 1e-9)
}

func TestRatingBatchIsIdempotent(t *testing.T) {
	stocks := &fakeStockRepo{stocks: []model.Stock{
		{ID: 1, Ticker: "AAA", IndustryID: 1},
		{ID: 2, Ticker: "BBB", IndustryID: 2},
	}}
	series := &fakeSeriesRepo{
		series: map[string][]dto.StockOHLCV{
			"AAA": flatSeries(40, 100),
			"BBB": risingSeries(40),
		},
	}
	ratings := newFakeRatingRepo()
	runs := &fakeBatchRunRepo{}

	svc := newBatchService(t, stocks, series, ratings, runs)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	first := map[uint]float64{}
	for id, r := range ratings.stored {
		first[id] = r.Score
	}

	_, err = svc.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, ratings.stored, len(first))
	for id, r := range ratings.stored {
		assert.Equal(t, first[id], r.Score)
	}
}

func TestRatingBatchAbortsWhenStoreIsDown(t *testing.T) {
	stocks := &fakeStockRepo{stocks: []model.Stock{
		{ID: 1, Ticker: "AAA", IndustryID: 1},
	}}
	series := &fakeSeriesRepo{
		series: map[string][]dto.StockOHLCV{"AAA": risingSeries(40)},
	}
	ratings := newFakeRatingRepo()
	ratings.failAll = true
	runs := &fakeBatchRunRepo{}

	_, err := newBatchService(t, stocks, series, ratings, runs).Run(context.Background())
	assert.ErrorIs(t, err, ErrRatingStoreUnavailable)
}

func TestRatingBatchEmptyPool(t *testing.T) {
	stocks := &fakeStockRepo{}
	ratings := newFakeRatingRepo()
	runs := &fakeBatchRunRepo{}

	run, err := newBatchService(t, stocks, &fakeSeriesRepo{}, ratings, runs).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, run.SymbolsTotal)
	assert.Equal(t, model.BatchStatusCompleted, run.Status)
	assert.Empty(t, ratings.stored)
}
