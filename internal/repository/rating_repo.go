package repository

import (
	"context"

	"golang-stock-advisor/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *model.Rating) error
	GetPool(ctx context.Context) ([]model.RatedStock, error)
	GetByStockID(ctx context.Context, stockID uint) (*model.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts the rating or overwrites the existing row of the same stock.
// Re-running a batch with identical inputs leaves the table unchanged.
func (r *ratingRepository) Upsert(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stock_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"industry_id", "score", "updated_at"}),
	}).Create(rating).Error
}

// GetPool returns every current rating joined with stock and industry
// metadata, highest score first.
func (r *ratingRepository) GetPool(ctx context.Context) ([]model.RatedStock, error) {
	var pool []model.RatedStock
	err := r.db.WithContext(ctx).
		Table("ratings").
		Select("ratings.stock_id, stock_pool.ticker, stock_pool.name, ratings.industry_id, industries.name AS industry_name, ratings.score").
		Joins("JOIN stock_pool ON stock_pool.id = ratings.stock_id").
		Joins("JOIN industries ON industries.id = ratings.industry_id").
		Order("ratings.score DESC").
		Scan(&pool).Error
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (r *ratingRepository) GetByStockID(ctx context.Context, stockID uint) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).Where("stock_id = ?", stockID).First(&rating).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}
