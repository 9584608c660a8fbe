package model

import "time"

// Rating is the persisted suitability score of one stock, unique per stock.
// Score is always within [0,5]; the batch overwrites it in place, no history is kept.
type Rating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StockID    uint      `gorm:"uniqueIndex;not null" json:"stock_id"`
	IndustryID uint      `gorm:"not null" json:"industry_id"`
	Score      float64   `gorm:"not null" json:"score"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Stock *Stock `gorm:"foreignKey:StockID" json:"stock,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}

// RatedStock is a rating joined with its stock and industry metadata,
// the shape the recommendation selector works with.
type RatedStock struct {
	StockID      uint    `json:"stock_id"`
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name"`
	IndustryID   uint    `json:"industry_id"`
	IndustryName string  `json:"industry_name"`
	Score        float64 `json:"score"`
}
