package model

import "time"

// Holding is one portfolio entry of a user. Read-only input to the selector.
type Holding struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null" json:"user_id"`
	IndustryID    uint      `gorm:"not null" json:"industry_id"`
	Ticker        string    `gorm:"column:stock;not null" json:"ticker"`
	Quantity      int       `gorm:"column:number;not null" json:"quantity"`
	PricePerShare float64   `gorm:"not null" json:"price_per_share"`
	Date          time.Time `gorm:"not null" json:"date"`

	Industry *Industry `gorm:"foreignKey:IndustryID" json:"industry,omitempty"`
}

func (Holding) TableName() string {
	return "stock_entries"
}
