package model

import "time"

// Stock is one tracked symbol of the pool. Reference data, never written by the pipeline.
type Stock struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Ticker     string    `gorm:"uniqueIndex;not null" json:"ticker"`
	Name       string    `gorm:"not null" json:"name"`
	IndustryID uint      `gorm:"not null" json:"industry_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Industry *Industry `gorm:"foreignKey:IndustryID" json:"industry,omitempty"`
}

func (Stock) TableName() string {
	return "stock_pool"
}
