package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	BatchStatusCompleted = "COMPLETED"
	BatchStatusPartial   = "PARTIAL"
	BatchStatusFailed    = "FAILED"
)

// BatchRun records the outcome of one rating pipeline run, with the
// per-symbol report kept as JSONB for later inspection.
type BatchRun struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Status       string         `gorm:"not null" json:"status"`
	SymbolsTotal int            `gorm:"not null" json:"symbols_total"`
	SymbolsRated int            `gorm:"not null" json:"symbols_rated"`
	Report       datatypes.JSON `gorm:"type:jsonb" json:"report"`
	StartedAt    time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt  time.Time      `gorm:"not null" json:"completed_at"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (BatchRun) TableName() string {
	return "batch_runs"
}
