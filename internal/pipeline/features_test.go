package pipeline

import (
	"testing"

	"golang-stock-advisor/internal/dto"

	"github.com/stretchr/testify/assert"
)

func bar(day int, high float64) dto.StockOHLCV {
	return dto.StockOHLCV{
		Timestamp: int64(day) * 86400,
		Open:      high - 2,
		High:      high,
		Low:       high - 3,
		Close:     high - 1,
		Volume:    1000,
	}
}

func risingSeries(n int) []dto.StockOHLCV {
	bars := make([]dto.StockOHLCV, n)
	for i := 0; i < n; i++ {
		bars[i] = bar(i, 100+float64(i))
	}
	return bars
}

func TestBuildFeatures(t *testing.T) {
	tests := []struct {
		name     string
		bars     []dto.StockOHLCV
		wantRows int
	}{
		{
			name:     "empty series",
			bars:     nil,
			wantRows: 0,
		},
		{
			name:     "series shorter than window plus horizon",
			bars:     risingSeries(9),
			wantRows: 0,
		},
		{
			name:     "minimum viable series",
			bars:     risingSeries(10),
			wantRows: 1,
		},
		{
			name:     "longer series",
			bars:     risingSeries(30),
			wantRows: 21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildFeatures(tt.bars)
			assert.Len(t, rows, tt.wantRows)
		})
	}
}

func TestBuildFeaturesValues(t *testing.T) {
	bars := risingSeries(10)

	rows := BuildFeatures(bars)
	assert.Len(t, rows, 1)

	// Trailing 5-day average of highs 100..104 and the high 5 days ahead.
	assert.InDelta(t, 102.0, rows[0].HighMA, 1e-9)
	assert.InDelta(t, 109.0, rows[0].FutureHigh, 1e-9)
}

func TestBuildFeaturesCarriesForwardOverBadWindow(t *testing.T) {
	bars := risingSeries(20)
	// A non-positive high poisons every window containing it; the previous
	// moving average is carried forward instead of dropping those rows.
	bars[10].High = 0

	rows := BuildFeatures(bars)
	assert.Len(t, rows, 11)

	carried := rows[6].HighMA
	for i := 7; i <= 10; i++ {
		assert.Equal(t, carried, rows[i].HighMA)
	}
}
