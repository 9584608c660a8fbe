package pipeline

import (
	"time"

	"golang-stock-advisor/internal/dto"
)

const (
	// RollingWindow is the trailing window of the high-price moving average.
	RollingWindow = 5
	// ForwardHorizon is how many trading days ahead the target high sits.
	ForwardHorizon = 5
)

// FeatureRow is one model-ready observation: the trailing moving average of
// the high price and the high price ForwardHorizon trading days later.
type FeatureRow struct {
	Date       time.Time
	HighMA     float64
	FutureHigh float64
}

// BuildFeatures turns a raw daily series into the feature table.
//
// The first RollingWindow-1 rows lack a full trailing window and the last
// ForwardHorizon rows lack a forward observation; both are dropped, so a
// series shorter than RollingWindow+ForwardHorizon rows produces an empty
// table and the symbol is skipped. Gaps inside the series are tolerated by
// carrying the previous moving average forward, matching sparse trading days
// without discarding unrelated rows.
func BuildFeatures(bars []dto.StockOHLCV) []FeatureRow {
	n := len(bars)
	if n < RollingWindow+ForwardHorizon {
		return nil
	}

	rows := make([]FeatureRow, 0, n-RollingWindow-ForwardHorizon+1)
	lastMA := 0.0
	haveMA := false

	for i := RollingWindow - 1; i+ForwardHorizon < n; i++ {
		ma, ok := trailingHighAvg(bars, i)
		if !ok {
			if !haveMA {
				continue
			}
			ma = lastMA
		}
		lastMA = ma
		haveMA = true

		rows = append(rows, FeatureRow{
			Date:       time.Unix(bars[i].Timestamp, 0).UTC(),
			HighMA:     ma,
			FutureHigh: bars[i+ForwardHorizon].High,
		})
	}

	return rows
}

func trailingHighAvg(bars []dto.StockOHLCV, end int) (float64, bool) {
	sum := 0.0
	for i := end - RollingWindow + 1; i <= end; i++ {
		if bars[i].High <= 0 {
			return 0, false
		}
		sum += bars[i].High
	}
	return sum / RollingWindow, true
}
