package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func featureRows(n int) []FeatureRow {
	rows := make([]FeatureRow, n)
	for i := 0; i < n; i++ {
		ma := 100 + float64(i)
		rows[i] = FeatureRow{
			HighMA:     ma,
			FutureHigh: ma + 5,
		}
	}
	return rows
}

func TestTrainAndScore(t *testing.T) {
	rows := featureRows(100)

	gain, eval, err := TrainAndScore(rows, 150)
	assert.NoError(t, err)

	assert.Equal(t, 80, eval.TrainRows)
	assert.Equal(t, 20, eval.EvalRows)
	assert.False(t, math.IsNaN(gain))
	assert.False(t, math.IsInf(gain, 0))
	assert.GreaterOrEqual(t, eval.MAE, 0.0)
	assert.GreaterOrEqual(t, eval.MSE, 0.0)
	assert.GreaterOrEqual(t, eval.ToleranceAccuracy, 0.0)
	assert.LessOrEqual(t, eval.ToleranceAccuracy, 1.0)
}

func TestTrainAndScoreDeterministic(t *testing.T) {
	rows := featureRows(60)

	gain1, _, err1 := TrainAndScore(rows, 120)
	gain2, _, err2 := TrainAndScore(rows, 120)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, gain1, gain2)
}

func TestTrainAndScoreErrors(t *testing.T) {
	tests := []struct {
		name        string
		rows        []FeatureRow
		latestClose float64
		wantErr     error
	}{
		{
			name:        "no rows",
			rows:        nil,
			latestClose: 100,
			wantErr:     ErrInsufficientRows,
		},
		{
			name:        "one row cannot be split",
			rows:        featureRows(1),
			latestClose: 100,
			wantErr:     ErrInsufficientRows,
		},
		{
			name:        "zero close",
			rows:        featureRows(50),
			latestClose: 0,
			wantErr:     ErrInvalidClose,
		},
		{
			name:        "negative close",
			rows:        featureRows(50),
			latestClose: -3,
			wantErr:     ErrInvalidClose,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := TrainAndScore(tt.rows, tt.latestClose)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTrainAndScoreRejectsNonFiniteFeatures(t *testing.T) {
	rows := featureRows(50)
	rows[10].FutureHigh = math.NaN()

	_, _, err := TrainAndScore(rows, 100)
	assert.Error(t, err)
}
