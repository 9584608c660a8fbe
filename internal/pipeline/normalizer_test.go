package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScores(t *testing.T) {
	tests := []struct {
		name  string
		gains []float64
		want  []float64
	}{
		{
			name:  "empty batch",
			gains: nil,
			want:  nil,
		},
		{
			name:  "spread batch is min-max scaled",
			gains: []float64{2, 8, 5},
			want:  []float64{0, 5, 2.5},
		},
		{
			name:  "zero range falls back to midpoint",
			gains: []float64{3.3, 3.3, 3.3},
			want:  []float64{2.5, 2.5, 2.5},
		},
		{
			name:  "single symbol gets midpoint",
			gains: []float64{-42},
			want:  []float64{2.5},
		},
		{
			name:  "negative gains still span the scale",
			gains: []float64{-10, -5, 0},
			want:  []float64{0, 2.5, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeScores(tt.gains)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestNormalizeScoresBounds(t *testing.T) {
	// Extreme gain values must never push a score outside [0,5].
	gains := []float64{-1e9, -123.45, 0, 0.0001, 99999, 1e12}

	for _, score := range NormalizeScores(gains) {
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, RatingScale)
	}
}
