package mlearn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stepData(n int) ([][]float64, []float64) {
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = []float64{float64(i)}
		if i < n/2 {
			y[i] = 10
		} else {
			y[i] = 20
		}
	}
	return x, y
}

func TestFitConstantTarget(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}, {5}}
	y := []float64{7, 7, 7, 7, 7}

	model, err := DefaultParams().Fit(x, y)
	assert.NoError(t, err)

	// Zero residual everywhere: the ensemble reduces to the base prediction.
	for _, xi := range x {
		assert.InDelta(t, 7.0, model.Predict(xi), 1e-9)
	}
}

func TestFitStepFunction(t *testing.T) {
	x, y := stepData(100)

	model, err := DefaultParams().Fit(x, y)
	assert.NoError(t, err)

	assert.InDelta(t, 10.0, model.Predict([]float64{10}), 1.5)
	assert.InDelta(t, 20.0, model.Predict([]float64{90}), 1.5)
}

func TestFitIsDeterministic(t *testing.T) {
	x, y := stepData(80)

	m1, err := DefaultParams().Fit(x, y)
	assert.NoError(t, err)
	m2, err := DefaultParams().Fit(x, y)
	assert.NoError(t, err)

	for i := 0; i < 80; i += 7 {
		assert.Equal(t, m1.Predict([]float64{float64(i)}), m2.Predict([]float64{float64(i)}))
	}
}

func TestFitErrors(t *testing.T) {
	tests := []struct {
		name string
		x    [][]float64
		y    []float64
	}{
		{
			name: "empty input",
			x:    nil,
			y:    nil,
		},
		{
			name: "length mismatch",
			x:    [][]float64{{1}, {2}},
			y:    []float64{1},
		},
		{
			name: "non-finite target",
			x:    [][]float64{{1}, {2}},
			y:    []float64{1, math.NaN()},
		},
		{
			name: "non-finite feature",
			x:    [][]float64{{1}, {math.Inf(1)}},
			y:    []float64{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultParams().Fit(tt.x, tt.y)
			assert.Error(t, err)
		})
	}
}

func TestPredictionsAreFinite(t *testing.T) {
	x, y := stepData(50)

	model, err := DefaultParams().Fit(x, y)
	assert.NoError(t, err)

	for i := -10; i < 60; i++ {
		pred := model.Predict([]float64{float64(i)})
		assert.False(t, math.IsNaN(pred))
		assert.False(t, math.IsInf(pred, 0))
	}
}
