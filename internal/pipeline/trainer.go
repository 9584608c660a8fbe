package pipeline

import (
	"errors"
	"fmt"
	"math"

	"golang-stock-advisor/internal/mlearn"
)

var (
	ErrInsufficientRows = errors.New("pipeline: not enough feature rows for a train/eval split")
	ErrInvalidClose     = errors.New("pipeline: latest close must be positive")
)

// Evaluation reports how the per-symbol model performed on the held-out tail
// of the series. Reported only; it never gates whether a rating is produced.
type Evaluation struct {
	TrainRows         int     `json:"train_rows"`
	EvalRows          int     `json:"eval_rows"`
	MAE               float64 `json:"mae"`
	MSE               float64 `json:"mse"`
	ToleranceAccuracy float64 `json:"tolerance_accuracy"`
}

// toleranceRelError is the relative error within which a prediction counts as
// accurate for the tolerance metric.
const toleranceRelError = 0.05

// TrainAndScore fits a boosted tree regressor on the chronological first 80%
// of rows, evaluates on the remaining 20%, and derives the predicted
// percentage gain of the forecast high over the latest known close.
//
// The split never shuffles: the model is never evaluated on rows earlier than
// its training data.
func TrainAndScore(rows []FeatureRow, latestClose float64) (float64, Evaluation, error) {
	var eval Evaluation

	if latestClose <= 0 {
		return 0, eval, ErrInvalidClose
	}

	n := len(rows)
	trainN := int(float64(n) * 0.8)
	if trainN < 1 || trainN >= n {
		return 0, eval, ErrInsufficientRows
	}

	x := make([][]float64, n)
	y := make([]float64, n)
	for i, row := range rows {
		x[i] = []float64{row.HighMA}
		y[i] = row.FutureHigh
	}

	model, err := mlearn.DefaultParams().Fit(x[:trainN], y[:trainN])
	if err != nil {
		return 0, eval, fmt.Errorf("model fit failed: %w", err)
	}

	eval.TrainRows = trainN
	eval.EvalRows = n - trainN

	var sumAbs, sumSq float64
	withinTolerance := 0
	lastPrediction := 0.0
	for i := trainN; i < n; i++ {
		pred := model.Predict(x[i])
		if math.IsNaN(pred) || math.IsInf(pred, 0) {
			return 0, eval, fmt.Errorf("model produced non-finite prediction at row %d", i)
		}
		diff := pred - y[i]
		sumAbs += math.Abs(diff)
		sumSq += diff * diff
		if y[i] != 0 && math.Abs(diff/y[i]) <= toleranceRelError {
			withinTolerance++
		}
		lastPrediction = pred
	}

	evalN := float64(n - trainN)
	eval.MAE = sumAbs / evalN
	eval.MSE = sumSq / evalN
	eval.ToleranceAccuracy = float64(withinTolerance) / evalN

	// Gain uses the forecast of the most recent evaluation instance against
	// the true latest close of the ingested series, not the close of the last
	// evaluation row.
	gain := (lastPrediction - latestClose) / latestClose * 100
	if math.IsNaN(gain) || math.IsInf(gain, 0) {
		return 0, eval, errors.New("pipeline: non-finite predicted gain")
	}

	return gain, eval, nil
}
