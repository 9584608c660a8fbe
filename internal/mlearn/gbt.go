// Package mlearn implements the gradient-boosted regression trees used by the
// rating pipeline. Hyperparameters are fixed and defensive: shallow trees, a
// small learning rate, row subsampling and L1+L2 leaf regularization, chosen
// to resist overfitting on short per-symbol daily series.
package mlearn

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

var ErrNoData = errors.New("mlearn: no training data")

// Params are the boosting hyperparameters. They are not tuned per symbol.
type Params struct {
	Rounds         int
	LearningRate   float64
	MaxDepth       int
	Subsample      float64
	Lambda         float64 // L2 leaf regularization
	Alpha          float64 // L1 leaf regularization
	MinSamplesLeaf int
	Seed           int64
}

// DefaultParams mirrors the fixed configuration of the production pipeline.
func DefaultParams() Params {
	return Params{
		Rounds:         100,
		LearningRate:   0.05,
		MaxDepth:       3,
		Subsample:      0.7,
		Lambda:         2,
		Alpha:          1,
		MinSamplesLeaf: 2,
		Seed:           1,
	}
}

// Regressor is a fitted boosted ensemble. It is ephemeral: fitted, used to
// score once, then discarded.
type Regressor struct {
	base  float64
	lr    float64
	trees []*node
}

type node struct {
	feature int
	thresh  float64
	left    *node
	right   *node
	leaf    bool
	value   float64
}

// Fit trains the ensemble on a feature matrix X (rows x features) against y.
// It returns an error on empty or non-finite inputs instead of producing a
// model that would score garbage.
func (p Params) Fit(x [][]float64, y []float64) (*Regressor, error) {
	n := len(x)
	if n == 0 || len(y) != n {
		return nil, ErrNoData
	}
	for i := 0; i < n; i++ {
		if !isFinite(y[i]) {
			return nil, fmt.Errorf("mlearn: non-finite target at row %d", i)
		}
		for j, v := range x[i] {
			if !isFinite(v) {
				return nil, fmt.Errorf("mlearn: non-finite feature %d at row %d", j, i)
			}
		}
	}

	base := 0.0
	for _, v := range y {
		base += v
	}
	base /= float64(n)

	m := &Regressor{base: base, lr: p.LearningRate}
	pred := make([]float64, n)
	for i := range pred {
		pred[i] = base
	}

	// Fixed seed keeps training deterministic so re-running a batch on
	// identical data yields identical ratings.
	rng := rand.New(rand.NewSource(p.Seed))

	sampleSize := int(math.Round(p.Subsample * float64(n)))
	if sampleSize < 1 {
		sampleSize = 1
	}

	for round := 0; round < p.Rounds; round++ {
		// Negative gradient of squared loss.
		grad := make([]float64, n)
		for i := range grad {
			grad[i] = pred[i] - y[i]
		}

		idx := subsampleIndices(rng, n, sampleSize)
		tree := p.buildNode(x, grad, idx, 0)
		if tree == nil {
			break
		}
		m.trees = append(m.trees, tree)

		for i := 0; i < n; i++ {
			pred[i] += p.LearningRate * evalNode(tree, x[i])
		}
	}

	return m, nil
}

// Predict scores a single feature vector.
func (m *Regressor) Predict(x []float64) float64 {
	out := m.base
	for _, t := range m.trees {
		out += m.lr * evalNode(t, x)
	}
	return out
}

func (p Params) buildNode(x [][]float64, grad []float64, idx []int, depth int) *node {
	if len(idx) == 0 {
		return nil
	}

	g := 0.0
	for _, i := range idx {
		g += grad[i]
	}
	h := float64(len(idx))

	if depth >= p.MaxDepth || len(idx) < 2*p.MinSamplesLeaf {
		return &node{leaf: true, value: p.leafWeight(g, h)}
	}

	feature, thresh, ok := p.bestSplit(x, grad, idx, g, h)
	if !ok {
		return &node{leaf: true, value: p.leafWeight(g, h)}
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if x[i][feature] <= thresh {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	left := p.buildNode(x, grad, leftIdx, depth+1)
	right := p.buildNode(x, grad, rightIdx, depth+1)
	if left == nil || right == nil {
		return &node{leaf: true, value: p.leafWeight(g, h)}
	}

	return &node{feature: feature, thresh: thresh, left: left, right: right}
}

func (p Params) bestSplit(x [][]float64, grad []float64, idx []int, gTotal, hTotal float64) (int, float64, bool) {
	bestGain := 0.0
	bestFeature := -1
	bestThresh := 0.0

	parentScore := p.splitScore(gTotal, hTotal)

	features := len(x[idx[0]])
	order := make([]int, len(idx))

	for f := 0; f < features; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return x[order[a]][f] < x[order[b]][f] })

		gLeft, hLeft := 0.0, 0.0
		for pos := 0; pos < len(order)-1; pos++ {
			i := order[pos]
			gLeft += grad[i]
			hLeft++

			// No split between equal feature values.
			if x[order[pos]][f] == x[order[pos+1]][f] {
				continue
			}
			if int(hLeft) < p.MinSamplesLeaf || len(order)-int(hLeft) < p.MinSamplesLeaf {
				continue
			}

			gain := p.splitScore(gLeft, hLeft) + p.splitScore(gTotal-gLeft, hTotal-hLeft) - parentScore
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThresh = (x[order[pos]][f] + x[order[pos+1]][f]) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThresh, true
}

// splitScore is the structure score of a node: T(G)^2 / (H + lambda) with the
// L1 soft threshold T applied to the gradient sum.
func (p Params) splitScore(g, h float64) float64 {
	t := softThreshold(g, p.Alpha)
	return t * t / (h + p.Lambda)
}

func (p Params) leafWeight(g, h float64) float64 {
	return -softThreshold(g, p.Alpha) / (h + p.Lambda)
}

func softThreshold(g, alpha float64) float64 {
	switch {
	case g > alpha:
		return g - alpha
	case g < -alpha:
		return g + alpha
	default:
		return 0
	}
}

func subsampleIndices(rng *rand.Rand, n, size int) []int {
	if size >= n {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	perm := rng.Perm(n)[:size]
	sort.Ints(perm)
	return perm
}

func evalNode(t *node, x []float64) float64 {
	for !t.leaf {
		if x[t.feature] <= t.thresh {
			t = t.left
		} else {
			t = t.right
		}
	}
	return t.value
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
