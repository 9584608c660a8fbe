package pipeline

const (
	// RatingScale is the upper bound of the stored rating.
	RatingScale = 5.0
	// midpointScore is assigned to every symbol when the batch has zero gain
	// spread, where min-max scaling would divide by zero.
	midpointScore = RatingScale / 2
)

// NormalizeScores maps a batch of predicted gains onto [0,RatingScale] via
// linear min-max scaling over that batch. Values are clamped so a stored
// rating can never leave the scale even under floating-point drift.
func NormalizeScores(gains []float64) []float64 {
	if len(gains) == 0 {
		return nil
	}

	minGain, maxGain := gains[0], gains[0]
	for _, g := range gains[1:] {
		if g < minGain {
			minGain = g
		}
		if g > maxGain {
			maxGain = g
		}
	}

	scores := make([]float64, len(gains))
	if maxGain == minGain {
		for i := range scores {
			scores[i] = midpointScore
		}
		return scores
	}

	spread := maxGain - minGain
	for i, g := range gains {
		scores[i] = clamp(RatingScale*(g-minGain)/spread, 0, RatingScale)
	}
	return scores
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
