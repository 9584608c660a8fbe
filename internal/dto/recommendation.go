package dto

const (
	LabelStrongBuy = "Strong Buy"
	LabelBuy       = "Buy"
	LabelHold      = "Hold"
)

// Recommendation is one entry of the selector output. Never persisted.
type Recommendation struct {
	Ticker     string `json:"ticker"`
	Name       string `json:"name"`
	Industry   string `json:"industry"`
	Label      string `json:"label"`
	Confidence int    `json:"confidence"`
}

// RatingLabel buckets a [0,5] score into a user-facing label.
func RatingLabel(score float64) string {
	switch {
	case score >= 4.5:
		return LabelStrongBuy
	case score >= 4.0:
		return LabelBuy
	default:
		return LabelHold
	}
}
