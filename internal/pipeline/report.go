package pipeline

// Skip reasons recorded in the batch report. Expected per-symbol conditions
// are values, not errors; only the report carries them.
const (
	SkipReasonIngestFailed  = "INGEST_FAILED"
	SkipReasonEmptyFeatures = "EMPTY_FEATURE_TABLE"
	SkipReasonTrainFailed   = "TRAIN_FAILED"
	SkipReasonStoreFailed   = "STORE_WRITE_FAILED"
)

// SymbolOutcome is the result of one symbol's pass through the pipeline,
// produced by its worker and assembled by the collector.
type SymbolOutcome struct {
	StockID    uint        `json:"stock_id"`
	Ticker     string      `json:"ticker"`
	IndustryID uint        `json:"industry_id"`
	Gain       float64     `json:"predicted_gain"`
	Score      float64     `json:"score"`
	Skipped    bool        `json:"skipped"`
	SkipReason string      `json:"skip_reason,omitempty"`
	Detail     string      `json:"detail,omitempty"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

// Rated returns the subset of outcomes that produced a predicted gain.
func Rated(outcomes []SymbolOutcome) []SymbolOutcome {
	var rated []SymbolOutcome
	for _, o := range outcomes {
		if !o.Skipped {
			rated = append(rated, o)
		}
	}
	return rated
}
