package model

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw_score"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// SignalTier maps a total score range to a label.
type SignalTier struct {
	Label string `json:"label"`
	Bias  string `json:"bias"` // "bullish", "neutral", "bearish"
}

// SignalSummary is the technical read-out of the latest candle.
type SignalSummary struct {
	Factors    []FactorScore `json:"factors"`
	TotalScore float64       `json:"total_score"`
	Tier       SignalTier    `json:"tier"`
	WarningMsg string        `json:"warning,omitempty"`
}
