package strategy

import (
	"CoinScope/internal/model"
)

// Tiers defines the 5-level signal mapping.
var Tiers = []struct {
	MinScore float64
	Tier     model.SignalTier
}{
	{0.8, model.SignalTier{Label: "Strong Buy", Bias: "bullish"}},
	{0.3, model.SignalTier{Label: "Buy", Bias: "bullish"}},
	{-0.3, model.SignalTier{Label: "Neutral", Bias: "neutral"}},
	{-0.8, model.SignalTier{Label: "Sell", Bias: "bearish"}},
}

// DefaultTier is the lowest tier for scores < -0.8.
var DefaultTier = model.SignalTier{Label: "Strong Sell", Bias: "bearish"}

// mapTier maps a total score to a SignalTier.
func mapTier(totalScore float64) model.SignalTier {
	for _, t := range Tiers {
		if totalScore >= t.MinScore {
			return t.Tier
		}
	}
	return DefaultTier
}

// Summarize scores the latest defined indicator values of an annotated series.
// Factors whose columns are still warming up score zero.
func Summarize(a model.AnnotatedSeries) model.SignalSummary {
	last, ok := a.Series.Last()
	if !ok {
		return model.SignalSummary{Tier: mapTier(0)}
	}
	ind := a.Indicators

	factors := []model.FactorScore{
		scoreRSI(ind),
		scoreStochastic(ind),
		scoreMACD(ind),
		scoreTrend(ind, last.Close),
		scoreBollinger(ind, last.Close),
	}

	total := 0.0
	for _, f := range factors {
		total += f.Weighted
	}

	summary := model.SignalSummary{
		Factors:    factors,
		TotalScore: total,
		Tier:       mapTier(total),
	}
	if rsi, ok := ind.Latest(model.ColRSI); ok && rsi > 85 {
		summary.WarningMsg = "RSI > 85: overbought, consider taking partial profit"
	}
	return summary
}
