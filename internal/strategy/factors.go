package strategy

import (
	"fmt"
	"math"

	"CoinScope/internal/model"
)

func factor(name string, score, weight float64, commentary string) model.FactorScore {
	return model.FactorScore{
		Name:       name,
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: commentary,
	}
}

// scoreRSI reads RSI contrarian-style: oversold scores positive.
// Weight: 0.30
func scoreRSI(ind model.IndicatorSet) model.FactorScore {
	rsi, ok := ind.Latest(model.ColRSI)
	if !ok {
		return factor("RSI", 0, 0.30, "warming up")
	}
	var score float64
	switch {
	case rsi <= 20:
		score = 2.0
	case rsi <= 30:
		score = 1.5
	case rsi <= 40:
		score = 0.5
	case rsi <= 60:
		score = 0
	case rsi <= 70:
		score = -0.5
	case rsi <= 80:
		score = -1.5
	default:
		score = -2.0
	}
	return factor("RSI", score, 0.30, fmt.Sprintf("RSI=%.0f", rsi))
}

// scoreStochastic scores %K against the 20/80 guide lines.
// Weight: 0.15
func scoreStochastic(ind model.IndicatorSet) model.FactorScore {
	k, ok := ind.Latest(model.ColStochK)
	if !ok {
		return factor("Stochastic", 0, 0.15, "warming up")
	}
	var score float64
	switch {
	case k <= 20:
		score = 1.5
	case k <= 35:
		score = 0.5
	case k <= 65:
		score = 0
	case k <= 80:
		score = -0.5
	default:
		score = -1.5
	}
	return factor("Stochastic", score, 0.15, fmt.Sprintf("%%K=%.0f", k))
}

// scoreMACD scores the sign and slope of the histogram.
// Weight: 0.20
func scoreMACD(ind model.IndicatorSet) model.FactorScore {
	hist := ind[model.ColMACDHistogram]
	n := len(hist)
	if n < 2 || math.IsNaN(hist[n-1]) || math.IsNaN(hist[n-2]) {
		return factor("MACD", 0, 0.20, "warming up")
	}
	cur, prev := hist[n-1], hist[n-2]

	var score float64
	var commentary string
	switch {
	case cur > 0 && cur >= prev:
		score, commentary = 1.5, "histogram positive and rising"
	case cur > 0:
		score, commentary = 1.0, "histogram positive"
	case cur < 0 && cur <= prev:
		score, commentary = -1.5, "histogram negative and falling"
	case cur < 0:
		score, commentary = -1.0, "histogram negative"
	default:
		score, commentary = 0, "flat"
	}
	return factor("MACD", score, 0.20, commentary)
}

// scoreTrend scores EMA alignment.
// Weight: 0.20
// Bull alignment: price > EMA fast > EMA slow
// Bear alignment: price < EMA fast < EMA slow
func scoreTrend(ind model.IndicatorSet, price float64) model.FactorScore {
	fast, okFast := ind.Latest(model.ColEMAFast)
	slow, okSlow := ind.Latest(model.ColEMASlow)
	if !okFast || !okSlow {
		return factor("EMA trend", 0, 0.20, "warming up")
	}

	var score float64
	var commentary string
	switch {
	case price > fast && fast > slow:
		score, commentary = 1.5, "bullish alignment"
	case fast > slow:
		score, commentary = 0.5, "fast above slow"
	case price < fast && fast < slow:
		score, commentary = -1.5, "bearish alignment"
	case fast < slow:
		score, commentary = -0.5, "fast below slow"
	default:
		score, commentary = 0, "ranging"
	}
	return factor("EMA trend", score, 0.20, commentary)
}

// scoreBollinger scores where the price sits inside the bands.
// Weight: 0.15
func scoreBollinger(ind model.IndicatorSet, price float64) model.FactorScore {
	upper, okU := ind.Latest(model.ColBBUpper)
	lower, okL := ind.Latest(model.ColBBLower)
	if !okU || !okL {
		return factor("Bollinger", 0, 0.15, "warming up")
	}
	if upper == lower {
		return factor("Bollinger", 0, 0.15, "bands collapsed")
	}
	pos := (price - lower) / (upper - lower)

	var score float64
	switch {
	case pos <= 0:
		score = 1.5
	case pos <= 0.2:
		score = 1.0
	case pos <= 0.8:
		score = 0
	case pos < 1:
		score = -1.0
	default:
		score = -1.5
	}
	return factor("Bollinger", score, 0.15, fmt.Sprintf("position=%.0f%%", pos*100))
}
