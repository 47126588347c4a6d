package calculator

import (
	"CoinScope/internal/model"
	"CoinScope/internal/series"
)

// ComputeIndicators attaches every indicator column to a copy of s using the
// windows in p. Short series are not an error: columns whose window never
// fills stay NaN and the returned params carry Sufficient=false.
func ComputeIndicators(s model.Series, p model.ResolvedParams) (model.AnnotatedSeries, model.ResolvedParams) {
	s = series.Clone(s)
	closes, highs, lows := s.Closes(), s.Highs(), s.Lows()

	p.MaxWindow = MaxWindow(p)
	p.Candles = len(s)
	p.Sufficient = len(s) >= p.MaxWindow

	ind := model.IndicatorSet{
		model.ColEMAFast: EMA(closes, p.FastWindow),
		model.ColEMASlow: EMA(closes, p.SlowWindow),
		model.ColRSI:     RSI(closes, p.RSIWindow),
		model.ColATR:     ATR(highs, lows, closes, p.ATRWindow),
	}
	ind[model.ColBBUpper], ind[model.ColBBMiddle], ind[model.ColBBLower] =
		Bollinger(closes, p.BollingerWindow, p.BollingerStdDev)
	ind[model.ColMACD], ind[model.ColMACDSignal], ind[model.ColMACDHistogram] =
		MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	ind[model.ColStochK], ind[model.ColStochD] =
		Stochastic(highs, lows, closes, p.StochWindow, p.StochSmooth)

	return model.AnnotatedSeries{Series: s, Indicators: ind, Params: p}, p
}

// Compute resolves the profile for interval and tier and runs ComputeIndicators.
func Compute(s model.Series, interval string, tier model.ProfileTier) (model.AnnotatedSeries, error) {
	p, err := ResolveParams(interval, tier)
	if err != nil {
		return model.AnnotatedSeries{}, err
	}
	a, _ := ComputeIndicators(s, p)
	return a, nil
}
