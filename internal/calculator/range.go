package calculator

import (
	"math"
)

// rollingExtremes scans each trailing window and returns its highest high and
// lowest low. Entries before the first full window are NaN.
func rollingExtremes(highs, lows []float64, window int) (hh, ll []float64) {
	n := len(highs)
	hh, ll = nanSeries(n), nanSeries(n)
	if window <= 0 {
		return hh, ll
	}
	for i := window - 1; i < n; i++ {
		high := math.Inf(-1)
		low := math.Inf(1)
		for j := i - window + 1; j <= i; j++ {
			if highs[j] > high {
				high = highs[j]
			}
			if lows[j] < low {
				low = lows[j]
			}
		}
		hh[i], ll[i] = high, low
	}
	return hh, ll
}

// Stochastic returns the raw %K over period and %D, the smooth-period simple
// average of %K. A window whose high equals its low leaves %K undefined.
func Stochastic(highs, lows, closes []float64, period, smooth int) (k, d []float64) {
	n := len(closes)
	k = nanSeries(n)
	if period <= 0 || n < period {
		return k, nanSeries(n)
	}
	hh, ll := rollingExtremes(highs, lows, period)
	for i := period - 1; i < n; i++ {
		if hh[i] == ll[i] {
			continue
		}
		k[i] = 100 * (closes[i] - ll[i]) / (hh[i] - ll[i])
	}
	return k, rollingMean(k, smooth)
}

// TrueRange is max(high-low, |high-prevClose|, |low-prevClose|); the first
// candle has no previous close and uses high-low.
func TrueRange(highs, lows, closes []float64) []float64 {
	tr := make([]float64, len(closes))
	for i := range closes {
		hl := highs[i] - lows[i]
		if i == 0 {
			tr[i] = hl
			continue
		}
		prev := closes[i-1]
		tr[i] = math.Max(hl, math.Max(math.Abs(highs[i]-prev), math.Abs(lows[i]-prev)))
	}
	return tr
}

// ATR is Wilder's smoothed average of the true range, seeded with the mean of
// the first period values.
func ATR(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSeries(n)
	if period <= 0 || n < period {
		return out
	}
	tr := TrueRange(highs, lows, closes)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += tr[i]
	}
	out[period-1] = sum / float64(period)
	for i := period; i < n; i++ {
		out[i] = (out[i-1]*float64(period-1) + tr[i]) / float64(period)
	}
	return out
}

// rangePosition returns where price sits within [low, high] (0.0~1.0).
func rangePosition(price, high, low float64) float64 {
	if high <= low {
		return 0.5
	}
	pos := (price - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}
