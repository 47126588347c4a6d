package calculator

import "math"

// Bollinger returns SMA(period) of closes plus and minus k population standard
// deviations over the same window. The deviation is summed around the window
// mean, not from running sums of squares.
func Bollinger(closes []float64, period int, k float64) (upper, middle, lower []float64) {
	n := len(closes)
	upper, lower = nanSeries(n), nanSeries(n)
	middle = SMA(closes, period)
	if period <= 0 || n < period {
		return upper, middle, lower
	}
	for i := period - 1; i < n; i++ {
		sd := populationStd(closes[i-period+1:i+1], middle[i])
		upper[i] = middle[i] + k*sd
		lower[i] = middle[i] - k*sd
	}
	return upper, middle, lower
}

func populationStd(window []float64, mean float64) float64 {
	ss := 0.0
	for _, v := range window {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(window)))
}

// MACD returns the EMA(fast)-EMA(slow) line, its EMA(signal) and the histogram.
// The signal line is seeded from the first defined MACD values.
func MACD(closes []float64, fast, slow, signal int) (line, sig, hist []float64) {
	n := len(closes)
	line, sig, hist = nanSeries(n), nanSeries(n), nanSeries(n)

	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)
	start := -1
	for i := 0; i < n; i++ {
		if math.IsNaN(fastEMA[i]) || math.IsNaN(slowEMA[i]) {
			continue
		}
		line[i] = fastEMA[i] - slowEMA[i]
		if start < 0 {
			start = i
		}
	}
	if start < 0 {
		return line, sig, hist
	}

	for i, v := range EMA(line[start:], signal) {
		if math.IsNaN(v) {
			continue
		}
		sig[start+i] = v
		hist[start+i] = line[start+i] - v
	}
	return line, sig, hist
}
