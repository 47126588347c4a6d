package calculator

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"CoinScope/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func flatSeries(n int, price float64) model.Series {
	s := make(model.Series, n)
	for i := range s {
		s[i] = model.Candle{Time: day0.AddDate(0, 0, i), Open: price, High: price, Low: price, Close: price, Volume: 1}
	}
	return s
}

// wave oscillates around 100 with a slow drift so every indicator has movement.
func wave(n int) model.Series {
	s := make(model.Series, n)
	for i := range s {
		c := 100 + 10*math.Sin(float64(i)/3) + float64(i)*0.2
		s[i] = model.Candle{
			Time:   day0.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1.5 + math.Abs(math.Cos(float64(i))),
			Low:    c - 1.5,
			Close:  c,
			Volume: 1000 + float64(i),
		}
	}
	return s
}

func assertNaNPrefix(t *testing.T, col []float64, warmup int) {
	t.Helper()
	for i, v := range col {
		if i < warmup {
			assert.True(t, math.IsNaN(v), "index %d should be NaN, got %v", i, v)
		} else {
			assert.False(t, math.IsNaN(v), "index %d should be defined", i)
		}
	}
}

func sameColumn(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) && math.IsNaN(b[i]) {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSMA(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4, 5}, 2)
	assertNaNPrefix(t, got, 1)
	assert.InDeltaSlice(t, []float64{1.5, 2.5, 3.5, 4.5}, got[1:], 1e-12)
}

func TestEMA_SeededWithSMA(t *testing.T) {
	got := EMA([]float64{1, 2, 3, 4, 5}, 3)
	assertNaNPrefix(t, got, 2)
	assert.InDeltaSlice(t, []float64{2, 3, 4}, got[2:], 1e-12)
}

func TestMovingAverages_ShortOrInvalid(t *testing.T) {
	for _, col := range [][]float64{
		EMA([]float64{1, 2}, 3),
		SMA([]float64{1, 2}, 3),
		EMA([]float64{1, 2}, 0),
		EMA(nil, 3),
	} {
		for _, v := range col {
			assert.True(t, math.IsNaN(v))
		}
	}
}

func TestEMA_ConstantConverges(t *testing.T) {
	closes := flatSeries(30, 42).Closes()
	got := EMA(closes, 9)
	for _, v := range got[8:] {
		assert.Equal(t, 42.0, v)
	}
}

func TestRSI(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		period int
		want   []float64
	}{
		{"alternating", []float64{1, 2, 1, 2}, 2, []float64{50, 75}},
		{"only gains", []float64{1, 2, 3, 4}, 2, []float64{100, 100}},
		{"only losses", []float64{4, 3, 2, 1}, 2, []float64{0, 0}},
		{"flat", []float64{5, 5, 5, 5}, 2, []float64{50, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RSI(tt.closes, tt.period)
			assertNaNPrefix(t, got, tt.period)
			assert.InDeltaSlice(t, tt.want, got[tt.period:], 1e-9)
		})
	}
}

func TestRSI_Bounds(t *testing.T) {
	for _, v := range RSI(wave(300).Closes(), 14) {
		if math.IsNaN(v) {
			continue
		}
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestBollinger(t *testing.T) {
	upper, middle, lower := Bollinger([]float64{1, 2, 3, 4, 5}, 3, 2)
	assertNaNPrefix(t, middle, 2)
	assertNaNPrefix(t, upper, 2)
	assertNaNPrefix(t, lower, 2)

	sd := math.Sqrt(2.0 / 3.0) // population std of any three consecutive integers
	assert.InDeltaSlice(t, []float64{2, 3, 4}, middle[2:], 1e-9)
	assert.InDeltaSlice(t, []float64{2 + 2*sd, 3 + 2*sd, 4 + 2*sd}, upper[2:], 1e-9)
	assert.InDeltaSlice(t, []float64{2 - 2*sd, 3 - 2*sd, 4 - 2*sd}, lower[2:], 1e-9)
}

func TestBollinger_Ordering(t *testing.T) {
	upper, middle, lower := Bollinger(wave(200).Closes(), 20, 2)
	for i := range middle {
		if math.IsNaN(upper[i]) || math.IsNaN(middle[i]) || math.IsNaN(lower[i]) {
			continue
		}
		assert.LessOrEqual(t, lower[i], middle[i], "index %d", i)
		assert.LessOrEqual(t, middle[i], upper[i], "index %d", i)
	}
}

func TestBollinger_HighPriceLowSpread(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	closes := make([]float64, 1000)
	for i := range closes {
		closes[i] = 65000 + rng.Float64()*0.05
	}
	const period = 20
	upper, middle, lower := Bollinger(closes, period, 2)

	for i := period - 1; i < len(closes); i++ {
		// reference works on offsets from the price level, where nothing cancels
		var sum float64
		for _, v := range closes[i-period+1 : i+1] {
			sum += v - 65000
		}
		mean := sum / period
		var ss float64
		for _, v := range closes[i-period+1 : i+1] {
			d := v - 65000 - mean
			ss += d * d
		}
		sd := math.Sqrt(ss / period)

		assert.InDelta(t, 65000+mean, middle[i], 1e-6, "index %d", i)
		half := (upper[i] - lower[i]) / 2
		assert.InEpsilon(t, 2*sd, half, 1e-6, "index %d", i)
	}
}

func TestMACD_WarmupAndHistogram(t *testing.T) {
	line, sig, hist := MACD(wave(60).Closes(), 12, 26, 9)
	assertNaNPrefix(t, line, 25)
	assertNaNPrefix(t, sig, 33)
	assertNaNPrefix(t, hist, 33)
	for i := 33; i < 60; i++ {
		assert.InDelta(t, line[i]-sig[i], hist[i], 1e-12)
	}

	// signal seed is the mean of the first nine MACD values
	seed := 0.0
	for i := 25; i < 34; i++ {
		seed += line[i]
	}
	assert.InDelta(t, seed/9, sig[33], 1e-9)
}

func TestMACD_ShortSeries(t *testing.T) {
	line, sig, _ := MACD(wave(20).Closes(), 12, 26, 9)
	assertNaNPrefix(t, line, 20)
	assertNaNPrefix(t, sig, 20)
}

func TestStochastic(t *testing.T) {
	highs := []float64{2, 3, 4}
	lows := []float64{1, 1, 2}
	closes := []float64{1.5, 3, 3}

	k, d := Stochastic(highs, lows, closes, 2, 2)
	assertNaNPrefix(t, k, 1)
	assertNaNPrefix(t, d, 2)
	assert.InDelta(t, 100.0, k[1], 1e-9)
	assert.InDelta(t, 200.0/3, k[2], 1e-9)
	assert.InDelta(t, (100+200.0/3)/2, d[2], 1e-9)
}

func TestStochastic_FlatWindowUndefined(t *testing.T) {
	s := flatSeries(20, 10)
	k, d := Stochastic(s.Highs(), s.Lows(), s.Closes(), 14, 3)
	for i := range k {
		assert.True(t, math.IsNaN(k[i]))
		assert.True(t, math.IsNaN(d[i]))
	}
}

func TestATR(t *testing.T) {
	highs := []float64{10, 11, 12}
	lows := []float64{9, 9, 10}
	closes := []float64{9.5, 10, 11}

	assert.Equal(t, []float64{1, 2, 2}, TrueRange(highs, lows, closes))

	atr := ATR(highs, lows, closes, 2)
	assertNaNPrefix(t, atr, 1)
	assert.InDelta(t, 1.5, atr[1], 1e-12)
	assert.InDelta(t, 1.75, atr[2], 1e-12)
}

func TestComputeIndicators_FlatSeries(t *testing.T) {
	p, err := ResolveParams("1d", model.TierShort)
	require.NoError(t, err)

	a, got := ComputeIndicators(flatSeries(120, 100), p)
	assert.True(t, got.Sufficient)
	assert.Equal(t, 120, got.Candles)

	for _, col := range []string{model.ColEMAFast, model.ColEMASlow, model.ColBBUpper, model.ColBBMiddle, model.ColBBLower} {
		v, ok := a.Indicators.Latest(col)
		require.True(t, ok, col)
		assert.InDelta(t, 100.0, v, 1e-9, col)
	}
	rsi, _ := a.Indicators.Latest(model.ColRSI)
	assert.Equal(t, 50.0, rsi)
	atr, _ := a.Indicators.Latest(model.ColATR)
	assert.Equal(t, 0.0, atr)
	macd, _ := a.Indicators.Latest(model.ColMACD)
	assert.InDelta(t, 0.0, macd, 1e-9)
	_, ok := a.Indicators.Latest(model.ColStochK)
	assert.False(t, ok, "stochastic is undefined on a flat range")
}

func TestComputeIndicators_TenFlatCandles(t *testing.T) {
	p, err := ResolveParams("1d", "")
	require.NoError(t, err)

	a, got := ComputeIndicators(flatSeries(10, 100), p)
	assert.False(t, got.Sufficient)

	var ide *InsufficientDataError
	require.ErrorAs(t, CheckSufficient(got), &ide)
	assert.Equal(t, 200, ide.Required)
	assert.Equal(t, 10, ide.Got)

	for _, name := range model.IndicatorColumns {
		col := a.Indicators[name]
		require.Len(t, col, 10, name)
		for _, v := range col {
			assert.True(t, math.IsNaN(v), "%s should still be warming up", name)
		}
	}
}

func TestComputeIndicators_WarmupLengths(t *testing.T) {
	p, err := ResolveParams("1h", model.TierShort)
	require.NoError(t, err)
	a, _ := ComputeIndicators(wave(80), p)

	warmups := map[string]int{
		model.ColEMAFast:       11,
		model.ColEMASlow:       25,
		model.ColBBMiddle:      19,
		model.ColRSI:           14,
		model.ColMACD:          25,
		model.ColMACDSignal:    33,
		model.ColMACDHistogram: 33,
		model.ColStochK:        13,
		model.ColStochD:        15,
		model.ColATR:           13,
	}
	for name, w := range warmups {
		t.Run(name, func(t *testing.T) {
			assertNaNPrefix(t, a.Indicators[name], w)
		})
	}
}

func TestComputeIndicators_PureAndIdempotent(t *testing.T) {
	s := wave(150)
	before := append(model.Series(nil), s...)
	p, err := ResolveParams("4h", "")
	require.NoError(t, err)

	a1, _ := ComputeIndicators(s, p)
	a2, _ := ComputeIndicators(s, p)

	assert.Equal(t, before, s)
	for _, name := range model.IndicatorColumns {
		assert.True(t, sameColumn(a1.Indicators[name], a2.Indicators[name]), name)
	}

	a1.Series[0].Close = -1
	assert.NotEqual(t, -1.0, s[0].Close, "annotated series must not alias the input")
}

func TestCompute_UnknownTimeframe(t *testing.T) {
	_, err := Compute(wave(10), "7m", "")
	assert.Error(t, err)
}
