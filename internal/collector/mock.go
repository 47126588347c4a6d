package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"CoinScope/internal/model"
	"CoinScope/internal/strategy"
)

var intervalSteps = map[string]time.Duration{
	"1m": time.Minute, "3m": 3 * time.Minute, "5m": 5 * time.Minute,
	"15m": 15 * time.Minute, "30m": 30 * time.Minute,
	"1h": time.Hour, "2h": 2 * time.Hour, "4h": 4 * time.Hour,
	"6h": 6 * time.Hour, "8h": 8 * time.Hour, "12h": 12 * time.Hour,
	"1d": 24 * time.Hour, "3d": 72 * time.Hour, "1w": 7 * 24 * time.Hour,
}

// MockSource returns deterministic synthetic data for development and testing.
type MockSource struct {
	Price float64
	Count int
	Days  int // sentiment and daily history length
	Now   func() time.Time
}

// NewMockSource generates 500 candles per interval and three years of sentiment.
func NewMockSource(price float64) *MockSource {
	return &MockSource{Price: price, Count: 500, Days: 3 * 365, Now: time.Now}
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Candles(_ context.Context, _ string, interval string) (model.Series, error) {
	step, ok := intervalSteps[interval]
	if !ok {
		return nil, fmt.Errorf("mock source: unknown interval %q", interval)
	}
	count := m.Count
	if interval == "1d" && m.Days > count {
		count = m.Days
	}
	end := m.now().Truncate(step)
	return generateMockBars(m.Price, count, end, step), nil
}

func (m *MockSource) Sentiment(_ context.Context) (model.SentimentSeries, error) {
	end := m.now().UTC().Truncate(24 * time.Hour)
	out := make(model.SentimentSeries, m.Days)
	for i := range out {
		v := 50 + int(45*math.Sin(float64(i)/9))
		out[i] = model.SentimentPoint{
			Date:           end.AddDate(0, 0, i-m.Days+1),
			Value:          v,
			Classification: strategy.ClassifySentiment(v).Label,
		}
	}
	return out, nil
}

func (m *MockSource) now() time.Time {
	if m.Now == nil {
		return time.Now().UTC()
	}
	return m.Now().UTC()
}

// generateMockBars produces count bars ending at end: a slow drift with a
// superimposed wave so every indicator has something to react to.
func generateMockBars(basePrice float64, count int, end time.Time, step time.Duration) model.Series {
	bars := make(model.Series, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001 + 0.05*math.Sin(float64(i)/12))
		bars[i] = model.Candle{
			Time:   end.Add(-time.Duration(count-1-i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000 * (1 + 0.3*math.Cos(float64(i)/5)),
		}
	}
	return bars
}
