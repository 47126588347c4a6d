package model

import "time"

// Candle represents a single OHLCV bar.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Up reports whether the candle closed at or above its open.
func (c Candle) Up() bool { return c.Close >= c.Open }

// Series is a run of candles ordered by strictly increasing Time.
type Series []Candle

// Closes returns the close column.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Close
	}
	return out
}

// Highs returns the high column.
func (s Series) Highs() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.High
	}
	return out
}

// Lows returns the low column.
func (s Series) Lows() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Low
	}
	return out
}

// Last returns the most recent candle.
func (s Series) Last() (Candle, bool) {
	if len(s) == 0 {
		return Candle{}, false
	}
	return s[len(s)-1], true
}

// RawCandle is a candle as handed over by a data provider. Numeric fields
// may be numbers or numeric strings; Timestamp may be epoch milliseconds
// or an ISO-8601 string.
type RawCandle struct {
	Timestamp any `json:"timestamp"`
	Open      any `json:"open"`
	High      any `json:"high"`
	Low       any `json:"low"`
	Close     any `json:"close"`
	Volume    any `json:"volume"`
}

// MarketStats summarizes the latest state of a series for the metrics strip.
type MarketStats struct {
	Interval      string    `json:"interval"`
	LastTime      time.Time `json:"last_time"`
	LastPrice     float64   `json:"last_price"`
	PrevClose     float64   `json:"prev_close"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	High24h       float64   `json:"high_24h"`
	Low24h        float64   `json:"low_24h"`
	Volume24h     float64   `json:"volume_24h"`
	RangePosition float64   `json:"range_position"` // 0.0 ~ 1.0 within the 24h range
	Candles24h    int       `json:"candles_24h"`
}
