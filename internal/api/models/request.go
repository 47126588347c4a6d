package models

import (
	"CoinScope/internal/backtest"
	"CoinScope/internal/model"
)

// IndicatorsRequest carries raw candles and the profile to compute them with.
type IndicatorsRequest struct {
	Candles  []model.RawCandle `json:"candles" binding:"required"`
	Interval string            `json:"interval,omitempty"` // default: "1d"
	Tier     string            `json:"tier,omitempty"`     // "short", "mid", "long"; default per interval
}

// LayoutRequest selects the overlays of a chart.
type LayoutRequest struct {
	Symbol   string   `json:"symbol"`
	Overlays []string `json:"overlays"`
}

// ChartRequest is an indicators request plus the chart's overlays.
type ChartRequest struct {
	IndicatorsRequest
	Symbol   string   `json:"symbol"`
	Overlays []string `json:"overlays,omitempty"` // default: every overlay
}

// BacktestRequest pairs a price history with Fear & Greed readings.
type BacktestRequest struct {
	Candles   []model.RawCandle    `json:"candles" binding:"required"`
	Sentiment []model.RawSentiment `json:"sentiment" binding:"required"`
	Config    *backtest.Config     `json:"config,omitempty"`
}

// SeasonalityRequest carries a long daily (or finer) price history.
type SeasonalityRequest struct {
	Candles []model.RawCandle `json:"candles" binding:"required"`
}

// CompoundRequest are the inputs of the compound growth planner.
type CompoundRequest struct {
	Initial      float64 `json:"initial"`
	Monthly      float64 `json:"monthly"`
	AnnualReturn float64 `json:"annual_return"` // percent
	Years        int     `json:"years"`
}
