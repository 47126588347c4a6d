package model

import "time"

// TimeframeView is the analysis of one symbol at one candle interval.
type TimeframeView struct {
	Interval  string          `json:"interval"`
	Annotated AnnotatedSeries `json:"annotated"`
	Chart     Chart           `json:"chart"`
	Signal    SignalSummary   `json:"signal"`
	Stats     MarketStats     `json:"stats"`
}

// Snapshot bundles every view the dashboard shows for a symbol.
type Snapshot struct {
	Symbol      string          `json:"symbol"`
	GeneratedAt time.Time       `json:"generated_at"`
	Source      string          `json:"source"`
	Timeframes  []TimeframeView `json:"timeframes"`
	Backtest    BacktestResult  `json:"backtest"`
	Seasonality Seasonality     `json:"seasonality"`
}

// Timeframe returns the view for interval.
func (s *Snapshot) Timeframe(interval string) (TimeframeView, bool) {
	for _, v := range s.Timeframes {
		if v.Interval == interval {
			return v, true
		}
	}
	return TimeframeView{}, false
}
