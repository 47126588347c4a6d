// Package backtest simulates buying a fixed amount whenever the Fear & Greed
// index reads fear, spaced at least a minimum number of days apart.
package backtest

import (
	"time"

	"CoinScope/internal/model"
	"CoinScope/internal/series"
	"CoinScope/internal/strategy"
)

// Config holds the rule parameters of a run.
type Config struct {
	EntryAmount   float64 `yaml:"entry_amount" json:"entry_amount"`
	FearThreshold int     `yaml:"fear_threshold" json:"fear_threshold"`
	MinGapDays    int     `yaml:"min_gap_days" json:"min_gap_days"`
}

// DefaultConfig buys 100 per entry at fear-or-worse readings, two days apart.
func DefaultConfig() Config {
	return Config{EntryAmount: 100, FearThreshold: strategy.FearThreshold, MinGapDays: 2}
}

// RunBacktest runs the default rule with the given entry amount.
func RunBacktest(prices model.Series, sentiment model.SentimentSeries, entryAmount float64) model.BacktestResult {
	cfg := DefaultConfig()
	cfg.EntryAmount = entryAmount
	return Run(prices, sentiment, cfg)
}

// Run walks the daily closes in order. Each day takes the sentiment of its
// date, or the last joined reading before it. When that value is at or below the
// threshold and no entry happened in the previous MinGapDays-1 days, the
// entry amount is invested at the close. A zero threshold means
// strategy.FearThreshold. Sub-daily input is resampled to
// UTC days first. Empty input, or sentiment that never covers a price day,
// gives a result with no entries and zero totals.
func Run(prices model.Series, sentiment model.SentimentSeries, cfg Config) model.BacktestResult {
	result := model.BacktestResult{Entries: []model.BacktestEntry{}}
	days := series.ResampleDaily(prices)
	if len(days) == 0 || len(sentiment) == 0 {
		return result
	}

	fills := forwardFill(days, sentiment)
	var pos Position
	var lastEntry time.Time
	var curve []model.EquityPoint

	for i, d := range days {
		f := fills[i]
		if f.ok && strategy.IsFear(f.value, cfg.FearThreshold) && gapElapsed(lastEntry, d.Time, cfg.MinGapDays) {
			if tokens, ok := pos.Buy(cfg.EntryAmount, d.Close); ok {
				result.Entries = append(result.Entries, model.BacktestEntry{
					Time:      d.Time,
					Price:     d.Close,
					Sentiment: f.value,
					Amount:    cfg.EntryAmount,
					Tokens:    tokens,
				})
				lastEntry = d.Time
			}
		}
		curve = append(curve, model.EquityPoint{Time: d.Time, Invested: pos.Invested, Value: pos.Value(d.Close)})
	}

	if len(result.Entries) == 0 {
		return result
	}

	last := days[len(days)-1].Close
	result.TotalInvested = pos.Invested
	result.TotalTokens = pos.Tokens
	result.LastClose = last
	result.FinalValue = pos.Value(last)
	result.AverageCost = pos.AverageCost()
	result.ProfitPercent = (result.FinalValue - result.TotalInvested) / result.TotalInvested * 100
	result.Curve = curve
	return result
}

func gapElapsed(last, now time.Time, minDays int) bool {
	if last.IsZero() {
		return true
	}
	return int(now.Sub(last).Hours()/24) >= minDays
}

type fill struct {
	value int
	ok    bool
}

// forwardFill left-joins sentiment onto days by date and carries the last
// joined reading forward. Readings on dates without a price day never join,
// so sentiment outside the price range yields no values.
func forwardFill(days model.Series, sentiment model.SentimentSeries) []fill {
	byDate := make(map[time.Time]int, len(sentiment))
	for _, p := range sentiment {
		byDate[series.DayStart(p.Date)] = p.Value
	}
	out := make([]fill, len(days))
	var cur fill
	for i, d := range days {
		if v, ok := byDate[d.Time]; ok {
			cur = fill{value: v, ok: true}
		}
		out[i] = cur
	}
	return out
}
