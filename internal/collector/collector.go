// Package collector pulls raw inputs from a Source and assembles the
// per-symbol analysis snapshot.
package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CoinScope/internal/backtest"
	"CoinScope/internal/calculator"
	"CoinScope/internal/chart"
	"CoinScope/internal/metrics"
	"CoinScope/internal/model"
	"CoinScope/internal/seasonality"
	"CoinScope/internal/series"
	"CoinScope/internal/strategy"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// DailyInterval is the candle interval used for backtest and seasonality.
	DailyInterval = "1d"
	// WeeklyInterval candles are folded from daily history when the source
	// has none of its own.
	WeeklyInterval = "1w"
)

// Options tune what a snapshot contains.
type Options struct {
	// Tier picks the profile tier per interval. Nil uses calculator.DefaultTier.
	Tier     func(interval string) model.ProfileTier
	Overlays chart.OverlaySet
	Backtest backtest.Config
	Now      func() time.Time
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Source Source
	opts   Options
}

// NewCollector creates a new Collector.
func NewCollector(src Source, opts Options) *Collector {
	if opts.Tier == nil {
		opts.Tier = calculator.DefaultTier
	}
	if opts.Overlays == nil {
		opts.Overlays = chart.NewOverlaySet(chart.AllOverlays...)
	}
	if opts.Backtest == (backtest.Config{}) {
		opts.Backtest = backtest.DefaultConfig()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Collector{Source: src, opts: opts}
}

// Snapshot computes every timeframe view of symbol concurrently, plus the
// sentiment backtest and seasonality of its daily history. Each goroutine
// works on its own series. A failing timeframe fails the snapshot; missing
// sentiment only leaves the backtest empty.
func (c *Collector) Snapshot(ctx context.Context, symbol string, timeframes []string) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		Symbol:      symbol,
		GeneratedAt: c.opts.Now().UTC(),
		Source:      c.Source.Name(),
		Timeframes:  make([]model.TimeframeView, len(timeframes)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, tf := range timeframes {
		g.Go(func() error {
			view, err := c.timeframe(gctx, symbol, tf)
			if err != nil {
				return fmt.Errorf("%s %s: %w", symbol, tf, err)
			}
			snap.Timeframes[i] = view
			return nil
		})
	}
	g.Go(func() error {
		daily, err := c.Source.Candles(gctx, symbol, DailyInterval)
		if err != nil {
			return fmt.Errorf("%s daily history: %w", symbol, err)
		}

		start := time.Now()
		snap.Seasonality = seasonality.Compute(daily)
		metrics.ObserveSince(metrics.ComputeDuration, "seasonality", start)

		sentiment, err := c.Source.Sentiment(gctx)
		if err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("sentiment unavailable, backtest skipped")
		}
		start = time.Now()
		snap.Backtest = backtest.Run(daily, sentiment, c.opts.Backtest)
		metrics.ObserveSince(metrics.ComputeDuration, "backtest", start)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *Collector) candles(ctx context.Context, symbol, interval string) (model.Series, error) {
	s, err := c.Source.Candles(ctx, symbol, interval)
	if interval != WeeklyInterval || (err == nil && len(s) > 0) || (err != nil && !errors.Is(err, ErrNoData)) {
		return s, err
	}
	daily, derr := c.Source.Candles(ctx, symbol, DailyInterval)
	if derr != nil {
		return nil, fmt.Errorf("weekly from daily: %w", derr)
	}
	log.Debug().Str("symbol", symbol).Int("daily", len(daily)).Msg("weekly candles folded from daily history")
	return series.ResampleWeekly(daily), nil
}

func (c *Collector) timeframe(ctx context.Context, symbol, interval string) (model.TimeframeView, error) {
	s, err := c.candles(ctx, symbol, interval)
	if err != nil {
		return model.TimeframeView{}, err
	}

	start := time.Now()
	annotated, err := calculator.Compute(s, interval, c.opts.Tier(interval))
	if err != nil {
		return model.TimeframeView{}, err
	}
	metrics.ObserveSince(metrics.ComputeDuration, "indicators", start)

	if !annotated.Params.Sufficient {
		log.Debug().Str("symbol", symbol).Str("interval", interval).
			Int("candles", annotated.Params.Candles).Int("required", annotated.Params.MaxWindow).
			Msg("history shorter than the longest indicator window")
	}

	return model.TimeframeView{
		Interval:  interval,
		Annotated: annotated,
		Chart:     chart.Compose(annotated, symbol, c.opts.Overlays),
		Signal:    strategy.Summarize(annotated),
		Stats:     calculator.MarketStats(s, interval),
	}, nil
}
