package collector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"CoinScope/internal/model"
	"CoinScope/internal/store"
)

// StoreSource serves previously imported inputs from a store.
type StoreSource struct {
	Store store.Store
	// Lookback limits loads to the trailing window; zero loads everything.
	Lookback time.Duration
	Now      func() time.Time
}

func (s *StoreSource) Name() string { return "store" }

func (s *StoreSource) from() time.Time {
	if s.Lookback <= 0 {
		return time.Time{}
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return now.Add(-s.Lookback)
}

func (s *StoreSource) Candles(ctx context.Context, symbol, interval string) (model.Series, error) {
	out, err := s.Store.LoadCandles(ctx, symbol, interval, s.from(), time.Time{})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s %s in store", ErrNoData, symbol, interval)
	}
	return out, nil
}

func (s *StoreSource) Sentiment(ctx context.Context) (model.SentimentSeries, error) {
	return s.Store.LoadSentiment(ctx, s.from(), time.Time{})
}

// ImportResult counts the rows written by Import.
type ImportResult struct {
	Candles   map[string]int `json:"candles"`
	Sentiment int            `json:"sentiment"`
}

// Import copies the candles of every interval, and the sentiment history,
// from src into dst. Intervals the source has no data for are skipped.
func Import(ctx context.Context, src Source, dst store.Store, symbol string, intervals []string) (ImportResult, error) {
	res := ImportResult{Candles: map[string]int{}}
	for _, iv := range intervals {
		s, err := src.Candles(ctx, symbol, iv)
		if err != nil {
			if errors.Is(err, ErrNoData) {
				continue
			}
			return res, fmt.Errorf("read %s %s: %w", symbol, iv, err)
		}
		n, err := dst.SaveCandles(ctx, symbol, iv, s)
		if err != nil {
			return res, fmt.Errorf("save %s %s: %w", symbol, iv, err)
		}
		res.Candles[iv] = n
	}

	sent, err := src.Sentiment(ctx)
	if err != nil && !errors.Is(err, ErrNoData) {
		return res, fmt.Errorf("read sentiment: %w", err)
	}
	if res.Sentiment, err = dst.SaveSentiment(ctx, sent); err != nil {
		return res, fmt.Errorf("save sentiment: %w", err)
	}
	return res, nil
}

// Export writes the stored candles of every interval of symbol to
// <dir>/<SYMBOL>_<interval>.parquet and returns the files written.
// Intervals with nothing stored are skipped.
func Export(ctx context.Context, src store.Store, dir, symbol string, intervals []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	var written []string
	for _, iv := range intervals {
		s, err := src.LoadCandles(ctx, symbol, iv, time.Time{}, time.Time{})
		if err != nil {
			return written, fmt.Errorf("load %s %s: %w", symbol, iv, err)
		}
		if len(s) == 0 {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.parquet", symbol, iv))
		if err := WriteCandleFile(path, s); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
