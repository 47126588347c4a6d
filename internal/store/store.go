// Package store persists the raw inputs of the analytical core: candles per
// symbol and interval, and daily Fear & Greed readings. Computed results are
// never stored.
package store

import (
	"context"
	"time"

	"CoinScope/internal/model"
)

// Store saves and loads raw market inputs. Saves are upserts keyed on
// (symbol, interval, time) for candles and on the UTC date for sentiment.
// A zero from or to leaves that end of a range open.
type Store interface {
	SaveCandles(ctx context.Context, symbol, interval string, s model.Series) (int, error)
	LoadCandles(ctx context.Context, symbol, interval string, from, to time.Time) (model.Series, error)
	SaveSentiment(ctx context.Context, s model.SentimentSeries) (int, error)
	LoadSentiment(ctx context.Context, from, to time.Time) (model.SentimentSeries, error)
	Close() error
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}
