package collector

import (
	"context"
	"errors"
	"fmt"

	"CoinScope/internal/model"

	"github.com/rs/zerolog/log"
)

// ErrNoData is returned when a source has nothing for the requested series.
var ErrNoData = errors.New("no data")

// Source supplies normalized candles and sentiment readings.
type Source interface {
	Candles(ctx context.Context, symbol, interval string) (model.Series, error)
	Sentiment(ctx context.Context) (model.SentimentSeries, error)
	Name() string
}

// FallbackSource asks Primary first and Secondary when Primary fails or has
// no data.
type FallbackSource struct {
	Primary   Source
	Secondary Source
}

func (f *FallbackSource) Name() string {
	return fmt.Sprintf("%s|%s", f.Primary.Name(), f.Secondary.Name())
}

func (f *FallbackSource) Candles(ctx context.Context, symbol, interval string) (model.Series, error) {
	s, err := f.Primary.Candles(ctx, symbol, interval)
	if err == nil && len(s) > 0 {
		return s, nil
	}
	log.Warn().Err(err).Str("source", f.Primary.Name()).Str("symbol", symbol).Str("interval", interval).
		Msg("primary source has no candles, falling back")
	return f.Secondary.Candles(ctx, symbol, interval)
}

func (f *FallbackSource) Sentiment(ctx context.Context) (model.SentimentSeries, error) {
	s, err := f.Primary.Sentiment(ctx)
	if err == nil && len(s) > 0 {
		return s, nil
	}
	log.Warn().Err(err).Str("source", f.Primary.Name()).Msg("primary source has no sentiment, falling back")
	return f.Secondary.Sentiment(ctx)
}
