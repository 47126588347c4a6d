package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"CoinScope/internal/model"
	"CoinScope/internal/series"
)

type seriesKey struct{ symbol, interval string }

// MemoryStore keeps everything in process memory. It backs tests and the
// mock source when no database is configured.
type MemoryStore struct {
	mu        sync.RWMutex
	candles   map[seriesKey]map[int64]model.Candle
	sentiment map[int64]model.SentimentPoint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		candles:   map[seriesKey]map[int64]model.Candle{},
		sentiment: map[int64]model.SentimentPoint{},
	}
}

func (m *MemoryStore) SaveCandles(_ context.Context, symbol, interval string, s model.Series) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := seriesKey{symbol, interval}
	if m.candles[k] == nil {
		m.candles[k] = map[int64]model.Candle{}
	}
	for _, c := range s {
		c.Time = c.Time.UTC()
		m.candles[k][c.Time.Unix()] = c
	}
	return len(s), nil
}

func (m *MemoryStore) LoadCandles(_ context.Context, symbol, interval string, from, to time.Time) (model.Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := model.Series{}
	for _, c := range m.candles[seriesKey{symbol, interval}] {
		if inRange(c.Time, from, to) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func (m *MemoryStore) SaveSentiment(_ context.Context, s model.SentimentSeries) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range s {
		p.Date = series.DayStart(p.Date)
		m.sentiment[p.Date.Unix()] = p
	}
	return len(s), nil
}

func (m *MemoryStore) LoadSentiment(_ context.Context, from, to time.Time) (model.SentimentSeries, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := model.SentimentSeries{}
	for _, p := range m.sentiment {
		if inRange(p.Date, from, to) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
