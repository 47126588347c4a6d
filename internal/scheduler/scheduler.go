package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"CoinScope/internal/collector"
	"CoinScope/internal/metrics"
	"CoinScope/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler keeps an in-memory snapshot per symbol and refreshes it on a cron schedule.
type Scheduler struct {
	Cron       *cron.Cron
	Collector  *collector.Collector
	Symbols    []string
	Timeframes []string
	Ctx        context.Context

	mu        sync.RWMutex
	snapshots map[string]*model.Snapshot
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, symbols, timeframes []string) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Collector:  col,
		Symbols:    symbols,
		Timeframes: timeframes,
		Ctx:        ctx,
		snapshots:  map[string]*model.Snapshot{},
	}
}

// RegisterAll registers the snapshot refresh task.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Strs("symbols", s.Symbols).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RefreshNow refreshes every configured symbol immediately.
func (s *Scheduler) RefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	for _, sym := range s.Symbols {
		if _, err := s.Refresh(s.Ctx, sym); err != nil {
			log.Error().Err(err).Str("symbol", sym).Msg("snapshot refresh failed")
		}
	}
}

// Refresh recomputes and caches the snapshot of symbol. A failed refresh
// keeps the previous snapshot.
func (s *Scheduler) Refresh(ctx context.Context, symbol string) (*model.Snapshot, error) {
	start := time.Now()
	snap, err := s.Collector.Snapshot(ctx, symbol, s.Timeframes)
	if err != nil {
		metrics.SnapshotRefreshTotal.WithLabelValues(symbol, "error").Inc()
		return nil, err
	}
	metrics.SnapshotRefreshTotal.WithLabelValues(symbol, "ok").Inc()

	s.mu.Lock()
	s.snapshots[symbol] = snap
	s.mu.Unlock()
	log.Info().Str("symbol", symbol).Dur("took", time.Since(start)).Msg("snapshot refreshed")
	return snap, nil
}

// Cached returns the last snapshot of symbol, if any.
func (s *Scheduler) Cached(symbol string) (*model.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[symbol]
	return snap, ok
}

// Snapshot serves the cached snapshot, computing it on first request.
func (s *Scheduler) Snapshot(ctx context.Context, symbol string) (*model.Snapshot, error) {
	if snap, ok := s.Cached(symbol); ok {
		return snap, nil
	}
	return s.Refresh(ctx, symbol)
}
