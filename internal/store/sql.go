package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"CoinScope/internal/metrics"
	"CoinScope/internal/model"
	"CoinScope/internal/series"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// dialect captures what differs between the supported databases. The schema
// and upsert statements are shared.
type dialect struct {
	name       string
	driver     string
	positional bool // $1, $2 ... instead of ?
	setup      []string
}

var dialects = map[string]dialect{
	"sqlite": {
		name:   "sqlite",
		driver: "sqlite",
		setup:  []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"},
	},
	"postgres": {
		name:       "postgres",
		driver:     "postgres",
		positional: true,
	},
}

// rebind rewrites ? placeholders for dialects that number their parameters.
func (d dialect) rebind(query string) string {
	if !d.positional {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS candles (
		symbol    TEXT NOT NULL,
		timeframe TEXT NOT NULL,
		ts        BIGINT NOT NULL,
		open      DOUBLE PRECISION NOT NULL,
		high      DOUBLE PRECISION NOT NULL,
		low       DOUBLE PRECISION NOT NULL,
		close     DOUBLE PRECISION NOT NULL,
		volume    DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (symbol, timeframe, ts)
	)`,
	`CREATE TABLE IF NOT EXISTS sentiment (
		day            BIGINT PRIMARY KEY,
		value          INTEGER NOT NULL,
		classification TEXT NOT NULL
	)`,
}

const upsertCandle = `INSERT INTO candles (symbol, timeframe, ts, open, high, low, close, volume)
	VALUES (?,?,?,?,?,?,?,?)
	ON CONFLICT (symbol, timeframe, ts) DO UPDATE SET
		open = excluded.open, high = excluded.high, low = excluded.low,
		close = excluded.close, volume = excluded.volume`

const upsertSentiment = `INSERT INTO sentiment (day, value, classification)
	VALUES (?,?,?)
	ON CONFLICT (day) DO UPDATE SET value = excluded.value, classification = excluded.classification`

// SQLStore keeps raw inputs in SQLite or PostgreSQL.
type SQLStore struct {
	db *sql.DB
	d  dialect
	mu sync.Mutex
}

// Open connects with the given driver ("sqlite" or "postgres"), applies the
// dialect's session settings and runs the migrations.
func Open(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}
	for _, stmt := range d.setup {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", stmt, err)
		}
	}

	s := &SQLStore{db: db, d: d}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info().Str("driver", d.name).Msg("store opened")
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLStore) SaveCandles(ctx context.Context, symbol, interval string, candles model.Series) (int, error) {
	defer metrics.ObserveSince(metrics.StoreQueryDuration, "save_candles", time.Now())
	rows := make([][]any, len(candles))
	for i, c := range candles {
		rows[i] = []any{symbol, interval, c.Time.Unix(), c.Open, c.High, c.Low, c.Close, c.Volume}
	}
	return s.upsert(ctx, upsertCandle, rows)
}

func (s *SQLStore) SaveSentiment(ctx context.Context, points model.SentimentSeries) (int, error) {
	defer metrics.ObserveSince(metrics.StoreQueryDuration, "save_sentiment", time.Now())
	rows := make([][]any, len(points))
	for i, p := range points {
		rows[i] = []any{series.DayStart(p.Date).Unix(), p.Value, p.Classification}
	}
	return s.upsert(ctx, upsertSentiment, rows)
}

// upsert writes all rows in one transaction.
func (s *SQLStore) upsert(ctx context.Context, query string, rows [][]any) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.d.rebind(query))
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i, args := range rows {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(rows), nil
}

// bounds turns an optional time range into unix-second limits.
func bounds(from, to time.Time) (int64, int64) {
	lo, hi := int64(-1<<62), int64(1<<62)
	if !from.IsZero() {
		lo = from.Unix()
	}
	if !to.IsZero() {
		hi = to.Unix()
	}
	return lo, hi
}

func (s *SQLStore) LoadCandles(ctx context.Context, symbol, interval string, from, to time.Time) (model.Series, error) {
	defer metrics.ObserveSince(metrics.StoreQueryDuration, "load_candles", time.Now())
	lo, hi := bounds(from, to)
	rows, err := s.db.QueryContext(ctx, s.d.rebind(`SELECT ts, open, high, low, close, volume FROM candles
		WHERE symbol = ? AND timeframe = ? AND ts >= ? AND ts <= ? ORDER BY ts`),
		symbol, interval, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("query candles: %w", err)
	}
	defer rows.Close()

	out := model.Series{}
	for rows.Next() {
		var ts int64
		var c model.Candle
		if err := rows.Scan(&ts, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		c.Time = time.Unix(ts, 0).UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) LoadSentiment(ctx context.Context, from, to time.Time) (model.SentimentSeries, error) {
	defer metrics.ObserveSince(metrics.StoreQueryDuration, "load_sentiment", time.Now())
	lo, hi := bounds(from, to)
	rows, err := s.db.QueryContext(ctx, s.d.rebind(`SELECT day, value, classification FROM sentiment
		WHERE day >= ? AND day <= ? ORDER BY day`), lo, hi)
	if err != nil {
		return nil, fmt.Errorf("query sentiment: %w", err)
	}
	defer rows.Close()

	out := model.SentimentSeries{}
	for rows.Next() {
		var day int64
		var p model.SentimentPoint
		if err := rows.Scan(&day, &p.Value, &p.Classification); err != nil {
			return nil, fmt.Errorf("scan sentiment: %w", err)
		}
		p.Date = time.Unix(day, 0).UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLStore) Close() error {
	log.Info().Str("driver", s.d.name).Msg("closing store")
	return s.db.Close()
}
