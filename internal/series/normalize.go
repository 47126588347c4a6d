// Package series turns raw provider records into canonical candle and
// sentiment series.
package series

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"CoinScope/internal/model"
	"CoinScope/internal/strategy"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrNotNumeric   = errors.New("not numeric")
	ErrBadTimestamp = errors.New("unrecognized timestamp")
	ErrOutOfRange   = errors.New("value out of range")
)

// ParseError reports the record and field that could not be coerced.
type ParseError struct {
	Index int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record %d: field %s: %v", e.Index, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NormalizeCandles coerces raw candles, sorts them by time and drops
// duplicate timestamps, keeping the first occurrence in input order.
// Gaps are left as they are.
func NormalizeCandles(raw []model.RawCandle) (model.Series, error) {
	out := make(model.Series, 0, len(raw))
	for i, r := range raw {
		c, err := parseCandle(i, r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return dedupe(out), nil
}

func parseCandle(idx int, r model.RawCandle) (model.Candle, error) {
	ts, err := toTime(r.Timestamp, time.Millisecond)
	if err != nil {
		return model.Candle{}, &ParseError{Index: idx, Field: "timestamp", Err: err}
	}
	c := model.Candle{Time: ts}
	fields := []struct {
		name string
		src  any
		dst  *float64
	}{
		{"open", r.Open, &c.Open},
		{"high", r.High, &c.High},
		{"low", r.Low, &c.Low},
		{"close", r.Close, &c.Close},
		{"volume", r.Volume, &c.Volume},
	}
	for _, f := range fields {
		v, err := toFloat(f.src)
		if err != nil {
			return model.Candle{}, &ParseError{Index: idx, Field: f.name, Err: err}
		}
		*f.dst = v
	}
	return c, nil
}

func dedupe(s model.Series) model.Series {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, c := range s[1:] {
		if c.Time.Equal(out[len(out)-1].Time) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// NormalizeSentiment coerces raw sentiment readings onto UTC dates, sorted
// ascending with one reading per date (first occurrence wins). A missing
// classification is derived from the value.
func NormalizeSentiment(raw []model.RawSentiment) (model.SentimentSeries, error) {
	out := make(model.SentimentSeries, 0, len(raw))
	for i, r := range raw {
		ts, err := toTime(r.Timestamp, time.Second)
		if err != nil {
			return nil, &ParseError{Index: i, Field: "timestamp", Err: err}
		}
		v, err := toFloat(r.Value)
		if err != nil {
			return nil, &ParseError{Index: i, Field: "value", Err: err}
		}
		if v != math.Trunc(v) || v < 0 || v > 100 {
			return nil, &ParseError{Index: i, Field: "value", Err: fmt.Errorf("%w: %v", ErrOutOfRange, v)}
		}
		cls := strings.TrimSpace(r.Classification)
		if cls == "" {
			cls = strategy.ClassifySentiment(int(v)).Label
		}
		out = append(out, model.SentimentPoint{Date: DayStart(ts), Value: int(v), Classification: cls})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if len(out) < 2 {
		return out, nil
	}
	uniq := out[:1]
	for _, p := range out[1:] {
		if p.Date.Equal(uniq[len(uniq)-1].Date) {
			continue
		}
		uniq = append(uniq, p)
	}
	return uniq, nil
}

// Clone returns a copy of s that shares no memory with it.
func Clone(s model.Series) model.Series {
	if s == nil {
		return nil
	}
	out := make(model.Series, len(s))
	copy(out, s)
	return out
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, ErrMissingField
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("%w: %v", ErrNotNumeric, x)
		}
		return x, nil
	case float32:
		return toFloat(float64(x))
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case decimal.Decimal:
		return x.InexactFloat64(), nil
	case json.Number:
		return parseDecimal(string(x))
	case string:
		return parseDecimal(x)
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrNotNumeric, v)
	}
}

func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingField
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return d.InexactFloat64(), nil
}
