package series

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
}

// toTime parses epoch numbers in the given unit, numeric strings, or ISO-8601 strings.
func toTime(v any, unit time.Duration) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, ErrMissingField
	case time.Time:
		return x.UTC(), nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, ErrMissingField
		}
		if d, err := decimal.NewFromString(s); err == nil {
			return fromEpoch(d.IntPart(), unit), nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
	default:
		f, err := toFloat(v)
		if err != nil {
			return time.Time{}, err
		}
		return fromEpoch(int64(f), unit), nil
	}
}

func fromEpoch(n int64, unit time.Duration) time.Time {
	if unit == time.Millisecond {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

// DayStart truncates t to midnight of its UTC calendar date.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns midnight UTC of the Monday that opens t's ISO week.
func WeekStart(t time.Time) time.Time {
	day := DayStart(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
