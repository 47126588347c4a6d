package series

import (
	"time"

	"CoinScope/internal/model"
)

// ResampleDaily folds a series into one candle per UTC calendar day. Daily
// input comes back as a copy with times truncated to midnight.
func ResampleDaily(s model.Series) model.Series {
	return aggregate(s, DayStart)
}

// ResampleWeekly folds a series into one candle per ISO week, stamped with the week's Monday.
func ResampleWeekly(s model.Series) model.Series {
	return aggregate(s, WeekStart)
}

// aggregate assumes s is time-ordered. Open is the first open in a bucket,
// close the last close, volume the sum.
func aggregate(s model.Series, bucket func(time.Time) time.Time) model.Series {
	if len(s) == 0 {
		return model.Series{}
	}
	var out model.Series
	cur := s[0]
	cur.Time = bucket(cur.Time)

	for _, c := range s[1:] {
		key := bucket(c.Time)
		if !key.Equal(cur.Time) {
			out = append(out, cur)
			cur = c
			cur.Time = key
			continue
		}
		if c.High > cur.High {
			cur.High = c.High
		}
		if c.Low < cur.Low {
			cur.Low = c.Low
		}
		cur.Close = c.Close
		cur.Volume += c.Volume
	}
	return append(out, cur)
}
