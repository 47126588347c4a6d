// Package seasonality aggregates long daily histories into calendar-bucket
// return tables and day-level return statistics.
package seasonality

import (
	"fmt"
	"sort"
	"time"

	"CoinScope/internal/model"
)

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// period describes one kind of calendar bucket. key reports the calendar
// year and bucket of t; ok is false for days that belong to no bucket of
// their calendar year.
type period struct {
	name  string
	keys  int // number of columns, keys run 1..keys
	label func(key int) string
	key   func(t time.Time) (year, key int, ok bool)
}

var (
	weekly = period{
		name:  "weekly",
		keys:  53,
		label: func(k int) string { return fmt.Sprintf("W%d", k) },
		// Calendar year rows with ISO week columns. Days whose ISO week
		// belongs to the neighbouring year are left out.
		key: func(t time.Time) (int, int, bool) {
			y, w := t.ISOWeek()
			return t.Year(), w, y == t.Year()
		},
	}
	monthly = period{
		name:  "monthly",
		keys:  12,
		label: func(k int) string { return monthLabels[k-1] },
		key:   func(t time.Time) (int, int, bool) { return t.Year(), int(t.Month()), true },
	}
	quarterly = period{
		name:  "quarterly",
		keys:  4,
		label: func(k int) string { return fmt.Sprintf("Q%d", k) },
		key:   func(t time.Time) (int, int, bool) { return t.Year(), (int(t.Month())-1)/3 + 1, true },
	}
)

type bucketKey struct{ year, key int }

type bucket struct {
	first, last float64
	count       int
}

// bucketReturns groups s by p and returns the percent return of every bucket
// that has at least two candles and a non-zero first close, ordered by year then key.
func bucketReturns(s model.Series, p period) []model.SeasonalReturn {
	buckets := map[bucketKey]*bucket{}
	for _, c := range s {
		y, k, ok := p.key(c.Time)
		if !ok {
			continue
		}
		bk := bucketKey{y, k}
		b, ok := buckets[bk]
		if !ok {
			b = &bucket{first: c.Close}
			buckets[bk] = b
		}
		b.last = c.Close
		b.count++
	}

	out := make([]model.SeasonalReturn, 0, len(buckets))
	for bk, b := range buckets {
		if b.count < 2 || b.first == 0 {
			continue
		}
		out = append(out, model.SeasonalReturn{
			PeriodKey:     bk.key,
			Year:          bk.year,
			ReturnPercent: (b.last - b.first) / b.first * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].PeriodKey < out[j].PeriodKey
	})
	return out
}

// yearsOf returns the distinct calendar years of s, most recent first.
func yearsOf(s model.Series) []int {
	seen := map[int]bool{}
	var years []int
	for _, c := range s {
		y := c.Time.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// buildTable lays the returns out as one row per year, most recent first,
// followed by the Average and Median rows.
func buildTable(s model.Series, p period) model.SeasonalityTable {
	t := model.SeasonalityTable{Period: p.name}
	for k := 1; k <= p.keys; k++ {
		t.Keys = append(t.Keys, k)
		t.Columns = append(t.Columns, p.label(k))
	}

	cells := map[bucketKey]model.Cell{}
	for _, r := range bucketReturns(s, p) {
		cells[bucketKey{r.Year, r.PeriodKey}] = model.Defined(r.ReturnPercent)
	}

	years := yearsOf(s)
	columns := make([][]float64, p.keys)
	for _, y := range years {
		row := model.TableRow{Label: fmt.Sprint(y), Year: y, Cells: make([]model.Cell, p.keys)}
		for k := 1; k <= p.keys; k++ {
			c := cells[bucketKey{y, k}]
			row.Cells[k-1] = c
			if c.Valid {
				columns[k-1] = append(columns[k-1], c.Value)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if len(years) == 0 {
		return t
	}

	avg := model.TableRow{Label: model.RowAverage, Cells: make([]model.Cell, p.keys)}
	med := model.TableRow{Label: model.RowMedian, Cells: make([]model.Cell, p.keys)}
	for k, vals := range columns {
		avg.Cells[k] = mean(vals)
		med.Cells[k] = median(vals)
	}
	t.Rows = append(t.Rows, avg, med)
	return t
}
