package seasonality

import (
	"math"
	"testing"
	"time"

	"CoinScope/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func candle(t time.Time, close float64) model.Candle {
	return model.Candle{Time: t, Open: close, High: close, Low: close, Close: close, Volume: 1}
}

// steps builds one candle per day from 'from' through 'to' inclusive, with
// close given by f.
func steps(from, to time.Time, f func(t time.Time) float64) model.Series {
	var s model.Series
	for t := from; !t.After(to); t = t.AddDate(0, 0, 1) {
		s = append(s, candle(t, f(t)))
	}
	return s
}

func labels(t model.SeasonalityTable) []string {
	var out []string
	for _, r := range t.Rows {
		out = append(out, r.Label)
	}
	return out
}

func TestCompute_SingleCandleMonthIsUndefined(t *testing.T) {
	s := steps(day(2023, 1, 1), day(2023, 1, 31), func(t time.Time) float64 { return 99 + float64(t.Day()) })
	s = append(s, candle(day(2023, 2, 1), 200))

	got := Compute(s).Monthly
	require.Equal(t, []string{"2023", model.RowAverage, model.RowMedian}, labels(got))

	row := got.Rows[0]
	require.True(t, row.Cells[0].Valid)
	assert.InDelta(t, 30.0, row.Cells[0].Value, 1e-9)
	assert.False(t, row.Cells[1].Valid, "one candle in February")
	assert.False(t, row.Cells[2].Valid)

	avg, _ := got.Row(model.RowAverage)
	assert.InDelta(t, 30.0, avg.Cells[0].Value, 1e-9)
	assert.False(t, avg.Cells[1].Valid)
}

func TestCompute_AverageAndMedianRows(t *testing.T) {
	tests := []struct {
		name       string
		years      map[int]float64 // year -> January close on the 31st, opening at 100
		wantRows   []string
		wantAvg    float64
		wantMedian float64
	}{
		{
			name:       "odd count",
			years:      map[int]float64{2021: 150, 2022: 110, 2023: 90},
			wantRows:   []string{"2023", "2022", "2021", model.RowAverage, model.RowMedian},
			wantAvg:    50.0 / 3,
			wantMedian: 10,
		},
		{
			name:       "even count takes index len/2",
			years:      map[int]float64{2022: 110, 2023: 90},
			wantRows:   []string{"2023", "2022", model.RowAverage, model.RowMedian},
			wantAvg:    0,
			wantMedian: 10,
		},
		{
			name:       "missing year is not a row",
			years:      map[int]float64{2019: 120, 2023: 80},
			wantRows:   []string{"2023", "2019", model.RowAverage, model.RowMedian},
			wantAvg:    0,
			wantMedian: 20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s model.Series
			for y := 2015; y <= 2025; y++ {
				end, ok := tt.years[y]
				if !ok {
					continue
				}
				s = append(s, candle(day(y, 1, 1), 100), candle(day(y, 1, 31), end))
			}

			got := Compute(s).Monthly
			require.Equal(t, tt.wantRows, labels(got))

			avg, _ := got.Row(model.RowAverage)
			med, _ := got.Row(model.RowMedian)
			assert.InDelta(t, tt.wantAvg, avg.Cells[0].Value, 1e-9)
			assert.InDelta(t, tt.wantMedian, med.Cells[0].Value, 1e-9)
			for k := 1; k < 12; k++ {
				assert.False(t, avg.Cells[k].Valid, "column %d has no data", k+1)
				assert.False(t, med.Cells[k].Valid)
			}
		})
	}
}

func TestCompute_GainYearAgainstLossYear(t *testing.T) {
	up := math.Log(1.5) / 365
	down := math.Log(0.5) / 365
	origin := day(2022, 1, 1)
	pivot := day(2023, 1, 1)
	s := steps(origin, day(2023, 12, 31), func(t time.Time) float64 {
		if t.Before(pivot) {
			return 100 * math.Exp(up*t.Sub(origin).Hours()/24)
		}
		peak := 100 * math.Exp(up*pivot.Sub(origin).Hours()/24)
		return peak * math.Exp(down*t.Sub(pivot).Hours()/24)
	})

	got := Compute(s).Monthly
	require.Equal(t, []string{"2023", "2022", model.RowAverage, model.RowMedian}, labels(got))

	loss, gain := got.Rows[0], got.Rows[1]
	avg, _ := got.Row(model.RowAverage)
	med, _ := got.Row(model.RowMedian)
	for k := 0; k < 12; k++ {
		require.True(t, gain.Cells[k].Valid)
		require.True(t, loss.Cells[k].Valid)
		assert.Positive(t, gain.Cells[k].Value)
		assert.Negative(t, loss.Cells[k].Value)
		assert.InDelta(t, (gain.Cells[k].Value+loss.Cells[k].Value)/2, avg.Cells[k].Value, 1e-9)
		assert.Negative(t, avg.Cells[k].Value, "losses are larger in magnitude")
		assert.Equal(t, gain.Cells[k].Value, med.Cells[k].Value)
	}
}

// flatAcrossMonths only moves mid-month, so chaining the monthly returns
// reproduces the whole-range return.
func flatAcrossMonths() model.Series {
	levels := map[time.Month][2]float64{
		time.January:  {100, 120},
		time.February: {120, 90},
		time.March:    {90, 108},
	}
	return steps(day(2023, 1, 1), day(2023, 3, 31), func(t time.Time) float64 {
		l := levels[t.Month()]
		if t.Day() < 16 {
			return l[0]
		}
		return l[1]
	})
}

func TestCompute_MonthlyReturnsChain(t *testing.T) {
	s := flatAcrossMonths()
	out := Compute(s)

	require.Len(t, out.MonthlyReturns, 3)
	product := 1.0
	for _, r := range out.MonthlyReturns {
		assert.Equal(t, 2023, r.Year)
		product *= 1 + r.ReturnPercent/100
	}
	assert.InDelta(t, s[len(s)-1].Close/s[0].Close, product, 1e-12)

	q1 := out.Quarterly.Rows[0].Cells[0]
	require.True(t, q1.Valid)
	assert.InDelta(t, 8.0, q1.Value, 1e-9)
	assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4"}, out.Quarterly.Columns)
}

func TestCompute_WeeklyUsesCalendarYearRows(t *testing.T) {
	byDay := func(t time.Time) float64 { return float64(t.Day()) }

	t.Run("early January in previous ISO year is dropped", func(t *testing.T) {
		// 2021-01-01..03 sit in ISO week 53 of 2020.
		got := Compute(steps(day(2021, 1, 1), day(2021, 1, 10), byDay)).Weekly

		require.Len(t, got.Columns, 53)
		assert.Equal(t, "W1", got.Columns[0])
		require.Equal(t, []string{"2021", model.RowAverage, model.RowMedian}, labels(got))

		row := got.Rows[0]
		require.True(t, row.Cells[0].Valid)
		assert.InDelta(t, 150.0, row.Cells[0].Value, 1e-9) // Jan 4 -> Jan 10
		assert.False(t, row.Cells[52].Valid)
	})

	t.Run("late December in next ISO year is dropped", func(t *testing.T) {
		// 2024-12-30 and 31 sit in ISO week 1 of 2025.
		got := Compute(steps(day(2024, 12, 23), day(2024, 12, 31), byDay)).Weekly

		require.Equal(t, []string{"2024", model.RowAverage, model.RowMedian}, labels(got))
		row := got.Rows[0]
		assert.False(t, row.Cells[0].Valid)
		require.True(t, row.Cells[51].Valid)
		assert.InDelta(t, (29.0-23.0)/23.0*100, row.Cells[51].Value, 1e-9)
	})

	t.Run("single calendar year matches monthly rows", func(t *testing.T) {
		out := Compute(steps(day(2021, 1, 1), day(2021, 12, 31), func(t time.Time) float64 {
			return 100 + float64(t.YearDay())
		}))

		assert.Equal(t, labels(out.Monthly), labels(out.Weekly))
		row := out.Weekly.Rows[0]
		for w := 1; w <= 52; w++ {
			assert.True(t, row.Cells[w-1].Valid, "W%d", w)
		}
		assert.False(t, row.Cells[52].Valid)
	})
}

func TestDailyReturns(t *testing.T) {
	s := model.Series{
		{Time: day(2024, 1, 1), High: 110, Low: 100, Close: 100},
		{Time: day(2024, 1, 6), High: 120, Low: 0, Close: 110},
		{Time: day(2024, 1, 29), High: 99, Low: 90, Close: 99},
	}
	got := DailyReturns(s)
	require.Len(t, got, 3)

	assert.False(t, got[0].Return.Valid)
	assert.InDelta(t, 10.0, got[0].Volatility.Value, 1e-9)
	assert.Equal(t, 0, got[0].Weekday)
	assert.False(t, got[0].Weekend)
	assert.Equal(t, 1, got[0].WeekOfMonth)

	assert.InDelta(t, 10.0, got[1].Return.Value, 1e-9)
	assert.False(t, got[1].Volatility.Valid, "zero low")
	assert.Equal(t, 5, got[1].Weekday)
	assert.True(t, got[1].Weekend)

	assert.InDelta(t, -10.0, got[2].Return.Value, 1e-9)
	assert.Equal(t, 5, got[2].WeekOfMonth)
	assert.Equal(t, 1, got[2].Month)
}

func TestCompute_GroupStats(t *testing.T) {
	// Monday 2024-01-01 through Sunday 2024-01-14.
	s := steps(day(2024, 1, 1), day(2024, 1, 14), func(t time.Time) float64 {
		if t.Weekday() == time.Tuesday {
			return 110
		}
		return 100
	})
	out := Compute(s)

	require.Len(t, out.DayOfWeek, 7)
	total := 0
	for i, g := range out.DayOfWeek {
		assert.Equal(t, i, g.Key)
		assert.Equal(t, weekdayLabels[i], g.Label)
		total += g.Count
	}
	assert.Equal(t, 13, total, "first day has no return")
	assert.Equal(t, 1, out.DayOfWeek[0].Count)
	assert.False(t, out.DayOfWeek[0].StdReturn.Valid, "one sample")
	assert.Equal(t, 2, out.DayOfWeek[1].Count)

	// Both Tuesdays jump +10% from a flat Monday.
	assert.InDelta(t, 10.0, out.DayOfWeek[1].AvgReturn.Value, 1e-9)
	assert.InDelta(t, 0.0, out.DayOfWeek[1].StdReturn.Value, 1e-9)
	assert.InDelta(t, 1.0, out.DayOfWeek[1].PositiveRatio.Value, 1e-9)

	require.Len(t, out.Weekend, 2)
	assert.Equal(t, "Weekday", out.Weekend[0].Label)
	assert.Equal(t, 9, out.Weekend[0].Count)
	assert.Equal(t, "Weekend", out.Weekend[1].Label)
	assert.Equal(t, 4, out.Weekend[1].Count)

	require.Len(t, out.WeekOfMonth, 5)
	assert.Equal(t, "Week 1 (Start)", out.WeekOfMonth[0].Label)
	assert.Equal(t, "Week 5 (End)", out.WeekOfMonth[4].Label)
	assert.Equal(t, 6, out.WeekOfMonth[0].Count)
	assert.Equal(t, 7, out.WeekOfMonth[1].Count)
	assert.Zero(t, out.WeekOfMonth[4].Count)
	assert.False(t, out.WeekOfMonth[4].AvgReturn.Valid)
}

func TestCompute_MonthlyStatsKeepAveragesApart(t *testing.T) {
	out := Compute(flatAcrossMonths())
	require.Len(t, out.MonthlyStats, 12)

	jan := out.MonthlyStats[0]
	assert.Equal(t, "Jan", jan.Label)
	assert.Equal(t, 1, jan.Occurrences)
	assert.InDelta(t, 20.0, jan.AvgMonthlyReturn.Value, 1e-9)
	assert.Equal(t, 30, jan.Days)
	assert.InDelta(t, 20.0/30, jan.AvgDailyReturn.Value, 1e-9)

	feb := out.MonthlyStats[1]
	assert.InDelta(t, -25.0, feb.AvgMonthlyReturn.Value, 1e-9)
	assert.Equal(t, 28, feb.Days)
	assert.InDelta(t, -25.0/28, feb.AvgDailyReturn.Value, 1e-9)

	dec := out.MonthlyStats[11]
	assert.Zero(t, dec.Occurrences)
	assert.False(t, dec.AvgMonthlyReturn.Valid)
	assert.False(t, dec.AvgDailyReturn.Valid)
}

func TestCompute_ResamplesIntraday(t *testing.T) {
	var s model.Series
	for h := 0; h < 31*24; h += 6 {
		ts := day(2023, 1, 1).Add(time.Duration(h) * time.Hour)
		s = append(s, candle(ts, 100+float64(h)))
	}
	got := Compute(s)

	require.Len(t, got.DailyReturns, 31)
	jan := got.Monthly.Rows[0].Cells[0]
	require.True(t, jan.Valid)
	first, last := 118.0, 100.0+float64(30*24+18)
	assert.InDelta(t, (last-first)/first*100, jan.Value, 1e-9)
}

func TestCompute_Empty(t *testing.T) {
	out := Compute(nil)

	assert.True(t, out.Empty())
	assert.Len(t, out.Monthly.Columns, 12)
	assert.Empty(t, out.Monthly.Rows)
	assert.Len(t, out.Weekly.Columns, 53)
	assert.NotNil(t, out.DayOfWeek)
	assert.Empty(t, out.DayOfWeek)
	assert.Empty(t, out.MonthlyStats)
	assert.Empty(t, out.MonthlyReturns)
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	s := flatAcrossMonths()
	s[0].Time = s[0].Time.Add(7 * time.Hour)
	before := append(model.Series(nil), s...)
	Compute(s)
	assert.Equal(t, before, s)
}
