package seasonality

import (
	"time"

	"CoinScope/internal/model"
	"CoinScope/internal/series"
)

var weekdayLabels = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var weekOfMonthLabels = []string{"Week 1 (Start)", "Week 2", "Week 3", "Week 4", "Week 5 (End)"}

// Compute builds the weekly, monthly and quarterly tables and the day-level
// statistics of s. Sub-daily input is resampled to UTC days first. An empty
// series yields tables with columns but no rows and no statistics.
func Compute(s model.Series) model.Seasonality {
	days := series.ResampleDaily(s)
	out := model.Seasonality{
		Weekly:         buildTable(days, weekly),
		Monthly:        buildTable(days, monthly),
		Quarterly:      buildTable(days, quarterly),
		MonthlyReturns: bucketReturns(days, monthly),
		DailyReturns:   DailyReturns(days),
		DayOfWeek:      []model.GroupStat{},
		Weekend:        []model.GroupStat{},
		WeekOfMonth:    []model.GroupStat{},
		MonthlyStats:   []model.MonthlyStat{},
	}
	if len(days) == 0 {
		return out
	}

	out.DayOfWeek = dayOfWeekStats(out.DailyReturns)
	out.Weekend = weekendStats(out.DailyReturns)
	out.WeekOfMonth = weekOfMonthStats(out.DailyReturns)
	out.MonthlyStats = monthlyStats(out.DailyReturns, out.MonthlyReturns)
	return out
}

// DailyReturns computes the close-to-close return against the previous
// candle and the (high-low)/low range of every candle in s.
func DailyReturns(s model.Series) []model.DailyReturn {
	out := make([]model.DailyReturn, len(s))
	for i, c := range s {
		wd := weekdayIndex(c.Time)
		d := model.DailyReturn{
			Time:        c.Time,
			Weekday:     wd,
			Weekend:     wd >= 5,
			WeekOfMonth: weekOfMonth(c.Time),
			Month:       int(c.Time.Month()),
		}
		if i > 0 && s[i-1].Close != 0 {
			prev := s[i-1].Close
			d.Return = model.Defined((c.Close - prev) / prev * 100)
		}
		if c.Low != 0 {
			d.Volatility = model.Defined((c.High - c.Low) / c.Low * 100)
		}
		out[i] = d
	}
	return out
}

// weekdayIndex counts from Monday=0 to Sunday=6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// weekOfMonth buckets the day of month in sevens, folding days 29-31 into bucket 5.
func weekOfMonth(t time.Time) int {
	w := (t.Day()-1)/7 + 1
	if w > 5 {
		w = 5
	}
	return w
}

func dayOfWeekStats(daily []model.DailyReturn) []model.GroupStat {
	groups := make([]group, 7)
	for _, d := range daily {
		groups[d.Weekday].add(d)
	}
	out := make([]model.GroupStat, 7)
	for i := range groups {
		out[i] = groups[i].stat(i, weekdayLabels[i])
	}
	return out
}

func weekendStats(daily []model.DailyReturn) []model.GroupStat {
	var weekday, weekend group
	for _, d := range daily {
		if d.Weekend {
			weekend.add(d)
		} else {
			weekday.add(d)
		}
	}
	return []model.GroupStat{
		weekday.stat(0, "Weekday"),
		weekend.stat(1, "Weekend"),
	}
}

func weekOfMonthStats(daily []model.DailyReturn) []model.GroupStat {
	groups := make([]group, 5)
	for _, d := range daily {
		groups[d.WeekOfMonth-1].add(d)
	}
	out := make([]model.GroupStat, 5)
	for i := range groups {
		out[i] = groups[i].stat(i+1, weekOfMonthLabels[i])
	}
	return out
}

// monthlyStats reports, per calendar month, the mean of the per-occurrence
// monthly returns next to the mean of the daily returns inside that month.
func monthlyStats(daily []model.DailyReturn, occurrences []model.SeasonalReturn) []model.MonthlyStat {
	perMonth := make([][]float64, 12)
	for _, r := range occurrences {
		perMonth[r.PeriodKey-1] = append(perMonth[r.PeriodKey-1], r.ReturnPercent)
	}
	groups := make([]group, 12)
	for _, d := range daily {
		groups[d.Month-1].add(d)
	}

	out := make([]model.MonthlyStat, 12)
	for i := range out {
		g := groups[i]
		out[i] = model.MonthlyStat{
			Month:            i + 1,
			Label:            monthLabels[i],
			AvgMonthlyReturn: mean(perMonth[i]),
			Occurrences:      len(perMonth[i]),
			AvgDailyReturn:   mean(g.returns),
			StdDailyReturn:   sampleStd(g.returns),
			Days:             len(g.returns),
			AvgVolatility:    mean(g.volatilities),
		}
	}
	return out
}
