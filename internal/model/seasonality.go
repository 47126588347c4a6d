package model

import "time"

// Cell is a table value that may be undefined.
type Cell struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Defined wraps a value as a valid cell.
func Defined(v float64) Cell { return Cell{Value: v, Valid: true} }

// Row labels used for the summary rows of a seasonality table.
const (
	RowAverage = "Average"
	RowMedian  = "Median"
)

// SeasonalReturn is the percentage return of one (year, period) bucket.
type SeasonalReturn struct {
	PeriodKey     int     `json:"period_key"`
	Year          int     `json:"year"`
	ReturnPercent float64 `json:"return_percent"`
}

// TableRow is one row of a seasonality table: a year or a summary row.
type TableRow struct {
	Label string `json:"label"`
	Year  int    `json:"year,omitempty"` // zero on summary rows
	Cells []Cell `json:"cells"`
}

// SeasonalityTable holds years (descending) followed by the Average and Median rows.
type SeasonalityTable struct {
	Period  string     `json:"period"` // "weekly", "monthly", "quarterly"
	Keys    []int      `json:"keys"`
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// Row returns the row with the given label.
func (t SeasonalityTable) Row(label string) (TableRow, bool) {
	for _, r := range t.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return TableRow{}, false
}

// DailyReturn is the per-day return and intraday range of one candle.
type DailyReturn struct {
	Time        time.Time `json:"time"`
	Return      Cell      `json:"return"`
	Volatility  Cell      `json:"volatility"`
	Weekday     int       `json:"weekday"` // Monday=0 .. Sunday=6
	Weekend     bool      `json:"weekend"`
	WeekOfMonth int       `json:"week_of_month"`
	Month       int       `json:"month"`
}

// GroupStat aggregates daily returns for one group (weekday, weekend flag, week of month).
type GroupStat struct {
	Key           int    `json:"key"`
	Label         string `json:"label"`
	AvgReturn     Cell   `json:"avg_return"`
	StdReturn     Cell   `json:"std_return"`
	PositiveRatio Cell   `json:"positive_ratio"`
	AvgVolatility Cell   `json:"avg_volatility"`
	Count         int    `json:"count"`
}

// MonthlyStat keeps the two monthly averages apart: AvgMonthlyReturn averages
// one return per calendar-month occurrence, AvgDailyReturn averages the daily
// returns that fell in that month.
type MonthlyStat struct {
	Month            int    `json:"month"`
	Label            string `json:"label"`
	AvgMonthlyReturn Cell   `json:"avg_monthly_return"`
	Occurrences      int    `json:"occurrences"`
	AvgDailyReturn   Cell   `json:"avg_daily_return"`
	StdDailyReturn   Cell   `json:"std_daily_return"`
	Days             int    `json:"days"`
	AvgVolatility    Cell   `json:"avg_volatility"`
}

// Seasonality is the full output of the seasonality aggregator.
type Seasonality struct {
	Weekly         SeasonalityTable `json:"weekly"`
	Monthly        SeasonalityTable `json:"monthly"`
	Quarterly      SeasonalityTable `json:"quarterly"`
	MonthlyReturns []SeasonalReturn `json:"monthly_returns"`
	DailyReturns   []DailyReturn    `json:"daily_returns"`
	DayOfWeek      []GroupStat      `json:"day_of_week"`
	Weekend        []GroupStat      `json:"weekend"`
	WeekOfMonth    []GroupStat      `json:"week_of_month"`
	MonthlyStats   []MonthlyStat    `json:"monthly_stats"`
}

// Empty reports whether no candles were aggregated.
func (s Seasonality) Empty() bool { return len(s.DailyReturns) == 0 }
