// Package report renders snapshots as styled terminal text.
package report

import (
	"fmt"
	"strings"

	"CoinScope/internal/model"
	"CoinScope/internal/strategy"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E90FF"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8C00"))
	upStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#26A69A"))
	downStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF5350"))
	cellStyle  = lipgloss.NewStyle().Width(8).Align(lipgloss.Right)
	rowHead    = lipgloss.NewStyle().Width(8).Bold(true)
)

// FormatSnapshot renders every section of a snapshot, timeframes first.
func FormatSnapshot(s *model.Snapshot) string {
	sections := []string{
		titleStyle.Render(fmt.Sprintf("CoinScope | %s | %s", s.Symbol, s.GeneratedAt.Format("2006-01-02 15:04 MST"))),
	}
	for _, v := range s.Timeframes {
		sections = append(sections, FormatTimeframe(s.Symbol, v))
	}
	sections = append(sections,
		FormatBacktest(s.Backtest),
		FormatSeasonality(s.Seasonality.Monthly),
		FormatSeasonality(s.Seasonality.Quarterly),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// FormatTimeframe renders the price strip and the factor breakdown of one interval.
func FormatTimeframe(symbol string, v model.TimeframeView) string {
	var b strings.Builder
	st := v.Stats

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", symbol, v.Interval)))
	b.WriteString("\n")
	change := fmt.Sprintf("%+.2f (%+.2f%%)", st.Change, st.ChangePercent)
	if st.Change >= 0 {
		change = upStyle.Render(change)
	} else {
		change = downStyle.Render(change)
	}
	b.WriteString(fmt.Sprintf("%s %.2f %s\n", labelStyle.Render("Price:"), st.LastPrice, change))
	b.WriteString(fmt.Sprintf("%s %.2f / %.2f  %s %.0f\n",
		labelStyle.Render("24h High/Low:"), st.High24h, st.Low24h, labelStyle.Render("Vol:"), st.Volume24h))
	if !v.Annotated.Params.Sufficient {
		b.WriteString(warnStyle.Render(fmt.Sprintf("only %d candles, indicators need %d", v.Annotated.Params.Candles, v.Annotated.Params.MaxWindow)))
		b.WriteString("\n")
	}

	b.WriteString(FormatSignal(v.Signal))
	return b.String()
}

// FormatSignal lists the factor scores and the resulting tier.
func FormatSignal(sig model.SignalSummary) string {
	var b strings.Builder
	for _, f := range sig.Factors {
		b.WriteString(fmt.Sprintf("  %-10s %-28s %+.0f (x%.2f) = %+.3f\n",
			f.Name, f.Commentary, f.RawScore, f.Weight, f.Weighted))
	}
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  Score: %+.3f  %s\n", sig.TotalScore, sig.Tier.Label))
	if sig.WarningMsg != "" {
		b.WriteString(warnStyle.Render(sig.WarningMsg))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatBacktest summarizes a sentiment backtest and its last few entries.
func FormatBacktest(r model.BacktestResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Fear & Greed DCA backtest"))
	b.WriteString("\n")
	if r.Empty() {
		b.WriteString(labelStyle.Render("no entries: sentiment never reached the threshold inside the price range"))
		b.WriteString("\n")
		return b.String()
	}

	profit := fmt.Sprintf("%+.2f%%", r.ProfitPercent)
	if r.ProfitPercent >= 0 {
		profit = upStyle.Render(profit)
	} else {
		profit = downStyle.Render(profit)
	}
	b.WriteString(fmt.Sprintf("%s %d  %s %.2f  %s %.2f  %s %s\n",
		labelStyle.Render("Entries:"), len(r.Entries),
		labelStyle.Render("Invested:"), r.TotalInvested,
		labelStyle.Render("Value:"), r.FinalValue,
		labelStyle.Render("P/L:"), profit))
	b.WriteString(fmt.Sprintf("%s %.4f  %s %.2f  %s %.2f\n",
		labelStyle.Render("Tokens:"), r.TotalTokens,
		labelStyle.Render("Avg cost:"), r.AverageCost,
		labelStyle.Render("Last close:"), r.LastClose))

	start := len(r.Entries) - 5
	if start < 0 {
		start = 0
	}
	for _, e := range r.Entries[start:] {
		zone := strategy.ClassifySentiment(e.Sentiment)
		tag := lipgloss.NewStyle().Foreground(lipgloss.Color(zone.Color)).Render(fmt.Sprintf("%3d %s", e.Sentiment, zone.Label))
		b.WriteString(fmt.Sprintf("  %s  %12.2f  %s\n", e.Time.Format("2006-01-02"), e.Price, tag))
	}
	return b.String()
}

// FormatSeasonality renders a return table as a heatmap grid.
func FormatSeasonality(t model.SeasonalityTable) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(periodTitle(t.Period) + " returns (%)"))
	b.WriteString("\n")
	if len(t.Rows) == 0 {
		b.WriteString(labelStyle.Render("no data"))
		b.WriteString("\n")
		return b.String()
	}

	header := []string{rowHead.Render("")}
	for _, c := range t.Columns {
		header = append(header, cellStyle.Render(c))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for _, row := range t.Rows {
		line := []string{rowHead.Render(row.Label)}
		for _, c := range row.Cells {
			line = append(line, renderCell(c))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, line...))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(c model.Cell) string {
	h := HeatOf(c)
	style := cellStyle.Foreground(lipgloss.Color(h.Color)).Bold(h.Bold)
	if !c.Valid {
		return style.Render("-")
	}
	return style.Render(fmt.Sprintf("%+.1f", c.Value))
}

func periodTitle(p string) string {
	if p == "" {
		return "Seasonal"
	}
	return strings.ToUpper(p[:1]) + p[1:]
}
