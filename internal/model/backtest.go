package model

import "time"

// BacktestEntry is one simulated buy.
type BacktestEntry struct {
	Time      time.Time `json:"time"`
	Price     float64   `json:"price"`
	Sentiment int       `json:"sentiment"`
	Amount    float64   `json:"amount"`
	Tokens    float64   `json:"tokens"`
}

// EquityPoint is the invested amount and position value at the close of one day.
type EquityPoint struct {
	Time     time.Time `json:"time"`
	Invested float64   `json:"invested"`
	Value    float64   `json:"value"`
}

// BacktestResult is the outcome of one sentiment backtest run.
type BacktestResult struct {
	Entries       []BacktestEntry `json:"entries"`
	TotalInvested float64         `json:"total_invested"`
	TotalTokens   float64         `json:"total_tokens"`
	FinalValue    float64         `json:"final_value"`
	LastClose     float64         `json:"last_close"`
	AverageCost   float64         `json:"average_cost"`
	ProfitPercent float64         `json:"profit_percent"`
	Curve         []EquityPoint   `json:"curve,omitempty"`
}

// Empty reports whether the run produced no entries.
func (r BacktestResult) Empty() bool { return len(r.Entries) == 0 }
