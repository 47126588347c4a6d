package backtest

// Position accumulates tokens bought with fixed cash amounts.
type Position struct {
	Invested float64
	Tokens   float64
}

// Buy spends amount at price and returns the tokens acquired. A non-positive
// price or amount buys nothing.
func (p *Position) Buy(amount, price float64) (tokens float64, ok bool) {
	if amount <= 0 || price <= 0 {
		return 0, false
	}
	tokens = amount / price
	p.Invested += amount
	p.Tokens += tokens
	return tokens, true
}

// Value marks the position to price.
func (p Position) Value(price float64) float64 {
	if p.Tokens == 0 {
		return 0
	}
	return p.Tokens * price
}

// AverageCost is invested cash per token, or 0 with no tokens.
func (p Position) AverageCost() float64 {
	if p.Tokens == 0 {
		return 0
	}
	return p.Invested / p.Tokens
}
