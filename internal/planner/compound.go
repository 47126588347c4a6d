// Package planner holds the standalone money calculators: compound growth
// of a recurring contribution and leverage sizing against a stop loss.
package planner

import (
	"errors"
	"fmt"

	"CoinScope/internal/model"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is wrapped by every validation failure in this package.
var ErrInvalidInput = errors.New("invalid planner input")

const (
	MaxAnnualReturn = 100
	MaxYears        = 50
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// CompoundGrowth projects an initial lump sum plus a monthly contribution
// compounded monthly at annualReturn/12 percent. Contributions are made at
// the end of each month. The schedule has one point per year from 0 to years.
func CompoundGrowth(initial, monthly, annualReturn float64, years int) (model.CompoundPlan, error) {
	switch {
	case initial < 0 || monthly < 0:
		return model.CompoundPlan{}, fmt.Errorf("%w: amounts must not be negative", ErrInvalidInput)
	case annualReturn < 0 || annualReturn > MaxAnnualReturn:
		return model.CompoundPlan{}, fmt.Errorf("%w: annual return %.2f%% outside 0-%d", ErrInvalidInput, annualReturn, MaxAnnualReturn)
	case years < 1 || years > MaxYears:
		return model.CompoundPlan{}, fmt.Errorf("%w: years %d outside 1-%d", ErrInvalidInput, years, MaxYears)
	}

	p0 := decimal.NewFromFloat(initial)
	pmt := decimal.NewFromFloat(monthly)
	rate := decimal.NewFromFloat(annualReturn).Div(hundred).Div(twelve)

	plan := model.CompoundPlan{
		Initial:      initial,
		Monthly:      monthly,
		AnnualReturn: annualReturn,
		Years:        years,
		Schedule:     make([]model.YearProjection, 0, years+1),
	}
	var invested, value decimal.Decimal
	for y := 0; y <= years; y++ {
		invested, value = projectMonths(p0, pmt, rate, int64(y*12))
		plan.Schedule = append(plan.Schedule, model.YearProjection{
			Year:     y,
			Invested: invested.InexactFloat64(),
			Value:    value.InexactFloat64(),
		})
	}

	profit := value.Sub(invested)
	plan.TotalInvested = invested.InexactFloat64()
	plan.FinalValue = value.InexactFloat64()
	plan.Profit = profit.InexactFloat64()
	if invested.IsPositive() {
		plan.ROIPercent = profit.Div(invested).Mul(hundred).InexactFloat64()
	}
	return plan, nil
}

// projectMonths is the closed-form future value after n months: the lump sum
// grown by (1+r)^n plus the ordinary annuity of the contributions. A zero
// rate degrades to plain addition.
func projectMonths(p0, pmt, rate decimal.Decimal, n int64) (invested, value decimal.Decimal) {
	invested = p0.Add(pmt.Mul(decimal.NewFromInt(n)))
	if rate.IsZero() {
		return invested, invested
	}
	growth := decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(n))
	annuity := growth.Sub(decimal.NewFromInt(1)).Div(rate)
	return invested, p0.Mul(growth).Add(pmt.Mul(annuity))
}
