package planner

import (
	"fmt"
	"math"

	"CoinScope/internal/model"
)

// MaxLeverage is the exchange cap applied to the recommended leverage.
const MaxLeverage = 125

// Risk levels by recommended leverage.
const (
	RiskHigh       = "HIGH"
	RiskModerate   = "MODERATE"
	RiskControlled = "CONTROLLED"
	RiskLow        = "LOW"
)

// stopDangerPercent is how close, in percent of entry, the stop may sit to
// the liquidation price before it is flagged.
const stopDangerPercent = 2.0

// LeverageInput describes a planned trade.
type LeverageInput struct {
	Side         model.PositionSide `json:"side"`
	Entry        float64            `json:"entry"`
	StopLoss     float64            `json:"stop_loss"`
	Exit         float64            `json:"exit"`
	PositionSize float64            `json:"position_size"`
	MaxLoss      float64            `json:"max_loss"`
}

// Leverage sizes the leverage so that hitting the stop loses MaxLoss, capped
// at MaxLeverage. With no stop distance or no position it falls back to 1x.
func Leverage(in LeverageInput) (model.LeveragePlan, error) {
	if in.Side != model.SideLong && in.Side != model.SideShort {
		return model.LeveragePlan{}, fmt.Errorf("%w: side %q", ErrInvalidInput, in.Side)
	}
	if in.Entry <= 0 {
		return model.LeveragePlan{}, fmt.Errorf("%w: entry price must be positive", ErrInvalidInput)
	}
	if in.StopLoss < 0 || in.Exit < 0 || in.PositionSize < 0 || in.MaxLoss < 0 {
		return model.LeveragePlan{}, fmt.Errorf("%w: prices and amounts must not be negative", ErrInvalidInput)
	}

	p := model.LeveragePlan{Side: in.Side}
	p.StopLossPercent = math.Abs(in.Entry-in.StopLoss) / in.Entry * 100

	p.Leverage = 1
	if p.StopLossPercent > 0 && in.PositionSize > 0 {
		p.Leverage = math.Min(in.MaxLoss/(in.PositionSize*p.StopLossPercent/100), MaxLeverage)
	}
	lev := p.Leverage

	p.EffectivePosition = in.PositionSize * lev
	p.LossAtStop = p.EffectivePosition * p.StopLossPercent / 100
	if lev > 0 {
		if in.Side == model.SideLong {
			p.LiquidationPrice = in.Entry * (1 - 1/lev)
		} else {
			p.LiquidationPrice = in.Entry * (1 + 1/lev)
		}
	}

	if in.Side == model.SideLong {
		p.ExitPercent = (in.Exit - in.Entry) / in.Entry * 100
	} else {
		p.ExitPercent = (in.Entry - in.Exit) / in.Entry * 100
	}
	p.ExitProfit = p.EffectivePosition * p.ExitPercent / 100
	if in.PositionSize > 0 {
		p.ExitMultiplier = p.ExitProfit / in.PositionSize
	}
	if p.LossAtStop > 0 {
		p.RiskReward = math.Abs(p.ExitProfit / p.LossAtStop)
	}

	p.Profit5 = p.EffectivePosition * 0.05
	p.Profit10 = p.EffectivePosition * 0.10
	p.Profit20 = p.EffectivePosition * 0.20

	p.RiskLevel = riskLevel(lev)
	p.StopToLiquidation = math.Abs(in.StopLoss-p.LiquidationPrice) / in.Entry * 100
	p.StopNearLiquidated = p.StopToLiquidation < stopDangerPercent
	return p, nil
}

func riskLevel(lev float64) string {
	switch {
	case lev >= 20:
		return RiskHigh
	case lev >= 10:
		return RiskModerate
	case lev >= 5:
		return RiskControlled
	default:
		return RiskLow
	}
}
