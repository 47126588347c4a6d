package model

// YearProjection is the state of a compound plan at the end of a year.
type YearProjection struct {
	Year     int     `json:"year"`
	Invested float64 `json:"invested"`
	Value    float64 `json:"value"`
}

// CompoundPlan is the projected growth of a lump sum plus monthly contributions.
type CompoundPlan struct {
	Initial       float64          `json:"initial"`
	Monthly       float64          `json:"monthly"`
	AnnualReturn  float64          `json:"annual_return"`
	Years         int              `json:"years"`
	TotalInvested float64          `json:"total_invested"`
	FinalValue    float64          `json:"final_value"`
	Profit        float64          `json:"profit"`
	ROIPercent    float64          `json:"roi_percent"`
	Schedule      []YearProjection `json:"schedule"`
}

// PositionSide is long or short.
type PositionSide string

const (
	SideLong  PositionSide = "long"
	SideShort PositionSide = "short"
)

// LeveragePlan is the risk sizing of a leveraged position.
type LeveragePlan struct {
	Side               PositionSide `json:"side"`
	StopLossPercent    float64      `json:"stop_loss_percent"`
	Leverage           float64      `json:"leverage"`
	EffectivePosition  float64      `json:"effective_position"`
	LossAtStop         float64      `json:"loss_at_stop"`
	LiquidationPrice   float64      `json:"liquidation_price"`
	ExitPercent        float64      `json:"exit_percent"`
	ExitProfit         float64      `json:"exit_profit"`
	ExitMultiplier     float64      `json:"exit_multiplier"`
	RiskReward         float64      `json:"risk_reward"`
	Profit5            float64      `json:"profit_5"`
	Profit10           float64      `json:"profit_10"`
	Profit20           float64      `json:"profit_20"`
	RiskLevel          string       `json:"risk_level"`
	StopToLiquidation  float64      `json:"stop_to_liquidation_percent"`
	StopNearLiquidated bool         `json:"stop_near_liquidation"`
}
