package planner

import (
	"errors"
	"math"
	"testing"

	"CoinScope/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompoundGrowth(t *testing.T) {
	plan, err := CompoundGrowth(1000, 100, 10, 10)
	require.NoError(t, err)

	r := 0.10 / 12
	growth := math.Pow(1+r, 120)
	want := 1000*growth + 100*(growth-1)/r

	assert.InDelta(t, 13000.0, plan.TotalInvested, 1e-9)
	assert.InDelta(t, want, plan.FinalValue, 1e-6)
	assert.InDelta(t, want-13000, plan.Profit, 1e-6)
	assert.InDelta(t, (want-13000)/13000*100, plan.ROIPercent, 1e-6)

	require.Len(t, plan.Schedule, 11)
	assert.Equal(t, 0, plan.Schedule[0].Year)
	assert.InDelta(t, 1000.0, plan.Schedule[0].Invested, 1e-9)
	assert.InDelta(t, 1000.0, plan.Schedule[0].Value, 1e-9)
	assert.InDelta(t, plan.FinalValue, plan.Schedule[10].Value, 1e-9)
	for i := 1; i < len(plan.Schedule); i++ {
		assert.Greater(t, plan.Schedule[i].Value, plan.Schedule[i-1].Value)
		assert.GreaterOrEqual(t, plan.Schedule[i].Value, plan.Schedule[i].Invested)
	}
}

func TestCompoundGrowth_ZeroRateIsLinear(t *testing.T) {
	plan, err := CompoundGrowth(1000, 100, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 7000.0, plan.FinalValue)
	assert.Equal(t, 7000.0, plan.TotalInvested)
	assert.Zero(t, plan.Profit)
	assert.Equal(t, 2200.0, plan.Schedule[1].Value)
}

func TestCompoundGrowth_NothingInvested(t *testing.T) {
	plan, err := CompoundGrowth(0, 0, 10, 3)
	require.NoError(t, err)
	assert.Zero(t, plan.FinalValue)
	assert.Zero(t, plan.ROIPercent)
}

func TestCompoundGrowth_Invalid(t *testing.T) {
	tests := []struct {
		name                     string
		initial, monthly, annual float64
		years                    int
	}{
		{"negative initial", -1, 0, 5, 1},
		{"negative monthly", 0, -5, 5, 1},
		{"return above cap", 100, 0, 101, 1},
		{"negative return", 100, 0, -1, 1},
		{"zero years", 100, 0, 5, 0},
		{"too many years", 100, 0, 5, 51},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompoundGrowth(tt.initial, tt.monthly, tt.annual, tt.years)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestLeverage_Long(t *testing.T) {
	p, err := Leverage(LeverageInput{
		Side: model.SideLong, Entry: 103000, StopLoss: 98000, Exit: 110000,
		PositionSize: 100, MaxLoss: 20,
	})
	require.NoError(t, err)

	assert.InDelta(t, 5000.0/103000*100, p.StopLossPercent, 1e-9)
	assert.InDelta(t, 4.12, p.Leverage, 1e-9)
	assert.InDelta(t, 412.0, p.EffectivePosition, 1e-9)
	assert.InDelta(t, 20.0, p.LossAtStop, 1e-9)
	assert.InDelta(t, 103000*(1-1/4.12), p.LiquidationPrice, 1e-6)
	assert.InDelta(t, 7000.0/103000*100, p.ExitPercent, 1e-9)
	assert.InDelta(t, 28.0, p.ExitProfit, 1e-9)
	assert.InDelta(t, 0.28, p.ExitMultiplier, 1e-9)
	assert.InDelta(t, 1.4, p.RiskReward, 1e-9)
	assert.InDelta(t, 20.6, p.Profit5, 1e-9)
	assert.InDelta(t, 41.2, p.Profit10, 1e-9)
	assert.InDelta(t, 82.4, p.Profit20, 1e-9)
	assert.Equal(t, RiskLow, p.RiskLevel)
	assert.False(t, p.StopNearLiquidated)
}

func TestLeverage_Short(t *testing.T) {
	p, err := Leverage(LeverageInput{
		Side: model.SideShort, Entry: 100, StopLoss: 105, Exit: 90,
		PositionSize: 100, MaxLoss: 10,
	})
	require.NoError(t, err)

	assert.InDelta(t, 5.0, p.StopLossPercent, 1e-9)
	assert.InDelta(t, 2.0, p.Leverage, 1e-9)
	assert.InDelta(t, 150.0, p.LiquidationPrice, 1e-9)
	assert.InDelta(t, 10.0, p.ExitPercent, 1e-9)
	assert.InDelta(t, 20.0, p.ExitProfit, 1e-9)
	assert.InDelta(t, 2.0, p.RiskReward, 1e-9)
	assert.InDelta(t, 45.0, p.StopToLiquidation, 1e-9)
}

func TestLeverage_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		in       LeverageInput
		wantLev  float64
		wantRisk string
		wantNear bool
	}{
		{
			name:     "capped at 125x",
			in:       LeverageInput{Side: model.SideLong, Entry: 100, StopLoss: 99.99, Exit: 101, PositionSize: 100, MaxLoss: 1000},
			wantLev:  MaxLeverage,
			wantRisk: RiskHigh,
			wantNear: true,
		},
		{
			name:     "no stop distance falls back to 1x",
			in:       LeverageInput{Side: model.SideLong, Entry: 100, StopLoss: 100, Exit: 110, PositionSize: 100, MaxLoss: 10},
			wantLev:  1,
			wantRisk: RiskLow,
		},
		{
			name:     "no position falls back to 1x",
			in:       LeverageInput{Side: model.SideShort, Entry: 100, StopLoss: 110, Exit: 90, MaxLoss: 10},
			wantLev:  1,
			wantRisk: RiskLow,
		},
		{
			name:     "moderate",
			in:       LeverageInput{Side: model.SideLong, Entry: 100, StopLoss: 99, Exit: 105, PositionSize: 100, MaxLoss: 12},
			wantLev:  12,
			wantRisk: RiskModerate,
		},
		{
			name:     "controlled",
			in:       LeverageInput{Side: model.SideLong, Entry: 100, StopLoss: 90, Exit: 105, PositionSize: 100, MaxLoss: 50},
			wantLev:  5,
			wantRisk: RiskControlled,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Leverage(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantLev, p.Leverage, 1e-9)
			assert.Equal(t, tt.wantRisk, p.RiskLevel)
			assert.Equal(t, tt.wantNear, p.StopNearLiquidated)
		})
	}
}

func TestLeverage_ZeroMaxLoss(t *testing.T) {
	p, err := Leverage(LeverageInput{Side: model.SideLong, Entry: 100, StopLoss: 90, Exit: 110, PositionSize: 100})
	require.NoError(t, err)
	assert.Zero(t, p.Leverage)
	assert.Zero(t, p.LiquidationPrice)
	assert.Zero(t, p.RiskReward)
}

func TestLeverage_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   LeverageInput
	}{
		{"unknown side", LeverageInput{Side: "sideways", Entry: 100}},
		{"zero entry", LeverageInput{Side: model.SideLong}},
		{"negative size", LeverageInput{Side: model.SideLong, Entry: 100, PositionSize: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Leverage(tt.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
