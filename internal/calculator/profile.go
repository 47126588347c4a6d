package calculator

import (
	"fmt"

	"CoinScope/internal/model"
)

// Timeframes lists the candle intervals offered by the dashboard, shortest first.
var Timeframes = []string{"1m", "5m", "15m", "30m", "1h", "2h", "4h", "6h", "12h", "1d", "3d", "1w"}

var timeframeClasses = map[string]model.TimeframeClass{
	"1m": model.ClassIntraday, "3m": model.ClassIntraday, "5m": model.ClassIntraday,
	"15m": model.ClassIntraday, "30m": model.ClassIntraday,
	"1h": model.ClassHourly, "2h": model.ClassHourly, "4h": model.ClassHourly,
	"6h": model.ClassHourly, "8h": model.ClassHourly, "12h": model.ClassHourly,
	"1d": model.ClassDaily, "3d": model.ClassDaily, "1w": model.ClassDaily, "1M": model.ClassDaily,
}

// fast/slow EMA windows per class and tier
var emaWindows = map[model.TimeframeClass]map[model.ProfileTier][2]int{
	model.ClassIntraday: {model.TierShort: {9, 21}, model.TierMid: {20, 50}, model.TierLong: {50, 100}},
	model.ClassHourly:   {model.TierShort: {12, 26}, model.TierMid: {50, 100}, model.TierLong: {100, 200}},
	model.ClassDaily:    {model.TierShort: {20, 50}, model.TierMid: {50, 100}, model.TierLong: {100, 200}},
}

// Fixed windows shared by every profile.
const (
	BollingerWindow = 20
	BollingerStdDev = 2.0
	RSIWindow       = 14
	MACDFast        = 12
	MACDSlow        = 26
	MACDSignal      = 9
	StochWindow     = 14
	StochSmooth     = 3
	ATRWindow       = 14
)

// TimeframeClass maps a candle interval to its parameter class. An empty
// interval means day-granularity data and resolves to the daily class.
func TimeframeClass(interval string) (model.TimeframeClass, error) {
	if interval == "" {
		return model.ClassDaily, nil
	}
	c, ok := timeframeClasses[interval]
	if !ok {
		return "", fmt.Errorf("unknown timeframe %q", interval)
	}
	return c, nil
}

// DefaultTier is the tier the chart picks for an interval when the user did
// not choose one: short for minute candles, mid for 1h-4h, long otherwise.
func DefaultTier(interval string) model.ProfileTier {
	switch interval {
	case "1m", "3m", "5m", "15m", "30m":
		return model.TierShort
	case "1h", "2h", "4h":
		return model.TierMid
	default:
		return model.TierLong
	}
}

// ResolveParams looks up every indicator window for interval and tier. An
// empty tier falls back to DefaultTier.
func ResolveParams(interval string, tier model.ProfileTier) (model.ResolvedParams, error) {
	class, err := TimeframeClass(interval)
	if err != nil {
		return model.ResolvedParams{}, err
	}
	if tier == "" {
		tier = DefaultTier(interval)
	}
	w, ok := emaWindows[class][tier]
	if !ok {
		return model.ResolvedParams{}, fmt.Errorf("unknown profile tier %q", tier)
	}

	p := model.ResolvedParams{
		Interval:        interval,
		Class:           class,
		Tier:            tier,
		FastWindow:      w[0],
		SlowWindow:      w[1],
		BollingerWindow: BollingerWindow,
		BollingerStdDev: BollingerStdDev,
		RSIWindow:       RSIWindow,
		MACDFast:        MACDFast,
		MACDSlow:        MACDSlow,
		MACDSignal:      MACDSignal,
		StochWindow:     StochWindow,
		StochSmooth:     StochSmooth,
		ATRWindow:       ATRWindow,
	}
	p.MaxWindow = MaxWindow(p)
	return p, nil
}

// MaxWindow is the number of candles needed before every column has a value.
func MaxWindow(p model.ResolvedParams) int {
	return maxInt(
		p.FastWindow,
		p.SlowWindow,
		p.BollingerWindow,
		p.RSIWindow+1,
		p.MACDSlow+p.MACDSignal-1,
		p.StochWindow+p.StochSmooth-1,
		p.ATRWindow,
	)
}

func maxInt(vals ...int) int {
	m := 0
	for _, v := range vals {
		if v > m {
			m = v
		}
	}
	return m
}

// InsufficientDataError reports a series shorter than the largest indicator window.
type InsufficientDataError struct {
	Required int
	Got      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need %d candles, got %d", e.Required, e.Got)
}

// CheckSufficient returns an *InsufficientDataError when the run behind p had
// fewer candles than its largest window. ComputeIndicators never fails on
// short input; callers that need every column populated check here.
func CheckSufficient(p model.ResolvedParams) error {
	if p.Sufficient {
		return nil
	}
	return &InsufficientDataError{Required: p.MaxWindow, Got: p.Candles}
}
