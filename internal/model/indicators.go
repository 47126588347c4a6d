package model

import "math"

// Indicator column names.
const (
	ColEMAFast       = "EMA_fast"
	ColEMASlow       = "EMA_slow"
	ColBBUpper       = "BB_upper"
	ColBBMiddle      = "BB_middle"
	ColBBLower       = "BB_lower"
	ColRSI           = "RSI"
	ColMACD          = "MACD"
	ColMACDSignal    = "MACD_signal"
	ColMACDHistogram = "MACD_histogram"
	ColStochK        = "STOCH_K"
	ColStochD        = "STOCH_D"
	ColATR           = "ATR"
)

// IndicatorColumns lists every column produced by the indicator engine, in a stable order.
var IndicatorColumns = []string{
	ColEMAFast, ColEMASlow,
	ColBBUpper, ColBBMiddle, ColBBLower,
	ColRSI,
	ColMACD, ColMACDSignal, ColMACDHistogram,
	ColStochK, ColStochD,
	ColATR,
}

// IndicatorSet maps a column name to per-candle values aligned with a Series.
// NaN marks an undefined (warm-up) entry.
type IndicatorSet map[string][]float64

// Latest returns the most recent defined value of a column.
func (s IndicatorSet) Latest(name string) (float64, bool) {
	col := s[name]
	for i := len(col) - 1; i >= 0; i-- {
		if !math.IsNaN(col[i]) {
			return col[i], true
		}
	}
	return 0, false
}

// TimeframeClass groups candle intervals that share a parameter profile.
type TimeframeClass string

const (
	ClassIntraday TimeframeClass = "intraday" // 1 to 30 minute candles
	ClassHourly   TimeframeClass = "hourly"   // 1 to 12 hour candles
	ClassDaily    TimeframeClass = "daily"    // daily and above
)

// ProfileTier selects the moving-average horizon within a class.
type ProfileTier string

const (
	TierShort ProfileTier = "short"
	TierMid   ProfileTier = "mid"
	TierLong  ProfileTier = "long"
)

// ResolvedParams records the windows actually used for one indicator run.
type ResolvedParams struct {
	Interval        string         `json:"interval"`
	Class           TimeframeClass `json:"class"`
	Tier            ProfileTier    `json:"tier"`
	FastWindow      int            `json:"fast_window"`
	SlowWindow      int            `json:"slow_window"`
	BollingerWindow int            `json:"bollinger_window"`
	BollingerStdDev float64        `json:"bollinger_std_dev"`
	RSIWindow       int            `json:"rsi_window"`
	MACDFast        int            `json:"macd_fast"`
	MACDSlow        int            `json:"macd_slow"`
	MACDSignal      int            `json:"macd_signal"`
	StochWindow     int            `json:"stoch_window"`
	StochSmooth     int            `json:"stoch_smooth"`
	ATRWindow       int            `json:"atr_window"`

	// Filled in by the engine.
	Candles    int  `json:"candles"`
	MaxWindow  int  `json:"max_window"`
	Sufficient bool `json:"sufficient"`
}

// AnnotatedSeries is a series with its indicator columns attached.
type AnnotatedSeries struct {
	Series     Series         `json:"series"`
	Indicators IndicatorSet   `json:"-"`
	Params     ResolvedParams `json:"params"`
}
