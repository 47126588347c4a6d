package calculator

import (
	"math"

	"CoinScope/internal/model"
)

var candlesPer24h = map[string]int{
	"1m": 1440, "3m": 480, "5m": 288, "15m": 96, "30m": 48,
	"1h": 24, "2h": 12, "4h": 6, "6h": 4, "8h": 3, "12h": 2,
}

// CandlesPer24h returns how many candles of interval span one day. Daily and
// coarser intervals use the last candle alone.
func CandlesPer24h(interval string) int {
	if n, ok := candlesPer24h[interval]; ok {
		return n
	}
	return 1
}

// MarketStats computes the price change against the previous candle and the
// 24h high, low and volume from the trailing candles of s.
func MarketStats(s model.Series, interval string) model.MarketStats {
	stats := model.MarketStats{Interval: interval}
	last, ok := s.Last()
	if !ok {
		return stats
	}
	stats.LastTime = last.Time
	stats.LastPrice = last.Close

	if len(s) > 1 {
		stats.PrevClose = s[len(s)-2].Close
		stats.Change = last.Close - stats.PrevClose
		if stats.PrevClose != 0 {
			stats.ChangePercent = stats.Change / stats.PrevClose * 100
		}
	}

	n := len(s)
	start := n - CandlesPer24h(interval)
	if start < 0 {
		start = 0
	}
	stats.Candles24h = n - start
	stats.High24h = math.Inf(-1)
	stats.Low24h = math.Inf(1)
	for i := start; i < n; i++ {
		if s[i].High > stats.High24h {
			stats.High24h = s[i].High
		}
		if s[i].Low < stats.Low24h {
			stats.Low24h = s[i].Low
		}
		stats.Volume24h += s[i].Volume
	}
	stats.RangePosition = rangePosition(last.Close, stats.High24h, stats.Low24h)
	return stats
}
