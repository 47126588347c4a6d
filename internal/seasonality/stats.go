package seasonality

import (
	"math"
	"sort"

	"CoinScope/internal/model"
)

func mean(vals []float64) model.Cell {
	if len(vals) == 0 {
		return model.Cell{}
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return model.Defined(sum / float64(len(vals)))
}

// median is the element at index len/2 of the ascending sort, with no
// interpolation on even counts.
func median(vals []float64) model.Cell {
	if len(vals) == 0 {
		return model.Cell{}
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return model.Defined(sorted[len(sorted)/2])
}

// sampleStd uses n-1 in the denominator and is undefined below two values.
func sampleStd(vals []float64) model.Cell {
	if len(vals) < 2 {
		return model.Cell{}
	}
	m := mean(vals).Value
	ss := 0.0
	for _, v := range vals {
		ss += (v - m) * (v - m)
	}
	return model.Defined(math.Sqrt(ss / float64(len(vals)-1)))
}

func positiveRatio(vals []float64) model.Cell {
	if len(vals) == 0 {
		return model.Cell{}
	}
	pos := 0
	for _, v := range vals {
		if v > 0 {
			pos++
		}
	}
	return model.Defined(float64(pos) / float64(len(vals)))
}

// group collects the defined returns and volatilities of one stats bucket.
type group struct {
	returns      []float64
	volatilities []float64
}

func (g *group) add(d model.DailyReturn) {
	if d.Return.Valid {
		g.returns = append(g.returns, d.Return.Value)
	}
	if d.Volatility.Valid {
		g.volatilities = append(g.volatilities, d.Volatility.Value)
	}
}

func (g *group) stat(key int, label string) model.GroupStat {
	return model.GroupStat{
		Key:           key,
		Label:         label,
		AvgReturn:     mean(g.returns),
		StdReturn:     sampleStd(g.returns),
		PositiveRatio: positiveRatio(g.returns),
		AvgVolatility: mean(g.volatilities),
		Count:         len(g.returns),
	}
}
