package chart

import (
	"math"

	"CoinScope/internal/model"
)

// VolumeColors marks each candle up when it closed at or above its open.
func VolumeColors(s model.Series) []model.Direction {
	out := make([]model.Direction, len(s))
	for i, c := range s {
		if c.Up() {
			out[i] = model.DirectionUp
		} else {
			out[i] = model.DirectionDown
		}
	}
	return out
}

// HistogramColors marks each value up when it is >= 0. Undefined values get none.
func HistogramColors(values []float64) []model.Direction {
	out := make([]model.Direction, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = model.DirectionNone
		case v >= 0:
			out[i] = model.DirectionUp
		default:
			out[i] = model.DirectionDown
		}
	}
	return out
}

// Compose lays out the chart for the enabled overlays and picks the columns
// it needs from an already annotated series.
func Compose(a model.AnnotatedSeries, symbol string, enabled OverlaySet) model.Chart {
	layout := ComposeLayout(symbol, enabled)
	c := model.Chart{
		Symbol:  symbol,
		Layout:  layout,
		Series:  a.Series,
		Columns: map[string][]float64{},
	}
	for _, p := range layout.Panels {
		for _, col := range p.Columns {
			if col == ColumnVolume {
				continue
			}
			if values, ok := a.Indicators[col]; ok {
				c.Columns[col] = values
			}
		}
		switch p.Kind {
		case model.PanelVolume:
			c.VolumeColors = VolumeColors(a.Series)
		case model.PanelMACD:
			c.HistogramColors = HistogramColors(a.Indicators[model.ColMACDHistogram])
		}
	}
	return c
}
