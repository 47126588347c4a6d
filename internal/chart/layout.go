// Package chart decides which panels a chart needs and which indicator
// columns feed each of them. It never computes indicators itself.
package chart

import (
	"fmt"
	"strings"

	"CoinScope/internal/model"
)

// OverlaySet is the set of enabled overlays.
type OverlaySet map[model.Overlay]bool

// NewOverlaySet builds a set from the given overlays.
func NewOverlaySet(overlays ...model.Overlay) OverlaySet {
	set := make(OverlaySet, len(overlays))
	for _, o := range overlays {
		set[o] = true
	}
	return set
}

// AllOverlays lists every overlay in display order.
var AllOverlays = []model.Overlay{
	model.OverlayEMA,
	model.OverlayBollinger,
	model.OverlayRSI,
	model.OverlayVolume,
	model.OverlayMACD,
	model.OverlayStochastic,
	model.OverlayATR,
}

// ParseOverlays reads overlay names case-insensitively.
func ParseOverlays(names []string) (OverlaySet, error) {
	set := OverlaySet{}
	for _, n := range names {
		key := model.Overlay(strings.ToUpper(strings.TrimSpace(n)))
		if key == "" {
			continue
		}
		known := false
		for _, o := range AllOverlays {
			if o == key {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown overlay %q", n)
		}
		set[key] = true
	}
	return set, nil
}

// subPanel describes one optional row below the price panel.
type subPanel struct {
	overlay    model.Overlay
	kind       model.PanelKind
	title      string
	columns    []string
	guideLines []float64
}

// subPanels is in fixed display order.
var subPanels = []subPanel{
	{model.OverlayRSI, model.PanelRSI, "RSI", []string{model.ColRSI}, []float64{70, 30}},
	{model.OverlayVolume, model.PanelVolume, "Volume", []string{ColumnVolume}, nil},
	{model.OverlayMACD, model.PanelMACD, "MACD", []string{model.ColMACD, model.ColMACDSignal, model.ColMACDHistogram}, []float64{0}},
	{model.OverlayStochastic, model.PanelStochastic, "Stochastic", []string{model.ColStochK, model.ColStochD}, []float64{80, 20}},
	{model.OverlayATR, model.PanelATR, "ATR", []string{model.ColATR}, nil},
}

// ColumnVolume refers to the candle volume rather than an indicator column.
const ColumnVolume = "volume"

// ComposeLayout returns the chart rows for the enabled overlays. EMA and
// Bollinger draw inside the price panel; every other overlay gets its own
// row in the order RSI, Volume, MACD, Stochastic, ATR.
func ComposeLayout(symbol string, enabled OverlaySet) model.PanelLayout {
	title := "Price & Indicators"
	if symbol != "" {
		title = symbol + " " + title
	}
	price := model.Panel{Kind: model.PanelPrice, Title: title, Columns: []string{}}
	if enabled[model.OverlayEMA] {
		price.Overlays = append(price.Overlays, model.OverlayEMA)
		price.Columns = append(price.Columns, model.ColEMAFast, model.ColEMASlow)
	}
	if enabled[model.OverlayBollinger] {
		price.Overlays = append(price.Overlays, model.OverlayBollinger)
		price.Columns = append(price.Columns, model.ColBBUpper, model.ColBBMiddle, model.ColBBLower)
	}

	panels := []model.Panel{price}
	for _, sp := range subPanels {
		if !enabled[sp.overlay] {
			continue
		}
		panels = append(panels, model.Panel{
			Kind:       sp.kind,
			Title:      sp.title,
			Overlays:   []model.Overlay{sp.overlay},
			Columns:    append([]string(nil), sp.columns...),
			GuideLines: append([]float64(nil), sp.guideLines...),
		})
	}

	for i, w := range RowWeights(len(panels)) {
		panels[i].Weight = w
	}
	return model.PanelLayout{Panels: panels}
}

// RowWeights returns the relative heights for n rows, price row first.
func RowWeights(n int) []float64 {
	switch n {
	case 0:
		return nil
	case 1:
		return []float64{1.0}
	case 2:
		return []float64{0.75, 0.25}
	case 3:
		return []float64{0.65, 0.20, 0.15}
	case 4:
		return []float64{0.55, 0.15, 0.15, 0.15}
	case 5:
		return []float64{0.50, 0.125, 0.125, 0.125, 0.125}
	}
	w := make([]float64, n)
	w[0] = 0.45
	rest := 0.55 / float64(n-1)
	for i := 1; i < n; i++ {
		w[i] = rest
	}
	return w
}
