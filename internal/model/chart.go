package model

// Overlay is an optional chart element the user can toggle.
type Overlay string

const (
	OverlayEMA        Overlay = "EMA"
	OverlayBollinger  Overlay = "BOLLINGER"
	OverlayRSI        Overlay = "RSI"
	OverlayVolume     Overlay = "VOLUME"
	OverlayMACD       Overlay = "MACD"
	OverlayStochastic Overlay = "STOCHASTIC"
	OverlayATR        Overlay = "ATR"
)

// PanelKind identifies what a chart row draws.
type PanelKind string

const (
	PanelPrice      PanelKind = "price"
	PanelRSI        PanelKind = "rsi"
	PanelVolume     PanelKind = "volume"
	PanelMACD       PanelKind = "macd"
	PanelStochastic PanelKind = "stochastic"
	PanelATR        PanelKind = "atr"
)

// Panel is one row of the chart.
type Panel struct {
	Kind       PanelKind `json:"kind"`
	Title      string    `json:"title"`
	Weight     float64   `json:"weight"`
	Overlays   []Overlay `json:"overlays,omitempty"`
	Columns    []string  `json:"columns"`
	GuideLines []float64 `json:"guide_lines,omitempty"`
}

// PanelLayout is the ordered list of chart rows. Panel 0 is always the price panel.
type PanelLayout struct {
	Panels []Panel `json:"panels"`
}

// Weights returns the row height weights in panel order.
func (l PanelLayout) Weights() []float64 {
	w := make([]float64, len(l.Panels))
	for i, p := range l.Panels {
		w[i] = p.Weight
	}
	return w
}

// Direction is the binary up/down coloring of a bar.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionNone Direction = "none"
)

// Chart is everything the renderer needs for one chart: the layout, the candles
// and only those indicator columns the layout references.
type Chart struct {
	Symbol          string               `json:"symbol"`
	Layout          PanelLayout          `json:"layout"`
	Series          Series               `json:"series"`
	Columns         map[string][]float64 `json:"-"`
	VolumeColors    []Direction          `json:"volume_colors,omitempty"`
	HistogramColors []Direction          `json:"histogram_colors,omitempty"`
}
