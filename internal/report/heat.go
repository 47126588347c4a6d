package report

import (
	"math"

	"CoinScope/internal/model"
)

// Heat is the text color and weight of a return cell.
type Heat struct {
	Color string `json:"color"`
	Bold  bool   `json:"bold,omitempty"`
}

var neutralHeat = Heat{Color: "#888888"}

// HeatOf colors a percent return: three green shades above zero, three red
// shades below, gray for zero and undefined cells.
func HeatOf(c model.Cell) Heat {
	v := c.Value
	switch {
	case !c.Valid || math.IsNaN(v) || v == 0:
		return neutralHeat
	case v >= 10:
		return Heat{Color: "#00FF00", Bold: true}
	case v >= 5:
		return Heat{Color: "#00DD00", Bold: true}
	case v > 0:
		return Heat{Color: "#00BB00"}
	case v <= -10:
		return Heat{Color: "#FF0000", Bold: true}
	case v <= -5:
		return Heat{Color: "#DD0000", Bold: true}
	default:
		return Heat{Color: "#BB0000"}
	}
}
