package strategy

import "CoinScope/internal/model"

// Zones maps the Fear & Greed scale to its five named bands, lowest first.
var Zones = []model.SentimentZone{
	{Label: "Extreme Fear", MaxValue: 25, Color: "#FF4444"},
	{Label: "Fear", MaxValue: 45, Color: "#FF8C00"},
	{Label: "Neutral", MaxValue: 55, Color: "#FFD700"},
	{Label: "Greed", MaxValue: 75, Color: "#90EE90"},
}

// ExtremeGreed covers values above the last band.
var ExtremeGreed = model.SentimentZone{Label: "Extreme Greed", MaxValue: 100, Color: "#00FF00"}

// FearThreshold is the highest value still counted as fear.
const FearThreshold = 45

// ClassifySentiment returns the zone a sentiment value falls into.
func ClassifySentiment(value int) model.SentimentZone {
	for _, z := range Zones {
		if value <= z.MaxValue {
			return z
		}
	}
	return ExtremeGreed
}

// IsFear reports whether value is at or below threshold. A threshold of 0
// or less means FearThreshold.
func IsFear(value, threshold int) bool {
	if threshold <= 0 {
		threshold = FearThreshold
	}
	return value <= threshold
}
