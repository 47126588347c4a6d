package model

import "time"

// RawSentiment is a Fear & Greed reading as received from the index provider.
// Timestamp may be epoch seconds or an ISO-8601 date; Value may be a number
// or a numeric string.
type RawSentiment struct {
	Timestamp      any    `json:"timestamp"`
	Value          any    `json:"value"`
	Classification string `json:"value_classification"`
}

// SentimentPoint is one daily sentiment reading.
type SentimentPoint struct {
	Date           time.Time `json:"date"` // UTC midnight
	Value          int       `json:"value"`
	Classification string    `json:"classification"`
}

// SentimentSeries is ordered by Date with at most one point per date.
type SentimentSeries []SentimentPoint

// SentimentZone is a named band of the 0-100 sentiment scale.
type SentimentZone struct {
	Label    string `json:"label"`
	MaxValue int    `json:"max_value"`
	Color    string `json:"color"`
}
