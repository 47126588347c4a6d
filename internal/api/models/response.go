package models

import (
	"math"

	"CoinScope/internal/model"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeNotFound         = "NOT_FOUND"
	CodeUnavailable      = "SOURCE_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

// NewError builds an ErrorResponse.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// Columns holds indicator values with undefined entries as null.
type Columns map[string][]*float64

// NewColumns converts NaN-marked columns to nullable ones.
func NewColumns(set map[string][]float64) Columns {
	out := make(Columns, len(set))
	for name, vals := range set {
		col := make([]*float64, len(vals))
		for i, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			v := v
			col[i] = &v
		}
		out[name] = col
	}
	return out
}

// IndicatorsResponse is an annotated series.
type IndicatorsResponse struct {
	Params     model.ResolvedParams `json:"params"`
	Series     model.Series         `json:"series"`
	Indicators Columns              `json:"indicators"`
	Warning    string               `json:"warning,omitempty"`
}

// ChartResponse is a composed chart with the columns its panels plot.
type ChartResponse struct {
	Chart   model.Chart `json:"chart"`
	Columns Columns     `json:"columns"`
	Warning string      `json:"warning,omitempty"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status string `json:"status"`
}
