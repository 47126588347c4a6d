package handlers

import (
	"errors"
	"net/http"
	"time"

	"CoinScope/internal/api/models"
	"CoinScope/internal/backtest"
	"CoinScope/internal/calculator"
	"CoinScope/internal/chart"
	"CoinScope/internal/metrics"
	"CoinScope/internal/model"
	"CoinScope/internal/seasonality"
	"CoinScope/internal/series"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler runs the analytical core on candles posted by the client.
type AnalysisHandler struct {
	Overlays       chart.OverlaySet
	BacktestConfig backtest.Config
}

// NewAnalysisHandler creates a new analysis handler. Overlays and bt are the
// defaults used when a request does not carry its own.
func NewAnalysisHandler(overlays chart.OverlaySet, bt backtest.Config) *AnalysisHandler {
	if overlays == nil {
		overlays = chart.NewOverlaySet(chart.AllOverlays...)
	}
	if bt == (backtest.Config{}) {
		bt = backtest.DefaultConfig()
	}
	return &AnalysisHandler{Overlays: overlays, BacktestConfig: bt}
}

// Indicators handles POST /api/v1/indicators
func (h *AnalysisHandler) Indicators(c *gin.Context) {
	var req models.IndicatorsRequest
	if !bind(c, &req) {
		return
	}
	a, ok := annotate(c, req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.IndicatorsResponse{
		Params:     a.Params,
		Series:     a.Series,
		Indicators: models.NewColumns(a.Indicators),
		Warning:    warning(a.Params),
	})
}

// Layout handles POST /api/v1/layout
func (h *AnalysisHandler) Layout(c *gin.Context) {
	var req models.LayoutRequest
	if !bind(c, &req) {
		return
	}
	set, err := chart.ParseOverlays(req.Overlays)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidInput, err.Error()))
		return
	}
	c.JSON(http.StatusOK, chart.ComposeLayout(req.Symbol, set))
}

// Chart handles POST /api/v1/chart
func (h *AnalysisHandler) Chart(c *gin.Context) {
	var req models.ChartRequest
	if !bind(c, &req) {
		return
	}
	set := h.Overlays
	if len(req.Overlays) > 0 {
		var err error
		if set, err = chart.ParseOverlays(req.Overlays); err != nil {
			c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidInput, err.Error()))
			return
		}
	}
	a, ok := annotate(c, req.IndicatorsRequest)
	if !ok {
		return
	}

	start := time.Now()
	ch := chart.Compose(a, req.Symbol, set)
	metrics.ObserveSince(metrics.ComputeDuration, "chart", start)
	c.JSON(http.StatusOK, models.ChartResponse{
		Chart:   ch,
		Columns: models.NewColumns(ch.Columns),
		Warning: warning(a.Params),
	})
}

// Backtest handles POST /api/v1/backtest
func (h *AnalysisHandler) Backtest(c *gin.Context) {
	var req models.BacktestRequest
	if !bind(c, &req) {
		return
	}
	cfg := h.BacktestConfig
	if req.Config != nil {
		cfg = *req.Config
		if cfg.EntryAmount <= 0 || cfg.MinGapDays < 1 || cfg.FearThreshold < 0 || cfg.FearThreshold > 100 {
			c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidInput,
				"config needs entry_amount > 0, min_gap_days >= 1 and fear_threshold within 0-100 (0 for the default)"))
			return
		}
	}

	prices, ok := normalize(c, req.Candles)
	if !ok {
		return
	}
	sentiment, err := series.NormalizeSentiment(req.Sentiment)
	if err != nil {
		parseError(c, err)
		return
	}

	start := time.Now()
	result := backtest.Run(prices, sentiment, cfg)
	metrics.ObserveSince(metrics.ComputeDuration, "backtest", start)
	c.JSON(http.StatusOK, result)
}

// Seasonality handles POST /api/v1/seasonality
func (h *AnalysisHandler) Seasonality(c *gin.Context) {
	var req models.SeasonalityRequest
	if !bind(c, &req) {
		return
	}
	prices, ok := normalize(c, req.Candles)
	if !ok {
		return
	}

	start := time.Now()
	result := seasonality.Compute(prices)
	metrics.ObserveSince(metrics.ComputeDuration, "seasonality", start)
	c.JSON(http.StatusOK, result)
}

func annotate(c *gin.Context, req models.IndicatorsRequest) (model.AnnotatedSeries, bool) {
	s, ok := normalize(c, req.Candles)
	if !ok {
		return model.AnnotatedSeries{}, false
	}
	start := time.Now()
	a, err := calculator.Compute(s, req.Interval, model.ProfileTier(req.Tier))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidInput, err.Error()))
		return model.AnnotatedSeries{}, false
	}
	metrics.ObserveSince(metrics.ComputeDuration, "indicators", start)
	return a, true
}

func normalize(c *gin.Context, raw []model.RawCandle) (model.Series, bool) {
	s, err := series.NormalizeCandles(raw)
	if err != nil {
		parseError(c, err)
		return nil, false
	}
	return s, true
}

func parseError(c *gin.Context, err error) {
	detail := models.ErrorDetail{Code: models.CodeInvalidInput, Message: err.Error()}
	var pe *series.ParseError
	if errors.As(err, &pe) {
		detail.Details = map[string]interface{}{"index": pe.Index, "field": pe.Field}
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: detail})
}

func warning(p model.ResolvedParams) string {
	if err := calculator.CheckSufficient(p); err != nil {
		return err.Error()
	}
	return ""
}

// bind decodes the JSON body into req and answers 400 on failure.
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    models.CodeInvalidRequest,
				Message: err.Error(),
			},
		})
		return false
	}
	return true
}
