// Package api exposes the analytical core and the cached snapshots over HTTP.
package api

import (
	"net/http"

	"CoinScope/internal/api/handlers"
	"CoinScope/internal/api/middleware"
	"CoinScope/internal/api/models"
	"CoinScope/internal/backtest"
	"CoinScope/internal/chart"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Options configure the router.
type Options struct {
	Mode        string // gin mode: "debug", "release", "test"
	CORSOrigins []string
	Symbols     []string
	Overlays    chart.OverlaySet
	Backtest    backtest.Config
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(snapshots handlers.SnapshotProvider, opts Options) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	analysisHandler := handlers.NewAnalysisHandler(opts.Overlays, opts.Backtest)
	calculatorHandler := handlers.NewCalculatorHandler()
	snapshotHandler := handlers.NewSnapshotHandler(snapshots, opts.Symbols)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/indicators", analysisHandler.Indicators)
		v1.POST("/layout", analysisHandler.Layout)
		v1.POST("/chart", analysisHandler.Chart)
		v1.POST("/backtest", analysisHandler.Backtest)
		v1.POST("/seasonality", analysisHandler.Seasonality)

		v1.POST("/calculators/compound", calculatorHandler.Compound)
		v1.POST("/calculators/leverage", calculatorHandler.Leverage)

		v1.GET("/snapshot/:symbol", snapshotHandler.Get)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError(models.CodeNotFound, "route not found"))
	})
	return router
}

// NewHandler wraps the router with CORS handling for the allowed origins.
func NewHandler(snapshots handlers.SnapshotProvider, opts Options) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	})
	return c.Handler(NewRouter(snapshots, opts))
}
