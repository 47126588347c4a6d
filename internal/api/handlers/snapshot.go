package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"CoinScope/internal/api/models"
	"CoinScope/internal/collector"
	"CoinScope/internal/model"

	"github.com/gin-gonic/gin"
)

// SnapshotProvider returns the current snapshot of a symbol.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, symbol string) (*model.Snapshot, error)
}

// SnapshotHandler serves precomputed dashboard snapshots.
type SnapshotHandler struct {
	provider SnapshotProvider
	symbols  map[string]bool
}

// NewSnapshotHandler creates a new snapshot handler restricted to symbols.
// An empty list allows any symbol.
func NewSnapshotHandler(provider SnapshotProvider, symbols []string) *SnapshotHandler {
	h := &SnapshotHandler{provider: provider, symbols: map[string]bool{}}
	for _, s := range symbols {
		h.symbols[strings.ToUpper(s)] = true
	}
	return h
}

// Get handles GET /api/v1/snapshot/:symbol
func (h *SnapshotHandler) Get(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	if len(h.symbols) > 0 && !h.symbols[symbol] {
		c.JSON(http.StatusNotFound, models.NewError(models.CodeNotFound, "symbol "+symbol+" is not tracked"))
		return
	}

	snap, err := h.provider.Snapshot(c.Request.Context(), symbol)
	if err != nil {
		status, code := http.StatusInternalServerError, models.CodeInternal
		if errors.Is(err, collector.ErrNoData) {
			status, code = http.StatusServiceUnavailable, models.CodeUnavailable
		}
		c.JSON(status, models.NewError(code, err.Error()))
		return
	}

	if tf := c.Query("timeframe"); tf != "" {
		view, ok := snap.Timeframe(tf)
		if !ok {
			c.JSON(http.StatusNotFound, models.NewError(models.CodeNotFound, "timeframe "+tf+" is not in the snapshot"))
			return
		}
		c.JSON(http.StatusOK, view)
		return
	}
	c.JSON(http.StatusOK, snap)
}
