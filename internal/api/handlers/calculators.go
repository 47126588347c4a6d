package handlers

import (
	"net/http"

	"CoinScope/internal/api/models"
	"CoinScope/internal/planner"

	"github.com/gin-gonic/gin"
)

// CalculatorHandler serves the position planners.
type CalculatorHandler struct{}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// Compound handles POST /api/v1/calculators/compound
func (h *CalculatorHandler) Compound(c *gin.Context) {
	var req models.CompoundRequest
	if !bind(c, &req) {
		return
	}
	plan, err := planner.CompoundGrowth(req.Initial, req.Monthly, req.AnnualReturn, req.Years)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidInput, err.Error()))
		return
	}
	c.JSON(http.StatusOK, plan)
}

// Leverage handles POST /api/v1/calculators/leverage
func (h *CalculatorHandler) Leverage(c *gin.Context) {
	var req planner.LeverageInput
	if !bind(c, &req) {
		return
	}
	plan, err := planner.Leverage(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeInvalidInput, err.Error()))
		return
	}
	c.JSON(http.StatusOK, plan)
}
