package handlers

import (
	"net/http"

	"dynamic-energy-costs/internal/api/models"

	"github.com/gin-gonic/gin"
)

// StrategyHandler exposes strategy discovery.
type StrategyHandler struct{}

func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies.
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "self_sufficiency",
			Description: "Charge the hourly production surplus, discharge to cover the deficit. Ignores price.",
		},
		{
			Name:        "dynamic_cost_optimization",
			Description: "Charge at full rate below the low price threshold, discharge at full rate above the high threshold.",
			Params:      []string{"price_threshold_low", "price_threshold_high"},
		},
	}
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
