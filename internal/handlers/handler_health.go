package handlers

import (
	"net/http"

	"github.com/SscSPs/moneytx/internal/core/ports"
	"github.com/SscSPs/moneytx/internal/dto"
	"github.com/gin-gonic/gin"
)

// healthCheck godoc
// @Summary Service health
// @Description Reports whether the ledger processor is accepting requests
// @Tags health
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse "Processor starting, restarting or stopped"
// @Router /health [get]
func healthCheck(health ports.ProcessorHealth) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := health.State()
		resp := dto.HealthResponse{
			Status:    "ok",
			Processor: state.String(),
			Restarts:  health.Restarts(),
		}
		if state != ports.StateRunning {
			resp.Status = "unavailable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
