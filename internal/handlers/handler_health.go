package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/SscSPs/general_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// RegisterHealthRoutes registers the unauthenticated health check.
func RegisterHealthRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerEventsSvc) {
	rg.GET("/health", healthCheck(ledgerService))
}

// healthCheck godoc
// @Summary Health check
// @Description Reports service status and whether the storage backend is reachable
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func healthCheck(ledgerService portssvc.LedgerEventsSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()

		database := "Connected"
		if err := ledgerService.Ping(ctx); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Storage ping failed", slog.String("error", err.Error()))
			database = "Unavailable"
		}
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC(),
			Database:  database,
		})
	}
}
