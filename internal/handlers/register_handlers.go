package handlers

import (
	"net/http"

	"github.com/SscSPs/general_ledger_app/cmd/docs"
	portssvc "github.com/SscSPs/general_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/general_ledger_app/internal/middleware"
	"github.com/SscSPs/general_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	api := r.Group("/api")

	RegisterHealthRoutes(api, services.Ledger)

	// Public authentication routes get the stricter limiter
	auth := api.Group("", middleware.RateLimit(middleware.NewLimiter("auth", cfg.AuthRateLimit, cfg.RateLimitWindow)))
	RegisterAuthRoutes(auth, services)

	setupProtectedRoutes(api, cfg, services)
	setupSwaggerRoutes(r, cfg)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
}

// setupProtectedRoutes configures the authenticated part of /api and delegates to specific entity route registrations
func setupProtectedRoutes(
	api *gin.RouterGroup,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	protected := api.Group("",
		middleware.RateLimit(middleware.NewLimiter("api", cfg.RateLimit, cfg.RateLimitWindow)),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)

	RegisterUserRoutes(protected, services.User)
	RegisterAccountRoutes(protected, services.Account)
	RegisterJournalRoutes(protected, services.Journal)
	RegisterReportingRoutes(protected, services.Reporting)
	RegisterLedgerRoutes(protected, services.Ledger)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
