package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger_app/internal/core/services"
	"github.com/SscSPs/general_ledger_app/internal/dto"
	"github.com/SscSPs/general_ledger_app/internal/handlers"
	"github.com/SscSPs/general_ledger_app/internal/middleware"
	"github.com/SscSPs/general_ledger_app/internal/platform/config"
	"github.com/SscSPs/general_ledger_app/internal/repositories/bolt"
	"github.com/SscSPs/general_ledger_app/internal/repositories/database/migrations"
	"github.com/SscSPs/general_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/general_ledger_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/general_ledger_app/internal/repositories/memory"
	"github.com/SscSPs/general_ledger_app/internal/utils"
	"github.com/SscSPs/general_ledger_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const shutdownTimeout = 10 * time.Second

// @title General Ledger API
// @version 1.0
// @description Double-entry bookkeeping backend: chart of accounts, journal entries and financial reports.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	repos, err := openStorage(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if repos.Close == nil {
			return
		}
		if cerr := repos.Close(); cerr != nil {
			logger.Error("Error closing storage", slog.String("error", cerr.Error()))
		}
	}()
	logger.Info("Storage ready", slog.String("driver", cfg.StorageDriver))

	if cfg.EnableDBCheck {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.StorageTimeout)
		err := repos.Ping(ctx)
		cancel()
		if err != nil {
			logger.Error("Storage health check failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			logger.Error("Failed to register validators", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	metrics := middleware.NewMetrics()

	// Global middleware (recovery, logging, CORS, metrics, analytics)
	r.Use(
		gin.Recovery(),
		middleware.StructuredLoggingMiddleware(logger),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		metrics.Middleware(),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", metrics.Handler())
	handlers.RegisterRoutes(r, cfg, services.NewServiceContainer(cfg, repos))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
}

// openStorage builds the repository provider for the configured storage driver.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return memory.NewRepositoryProvider(), nil
	case config.StorageBolt:
		return bolt.NewRepositoryProvider(cfg.BoltPath)
	case config.StorageSQLite:
		return sqlite.NewRepositoryProvider(cfg.SQLitePath, logger)
	case config.StoragePostgres:
		logger.Info("Running database migrations...")
		if err := migrations.RunPostgres(cfg.DatabaseURL, logger); err != nil {
			return repositories.RepositoryProvider{}, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return repositories.RepositoryProvider{}, err
		}
		return pgsql.NewRepositoryProvider(pool), nil
	default:
		return repositories.RepositoryProvider{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
