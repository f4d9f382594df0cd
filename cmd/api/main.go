package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agenciaworcode-source/dashboard-expatur/docs"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/bitrix"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/config"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/database"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/http/handler"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/http/middleware"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/http/router"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/jobs"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/logger"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/repository"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/service"
	"go.uber.org/zap"
)

// @title Expatur Dashboard API
// @version 1.0
// @description Sales dashboard backend for the Expatur travel agency. Syncs deals from Bitrix24 and serves aggregated financial metrics.

// @contact.name Worcode
// @contact.email contato@worcode.com.br

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	if basicCfg.App.Environment == "development" || basicCfg.App.Environment == "local" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	dealRepo := repository.NewDealRepository(db, log)

	// Initialize CRM client and services
	bitrixClient := bitrix.NewClient(&cfg.Bitrix, log)
	normalizer := service.NewNormalizer(&cfg.Exchange)
	syncService := service.NewSyncService(bitrixClient, dealRepo, normalizer, &cfg.Bitrix, &cfg.Sync, log)
	dashboardService := service.NewDashboardService(dealRepo, log)

	// Initialize middleware and handlers
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	crmHandler := handler.NewCRMHandler(syncService, dashboardService, log)

	// Setup router
	rt := router.NewRouter(cfg, log, db, rateLimiter, crmHandler)

	// Initialize and start scheduler for the periodic CRM sync
	var scheduler *jobs.Scheduler
	if cfg.Sync.PeriodicEnabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterBitrixSyncJob(
			scheduler,
			syncService,
			log,
			cfg.Sync.PeriodicCron,
			cfg.Sync.TimeoutDuration(),
		); err != nil {
			log.Error("Failed to register CRM sync job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with CRM sync job",
				zap.String("cron_expr", cfg.Sync.PeriodicCron),
				zap.Duration("timeout", cfg.Sync.TimeoutDuration()),
			)
		}
	} else {
		log.Info("Periodic CRM sync disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
