package router

import (
	"encoding/json"
	"net/http"

	"github.com/agenciaworcode-source/dashboard-expatur/internal/config"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/database"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/http/handler"
	"github.com/agenciaworcode-source/dashboard-expatur/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/agenciaworcode-source/dashboard-expatur/docs" // Import generated swagger docs
)

type Router struct {
	cfg         *config.Config
	logger      *zap.Logger
	db          *gorm.DB
	rateLimiter *middleware.RateLimiter
	crmHandler  *handler.CRMHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	rateLimiter *middleware.RateLimiter,
	crmHandler *handler.CRMHandler,
) *Router {
	return &Router{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		rateLimiter: rateLimiter,
		crmHandler:  crmHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats":   stats,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes. The frontend calls a single action-dispatch endpoint;
	// GET is accepted for dashboard reads, POST for everything.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/crm", rt.crmHandler.Handle)
		r.Post("/crm", rt.crmHandler.Handle)
	})

	return r
}
