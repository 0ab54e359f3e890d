package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartsplit/smartsplit-backend/internal/api/handlers"
	"github.com/smartsplit/smartsplit-backend/internal/api/middleware"
	"github.com/smartsplit/smartsplit-backend/internal/application/service"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	svc        *service.BillService
}

// NewServer creates a new API server.
func NewServer(cfg Config, svc *service.BillService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		logger: logger,
		svc:    svc,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}
	s.router.Use(middleware.CORS(corsConfig))
	s.router.Use(middleware.Logging(s.logger))
	s.router.Use(middleware.Metrics())
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check and metrics (no /api prefix - for load balancers and
	// scrapers)
	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		// Bill fields, tip, completion
		billHandler := handlers.NewBillHandler(s.svc)
		r.Get("/bill", billHandler.Get)
		r.Put("/bill", billHandler.UpdateFields)
		r.Put("/bill/tip", billHandler.SetTip)
		r.Post("/bill/subtotal/derive", billHandler.DeriveSubtotal)
		r.Post("/bill/complete", billHandler.Complete)
		r.Post("/bill/reset", billHandler.Reset)

		// Items
		itemsHandler := handlers.NewItemsHandler(s.svc)
		r.Post("/items", itemsHandler.Create)
		r.Put("/items/{id}", itemsHandler.Update)
		r.Delete("/items/{id}", itemsHandler.Delete)

		// People
		peopleHandler := handlers.NewPeopleHandler(s.svc)
		r.Post("/people", peopleHandler.Create)
		r.Delete("/people/{id}", peopleHandler.Delete)

		// Results and export
		resultsHandler := handlers.NewResultsHandler(s.svc)
		r.Get("/results", resultsHandler.Get)
		r.Get("/export", resultsHandler.Export)

		// History
		historyHandler := handlers.NewHistoryHandler(s.svc)
		r.Get("/history", historyHandler.List)
		r.Get("/history/{id}", historyHandler.Get)
		r.Post("/history/{id}/load", historyHandler.Load)
		r.Delete("/history/{id}", historyHandler.Delete)
		r.Delete("/history", historyHandler.Clear)

		// Draft persistence
		draftHandler := handlers.NewDraftHandler(s.svc)
		r.Post("/draft/save", draftHandler.Save)
		r.Post("/draft/load", draftHandler.Load)
		r.Delete("/draft", draftHandler.Clear)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
