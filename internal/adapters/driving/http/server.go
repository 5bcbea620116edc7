package http

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

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/cma-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups the driving ports the HTTP surface exposes
type Services struct {
	AuthFlow  driving.AuthFlowService
	Exports   driving.ExportService
	Templates driving.TemplateService
	Listings  driving.ListingsService
	Publisher driving.PublishService
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	dashboardPath      string
	exportPollInterval time.Duration
	corsOrigins        []string

	// Services
	authFlow  driving.AuthFlowService
	exports   driving.ExportService
	templates driving.TemplateService
	listings  driving.ListingsService
	publisher driving.PublishService

	tokens *TokenStore

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string

	// DashboardPath is where the auth flow lands when no return path was
	// given and where callback failures are reported.
	DashboardPath string

	// ExportPollInterval paces POST /export when the caller asks to wait.
	ExportPollInterval time.Duration

	CORSOrigins []string
	Logger      *slog.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:               "0.0.0.0",
		Port:               8080,
		Version:            "dev",
		DashboardPath:      "/dashboard",
		ExportPollInterval: 2 * time.Second,
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	services Services,
	tokens *TokenStore,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DashboardPath == "" {
		cfg.DashboardPath = "/"
	}
	if cfg.ExportPollInterval <= 0 {
		cfg.ExportPollInterval = 2 * time.Second
	}

	s := &Server{
		router:             http.NewServeMux(),
		version:            cfg.Version,
		logger:             cfg.Logger,
		dashboardPath:      cfg.DashboardPath,
		exportPollInterval: cfg.ExportPollInterval,
		corsOrigins:        cfg.CORSOrigins,
		authFlow:           services.AuthFlow,
		exports:            services.Exports,
		templates:          services.Templates,
		listings:           services.Listings,
		publisher:          services.Publisher,
		tokens:             tokens,
		db:                 db,
		redisClient:        redisClient,
	}

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:     s.Handler(),
		ReadTimeout: 30 * time.Second,
		// POST /export may hold the connection for up to MaxExportWait
		WriteTimeout: MaxExportWait + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// Handler returns the router wrapped in the global middleware chain
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = NewCORSMiddleware(s.corsOrigins).Handler(h)
	h = NewLoggingMiddleware(s.logger).Handler(h)
	h = NewRecoveryMiddleware(s.logger).Handler(h)
	return h
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	requireToken := NewDesignTokenMiddleware(s.tokens)

	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.Handle("GET /metrics", promhttp.Handler())
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Design provider authorization. Failures redirect instead of returning JSON.
	s.router.HandleFunc("GET /auth/start", s.handleAuthStart)
	s.router.HandleFunc("GET /auth/callback", s.handleAuthCallback)
	s.router.HandleFunc("POST /auth/logout", s.handleAuthLogout)

	// Design provider calls (require the token cookie)
	s.router.Handle("POST /export",
		requireToken.Require(http.HandlerFunc(s.handleSubmitExport)))
	s.router.Handle("GET /export/{jobId}",
		requireToken.Require(http.HandlerFunc(s.handlePollExport)))
	s.router.Handle("GET /templates",
		requireToken.Require(http.HandlerFunc(s.handleSearchTemplates)))

	// Listings
	s.router.HandleFunc("GET /listings/stats", s.handleMarketStats)
	s.router.HandleFunc("GET /listings/search", s.handleSearchListings)
	s.router.HandleFunc("GET /listings/autocomplete", s.handleAutocomplete)
	s.router.HandleFunc("GET /listings/{id}", s.handleGetListing)
	s.router.HandleFunc("GET /listings/{id}/similar", s.handleSimilarListings)

	// Report publishing
	s.router.HandleFunc("GET /reports/{id}/publish", s.handlePublishStatus)
	s.router.HandleFunc("POST /reports/{id}/publish", s.handlePublish)
	s.router.HandleFunc("DELETE /reports/{id}/publish", s.handleUnpublish)
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
	s.logger.Info("shutting down server")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
