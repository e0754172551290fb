// Package http provides the HTTP server and handlers.
package http //nolint:revive // package name conflicts with stdlib but is acceptable in this context

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/laminamaps/lamina/internal/config"
	"github.com/laminamaps/lamina/internal/ports/input"
	"github.com/laminamaps/lamina/internal/ports/output"
)

// Server wraps the HTTP server with application handlers.
type Server struct {
	server   *http.Server
	router   *mux.Router
	ingestor input.OverlayIngestor
	state    input.StateProvider
	images   output.ImageStore
	health   input.HealthChecker
	logger   *slog.Logger
	config   config.ServerConfig
	ingest   config.IngestConfig
	frontend config.FrontendConfig
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg config.ServerConfig,
	ingestCfg config.IngestConfig,
	frontendCfg config.FrontendConfig,
	ingestor input.OverlayIngestor,
	state input.StateProvider,
	images output.ImageStore,
	health input.HealthChecker,
	logger *slog.Logger,
) *Server {
	s := &Server{
		ingestor: ingestor,
		state:    state,
		images:   images,
		health:   health,
		logger:   logger,
		config:   cfg,
		ingest:   ingestCfg,
		frontend: frontendCfg,
	}

	s.router = s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *mux.Router {
	r := mux.NewRouter()

	// Add middleware. CORS runs unconditionally: without configured
	// origins it only short-circuits preflights.
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)

	// Routes register OPTIONS so preflights reach the middleware chain
	// instead of falling through to a 404.

	// Health endpoints
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/health/live", s.handleLiveness).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/health/ready", s.handleReadiness).Methods(http.MethodGet, http.MethodOptions)

	// API v1
	api := r.PathPrefix("/api/v1").Subrouter()

	// Ingestion endpoints
	api.HandleFunc("/overlays/boundaries", s.handleUploadBoundaries).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/overlays/tracks", s.handleUploadTracks).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/photos", s.handleUploadPhotos).Methods(http.MethodPost, http.MethodOptions)

	// State endpoints
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/state", s.handleClear).Methods(http.MethodDelete)

	// Photo image serving
	api.HandleFunc("/photos/{photoId}/image", s.handlePhotoImage).Methods(http.MethodGet, http.MethodOptions)

	// Basemap catalog
	api.HandleFunc("/basemaps", s.handleBasemaps).Methods(http.MethodGet, http.MethodOptions)

	// Frontend map page (if enabled)
	if s.frontend.Enabled {
		r.HandleFunc("/", s.handleFrontend).Methods(http.MethodGet)
	}

	return r
}

// Router returns the mux router.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "address", s.config.Address())
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs incoming requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// recoveryMiddleware recovers from panics.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered", "error", err, "path", r.URL.Path)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
