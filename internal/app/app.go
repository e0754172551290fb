// Package app provides application initialization and wiring.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/laminamaps/lamina/internal/adapters/exif"
	"github.com/laminamaps/lamina/internal/adapters/gpx"
	httpAdapter "github.com/laminamaps/lamina/internal/adapters/http"
	"github.com/laminamaps/lamina/internal/adapters/imagestore"
	"github.com/laminamaps/lamina/internal/adapters/kml"
	"github.com/laminamaps/lamina/internal/adapters/metrics"
	"github.com/laminamaps/lamina/internal/adapters/storage"
	tlsAdapter "github.com/laminamaps/lamina/internal/adapters/tls"
	"github.com/laminamaps/lamina/internal/adapters/watcher"
	"github.com/laminamaps/lamina/internal/application"
	"github.com/laminamaps/lamina/internal/config"
	"github.com/laminamaps/lamina/internal/ports/output"
)

// App holds all application components.
type App struct {
	Config         *config.Config
	Logger         *slog.Logger
	Images         *imagestore.MemoryStore
	OverlayService *application.OverlayService
	HealthService  *application.HealthService
	SeedService    *application.SeedService
	SeedStorage    output.ObjectStorage
	HTTPServer     *httpAdapter.Server
	TLSServer      *tlsAdapter.Server
	Watcher        *watcher.Watcher
	Metrics        *metrics.Collector
}

// New creates and initializes a new application.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize metrics
	var metricsCollector output.MetricsCollector
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.NewCollector("lamina")
		metricsCollector = app.Metrics
	} else {
		metricsCollector = &output.NoOpMetrics{}
	}

	// Initialize the ingestion pipeline
	app.Images = imagestore.NewMemoryStore()
	app.OverlayService = application.NewOverlayService(
		kml.NewExtractor(),
		[]output.GeometryDecoder{kml.NewDecoder(), gpx.NewDecoder()},
		exif.NewReader(),
		app.Images,
		metricsCollector,
		logger,
	)
	app.HealthService = application.NewHealthService(app.OverlayService)

	// Initialize seed loading if configured
	if cfg.Seed.Enabled() {
		store, err := initSeedStorage(ctx, cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("initializing seed storage: %w", err)
		}
		app.SeedStorage = store
		app.SeedService = application.NewSeedService(store, app.OverlayService, metricsCollector, logger)
	}

	// Initialize HTTP server
	app.HTTPServer = httpAdapter.NewServer(
		cfg.Server,
		cfg.Ingest,
		cfg.Frontend,
		app.OverlayService,
		app.OverlayService,
		app.Images,
		app.HealthService,
		logger,
	)

	// Mount metrics endpoint and HTTP instrumentation
	if app.Metrics != nil {
		router := app.HTTPServer.Router()
		router.Use(app.Metrics.Middleware)
		router.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	// Initialize TLS server if enabled
	if cfg.TLS.Enabled {
		tlsServer, err := tlsAdapter.NewServer(
			tlsAdapter.Config{
				Enabled:  cfg.TLS.Enabled,
				Domains:  cfg.TLS.Domains,
				Email:    cfg.TLS.Email,
				CacheDir: cfg.TLS.CacheDir,
				Staging:  cfg.TLS.Staging,
				DNS: tlsAdapter.DNSConfig{
					SubscriptionID:    cfg.TLS.DNS.SubscriptionID,
					ResourceGroupName: cfg.TLS.DNS.ResourceGroupName,
					ClientID:          cfg.TLS.DNS.ClientID,
				},
			},
			app.HTTPServer.Router(),
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("initializing TLS: %w", err)
		}
		app.TLSServer = tlsServer
	}

	// Initialize file watcher for seed hot-ingest
	if cfg.Seed.Type == "local" && cfg.Seed.Watch {
		w, err := watcher.New(
			watcher.Config{
				Paths: []string{cfg.Seed.LocalPath},
			},
			app.handleFileEvent,
			logger,
		)
		if err != nil {
			logger.Warn("failed to initialize file watcher", "error", err)
		} else {
			app.Watcher = w
		}
	}

	return app, nil
}

// Start starts all application components.
func (a *App) Start(ctx context.Context) error {
	// Load seed files from storage
	if a.SeedService != nil {
		if _, err := a.SeedService.LoadAll(ctx); err != nil {
			a.Logger.Warn("failed to load seed files", "error", err)
		}
	}

	// Start file watcher
	if a.Watcher != nil {
		if err := a.Watcher.Start(ctx); err != nil {
			a.Logger.Warn("failed to start file watcher", "error", err)
		}
	}

	// Start server
	if a.Config.TLS.Enabled && a.TLSServer != nil {
		return a.TLSServer.ListenAndServe(a.Config.Server.Address())
	}
	return a.HTTPServer.Start()
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("shutting down application")

	// Stop watcher
	if a.Watcher != nil {
		_ = a.Watcher.Stop()
	}

	// Shutdown HTTP server
	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.Logger.Error("HTTP server shutdown error", "error", err)
	}

	// Release stored photo images
	if err := a.Images.ReleaseAll(ctx); err != nil {
		a.Logger.Error("failed to release images", "error", err)
	}

	return nil
}

// handleFileEvent handles file system events for seed hot-ingest. The
// collections are append-only, so deletions in the seed directory are
// ignored.
func (a *App) handleFileEvent(ctx context.Context, event watcher.Event) error {
	switch event.Operation {
	case watcher.OpCreate, watcher.OpModify:
		return a.SeedService.IngestPath(ctx, event.Path)

	case watcher.OpDelete:
		a.Logger.Debug("ignoring seed file deletion", "path", event.Path)
		return nil
	}

	return nil
}

// initSeedStorage initializes the appropriate seed storage adapter.
func initSeedStorage(ctx context.Context, cfg config.SeedConfig) (output.ObjectStorage, error) {
	switch output.StorageType(cfg.Type) {
	case output.StorageTypeLocal:
		return storage.NewLocalStorage(cfg.LocalPath), nil

	case output.StorageTypeS3:
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})

	case output.StorageTypeAzure:
		return storage.NewAzureStorage(storage.AzureConfig{
			Container:        cfg.Azure.Container,
			AccountName:      cfg.Azure.AccountName,
			AccountKey:       cfg.Azure.AccountKey,
			ConnectionString: cfg.Azure.ConnectionString,
			Prefix:           cfg.Azure.Prefix,
		})

	case output.StorageTypeHTTP:
		return storage.NewHTTPStorage(storage.HTTPConfig{
			BaseURL:   cfg.HTTP.BaseURL,
			IndexFile: cfg.HTTP.IndexFile,
			Timeout:   cfg.HTTP.Timeout,
			Username:  cfg.HTTP.Username,
			Password:  cfg.HTTP.Password,
		}), nil

	default:
		return nil, fmt.Errorf("unknown seed type: %s", cfg.Type)
	}
}
