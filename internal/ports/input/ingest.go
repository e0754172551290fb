// Package input defines the primary/driving ports of the application.
package input

import (
	"context"

	"github.com/laminamaps/lamina/internal/domain"
)

// UploadFile is one file of an upload batch, already read into memory.
type UploadFile struct {
	Name string // Original file name
	Data []byte // Raw file bytes
}

// OverlayIngestor defines the primary port for the ingestion pipeline.
// Batches are additive and serialized; per-file failures never abort a batch.
type OverlayIngestor interface {
	// AddBoundaries ingests a batch of compressed boundary containers (KMZ).
	AddBoundaries(ctx context.Context, files []UploadFile) (*domain.BatchReport, error)

	// AddTracks ingests a batch of track markup files (KML or GPX).
	AddTracks(ctx context.Context, files []UploadFile) (*domain.BatchReport, error)

	// AddPhotos ingests a batch of images, keeping those with a geotag.
	AddPhotos(ctx context.Context, files []UploadFile) (*domain.BatchReport, error)

	// Clear empties all collections, releases stored images and resets the
	// viewport to the default center.
	Clear(ctx context.Context) error
}

// Snapshot is a copy-on-write view of the ingested state. Readers never see
// a batch mid-flight.
type Snapshot struct {
	Boundaries []*domain.Overlay
	Tracks     []*domain.Overlay
	Photos     []domain.PhotoMarker
	Viewport   domain.Viewport
}

// StateProvider defines the primary port for reading ingested state.
type StateProvider interface {
	// Snapshot returns the current state as an immutable copy.
	Snapshot(ctx context.Context) Snapshot
}

// HealthChecker defines the primary port for health checks.
type HealthChecker interface {
	// IsHealthy returns true if the service is healthy.
	IsHealthy(ctx context.Context) bool

	// IsReady returns true if the service is ready to accept requests.
	IsReady(ctx context.Context) bool

	// GetHealthDetails returns detailed health information.
	GetHealthDetails(ctx context.Context) HealthDetails
}

// HealthDetails contains detailed health information.
type HealthDetails struct {
	Healthy    bool              // Overall health status
	Ready      bool              // Ready to accept requests
	Boundaries int               // Loaded boundary overlays
	Tracks     int               // Loaded track overlays
	Photos     int               // Loaded photo markers
	Components map[string]string // Component statuses
}
