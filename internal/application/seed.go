package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/laminamaps/lamina/internal/domain"
	"github.com/laminamaps/lamina/internal/ports/input"
	"github.com/laminamaps/lamina/internal/ports/output"
)

// SeedStats contains statistics from a seed load.
type SeedStats struct {
	Files    int
	Accepted int
	Skipped  int
	Failed   int
}

// SeedService preloads overlay and photo files from a seed object storage at
// startup, and feeds files dropped into the local seed directory to the
// ingestion pipeline.
type SeedService struct {
	storage  output.ObjectStorage
	ingestor input.OverlayIngestor
	metrics  output.MetricsCollector
	logger   *slog.Logger
}

// NewSeedService creates a seed loader.
func NewSeedService(
	storage output.ObjectStorage,
	ingestor input.OverlayIngestor,
	metrics output.MetricsCollector,
	logger *slog.Logger,
) *SeedService {
	return &SeedService{
		storage:  storage,
		ingestor: ingestor,
		metrics:  metrics,
		logger:   logger,
	}
}

// LoadAll ingests every seedable file found in storage. Files are processed
// one at a time; a failing file never stops the load.
func (s *SeedService) LoadAll(ctx context.Context) (SeedStats, error) {
	s.logger.Info("loading seed files from storage")

	objects, err := s.storage.List(ctx)
	if err != nil {
		return SeedStats{}, &domain.StorageError{Operation: "list", Err: err}
	}

	stats := SeedStats{}
	for _, obj := range objects {
		data, err := s.readObject(ctx, obj.Key)
		if err != nil {
			s.logger.Error("failed to read seed object", "key", obj.Key, "error", err)
			stats.Failed++
			continue
		}

		report, err := s.ingest(ctx, filepath.Base(obj.Key), data)
		if err != nil {
			s.logger.Debug("seed object not ingestable", "key", obj.Key, "error", err)
			stats.Skipped++
			continue
		}

		stats.Files++
		stats.Accepted += report.Accepted
		stats.Skipped += report.Skipped
		stats.Failed += report.Failed
	}

	s.logger.Info("seed load completed",
		"files", stats.Files,
		"accepted", stats.Accepted,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return stats, nil
}

// IngestPath ingests a single file from the local filesystem. Used by the
// seed directory watcher for hot-loading.
func (s *SeedService) IngestPath(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &domain.StorageError{Operation: "read", Key: path, Err: err}
	}

	report, err := s.ingest(ctx, filepath.Base(path), data)
	if err != nil {
		return err
	}

	s.logger.Info("seed file ingested",
		"path", path,
		"accepted", report.Accepted,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return nil
}

// readObject pulls an object's bytes from storage, recording the operation.
func (s *SeedService) readObject(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()

	r, err := s.storage.GetReader(ctx, key)
	if err != nil {
		s.metrics.IncStorageOperations("download", false)
		return nil, err
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	s.metrics.IncStorageOperations("download", err == nil)
	s.metrics.ObserveStorageDuration("download", time.Since(start))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ingest dispatches a file to the pipeline batch matching its extension.
func (s *SeedService) ingest(ctx context.Context, name string, data []byte) (*domain.BatchReport, error) {
	file := []input.UploadFile{{Name: name, Data: data}}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".kmz":
		return s.ingestor.AddBoundaries(ctx, file)
	case ".kml", ".gpx":
		return s.ingestor.AddTracks(ctx, file)
	case ".jpg", ".jpeg", ".png", ".tif", ".tiff", ".heic":
		return s.ingestor.AddPhotos(ctx, file)
	default:
		return nil, fmt.Errorf("%s: %w", name, domain.ErrUnsupportedFormat)
	}
}

// IsSeedable reports whether a file name matches a known seed format.
func IsSeedable(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".kmz", ".kml", ".gpx", ".jpg", ".jpeg", ".png", ".tif", ".tiff", ".heic":
		return true
	default:
		return false
	}
}
