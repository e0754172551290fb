// Package application contains the application services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/laminamaps/lamina/internal/domain"
	"github.com/laminamaps/lamina/internal/ports/input"
	"github.com/laminamaps/lamina/internal/ports/output"
)

// Batch kind labels, used in reports, logs and metrics.
const (
	BatchBoundaries = "boundaries"
	BatchTracks     = "tracks"
	BatchPhotos     = "photos"
)

// OverlayService owns the three ingested collections and the derived
// viewport. It is the only writer of that state. Upload batches are
// serialized: a batch holds the write lock from its first file to its last,
// so readers never observe a batch mid-flight and insertion order is
// deterministic.
type OverlayService struct {
	mu         sync.RWMutex
	boundaries []*domain.Overlay
	tracks     []*domain.Overlay
	photos     []domain.PhotoMarker
	viewport   domain.Viewport
	seq        uint64

	extractor output.ArchiveExtractor
	decoders  []output.GeometryDecoder
	geotags   output.GeotagReader
	images    output.ImageStore
	metrics   output.MetricsCollector
	logger    *slog.Logger
}

// NewOverlayService creates the ingestion service.
func NewOverlayService(
	extractor output.ArchiveExtractor,
	decoders []output.GeometryDecoder,
	geotags output.GeotagReader,
	images output.ImageStore,
	metrics output.MetricsCollector,
	logger *slog.Logger,
) *OverlayService {
	return &OverlayService{
		viewport:  domain.DefaultViewport(),
		extractor: extractor,
		decoders:  decoders,
		geotags:   geotags,
		images:    images,
		metrics:   metrics,
		logger:    logger,
	}
}

// AddBoundaries ingests a batch of compressed boundary containers. Each
// archive contributes at most one overlay: its first markup entry, decoded
// to geometry. Archives without a markup entry are skipped, corrupt ones are
// logged and skipped; the batch always runs to completion.
func (s *OverlayService) AddBoundaries(_ context.Context, files []input.UploadFile) (*domain.BatchReport, error) {
	start := time.Now()
	report := domain.NewBatchReport(BatchBoundaries)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range files {
		payload, ok, err := s.extractor.ExtractMarkup(f.Data)
		if err != nil {
			s.fileFailed(report, BatchBoundaries, f.Name, "extract", err)
			continue
		}
		if !ok {
			s.fileSkipped(report, BatchBoundaries, f.Name, "no markup entry in archive")
			continue
		}

		// Decode the extracted payload under the markup extension so the
		// decoder selection stays uniform with direct track uploads.
		markupName := strings.TrimSuffix(f.Name, filepath.Ext(f.Name)) + ".kml"
		s.ingestMarkup(report, domain.KindBoundary, f.Name, markupName, payload)
	}

	s.finishBatchLocked(report, start)
	return report, nil
}

// AddTracks ingests a batch of track markup files, read as text directly.
func (s *OverlayService) AddTracks(_ context.Context, files []input.UploadFile) (*domain.BatchReport, error) {
	start := time.Now()
	report := domain.NewBatchReport(BatchTracks)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range files {
		s.ingestMarkup(report, domain.KindTrack, f.Name, f.Name, f.Data)
	}

	s.finishBatchLocked(report, start)
	return report, nil
}

// AddPhotos ingests a batch of images. Photos without a geotag are expected
// and skipped silently; if the whole batch yields no markers the report
// carries the single user-facing "no geotagged photos" notice.
func (s *OverlayService) AddPhotos(ctx context.Context, files []input.UploadFile) (*domain.BatchReport, error) {
	start := time.Now()
	report := domain.NewBatchReport(BatchPhotos)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range files {
		tag, err := s.geotags.ReadGeotag(f.Data)
		if err != nil {
			if errors.Is(err, domain.ErrNoGeotag) {
				s.fileSkipped(report, BatchPhotos, f.Name, "no geotag")
			} else {
				s.fileFailed(report, BatchPhotos, f.Name, "geotag", err)
			}
			continue
		}

		ref, err := s.images.Put(ctx, f.Name, http.DetectContentType(f.Data), f.Data)
		if err != nil {
			s.fileFailed(report, BatchPhotos, f.Name, "store", err)
			continue
		}

		s.seq++
		s.photos = append(s.photos, domain.PhotoMarker{
			ID:          fmt.Sprintf("photo-%d", s.seq),
			Name:        f.Name,
			Coordinate:  domain.Coordinate{Lon: tag.Lon, Lat: tag.Lat},
			ImageRef:    ref,
			ContentType: http.DetectContentType(f.Data),
			TakenAt:     tag.TakenAt,
		})
		s.fileAccepted(report, BatchPhotos, f.Name)
	}

	if report.Accepted == 0 && len(files) > 0 {
		report.NoGeotaggedPhotos = true
		s.logger.Info("no geotagged photos found in batch", "files", len(files))
	}

	s.finishBatchLocked(report, start)
	return report, nil
}

// Clear resets all three collections, releases every stored image handle and
// puts the viewport back at the default center.
func (s *OverlayService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.images.ReleaseAll(ctx); err != nil {
		return fmt.Errorf("releasing images: %w", err)
	}

	s.boundaries = nil
	s.tracks = nil
	s.photos = nil
	s.viewport = domain.DefaultViewport()

	s.updateGaugesLocked()
	s.logger.Info("cleared all overlays and photos")
	return nil
}

// Snapshot returns a copy-on-write view of the current state.
func (s *OverlayService) Snapshot(_ context.Context) input.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := input.Snapshot{
		Boundaries: make([]*domain.Overlay, len(s.boundaries)),
		Tracks:     make([]*domain.Overlay, len(s.tracks)),
		Photos:     make([]domain.PhotoMarker, len(s.photos)),
		Viewport:   s.viewport,
	}
	copy(snap.Boundaries, s.boundaries)
	copy(snap.Tracks, s.tracks)
	copy(snap.Photos, s.photos)
	return snap
}

// Counts returns the sizes of the three collections.
func (s *OverlayService) Counts() (boundaries, tracks, photos int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.boundaries), len(s.tracks), len(s.photos)
}

// Viewport returns the current viewport.
func (s *OverlayService) Viewport() domain.Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// ingestMarkup decodes one markup payload and appends the resulting overlay
// to the collection for kind. Caller holds the write lock.
func (s *OverlayService) ingestMarkup(report *domain.BatchReport, kind domain.OverlayKind, fileName, markupName string, payload []byte) {
	batch := report.Kind

	dec := s.decoderFor(markupName)
	if dec == nil {
		s.fileFailed(report, batch, fileName, "decode", domain.ErrUnsupportedFormat)
		return
	}

	fc, err := dec.Decode(markupName, payload)
	if err != nil {
		s.fileFailed(report, batch, fileName, "decode", err)
		return
	}
	if len(fc.Features) == 0 {
		s.fileSkipped(report, batch, fileName, "no geometries in markup")
		return
	}

	s.seq++
	ov, err := domain.NewOverlay(fmt.Sprintf("%s-%d", kind, s.seq), fileName, kind, fc)
	if err != nil {
		s.fileFailed(report, batch, fileName, "decode", err)
		return
	}

	switch kind {
	case domain.KindBoundary:
		s.boundaries = append(s.boundaries, ov)
	case domain.KindTrack:
		s.tracks = append(s.tracks, ov)
	}
	s.fileAccepted(report, batch, fileName)
}

// decoderFor returns the first decoder that supports the file name.
func (s *OverlayService) decoderFor(name string) output.GeometryDecoder {
	for _, d := range s.decoders {
		if d.Supports(name) {
			return d
		}
	}
	return nil
}

// recomputeViewportLocked re-derives the viewport center from all loaded
// data: boundary bounds first, then track bounds, then marker coordinates.
// An empty accumulator leaves the viewport where it was.
func (s *OverlayService) recomputeViewportLocked() {
	var acc domain.Bounds
	for _, ov := range s.boundaries {
		acc.ExtendBound(ov.Bound)
	}
	for _, ov := range s.tracks {
		acc.ExtendBound(ov.Bound)
	}
	for _, m := range s.photos {
		acc.ExtendPoint(m.Coordinate.Point())
	}

	if !acc.IsEmpty() {
		s.viewport.Center = acc.Center()
	}
}

// finishBatchLocked runs the post-batch bookkeeping: viewport recomputation,
// gauges, duration metric and the summary log line.
func (s *OverlayService) finishBatchLocked(report *domain.BatchReport, start time.Time) {
	s.recomputeViewportLocked()
	s.updateGaugesLocked()
	s.metrics.ObserveBatchDuration(report.Kind, time.Since(start))

	s.logger.Info("batch processed",
		"kind", report.Kind,
		"accepted", report.Accepted,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"duration", time.Since(start),
	)
}

func (s *OverlayService) updateGaugesLocked() {
	s.metrics.SetOverlayCount(string(domain.KindBoundary), len(s.boundaries))
	s.metrics.SetOverlayCount(string(domain.KindTrack), len(s.tracks))
	s.metrics.SetPhotoCount(len(s.photos))
}

func (s *OverlayService) fileAccepted(report *domain.BatchReport, batch, name string) {
	report.Add(name, domain.OutcomeAccepted, "")
	s.metrics.IncFilesIngested(batch, string(domain.OutcomeAccepted))
	s.logger.Debug("file ingested", "batch", batch, "file", name)
}

func (s *OverlayService) fileSkipped(report *domain.BatchReport, batch, name, reason string) {
	report.Add(name, domain.OutcomeSkipped, reason)
	s.metrics.IncFilesIngested(batch, string(domain.OutcomeSkipped))
	s.logger.Warn("file skipped", "batch", batch, "file", name, "reason", reason)
}

func (s *OverlayService) fileFailed(report *domain.BatchReport, batch, name, stage string, err error) {
	ingestErr := &domain.IngestError{File: name, Stage: stage, Err: err}
	report.Add(name, domain.OutcomeFailed, ingestErr.Error())
	s.metrics.IncFilesIngested(batch, string(domain.OutcomeFailed))
	s.logger.Error("file failed", "batch", batch, "file", name, "stage", stage, "error", err)
}
