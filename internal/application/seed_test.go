package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/laminamaps/lamina/internal/domain"
	"github.com/laminamaps/lamina/internal/ports/output"
)

func newTestSeedService(storage output.ObjectStorage, svc *OverlayService) *SeedService {
	return NewSeedService(storage, svc, &output.NoOpMetrics{}, testLogger())
}

func TestSeedLoadAll(t *testing.T) {
	svc := newTestService(newMockImageStore())
	storage := &mockStorage{objects: map[string]string{
		"seeds/region.kmz":    "archive-square",
		"seeds/walk.kml":      "line",
		"seeds/beach.jpg":     "geotagged",
		"seeds/readme.md":     "ignore me",
		"seeds/untagged.jpeg": "plain",
	}}
	seed := newTestSeedService(storage, svc)

	stats, err := seed.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if stats.Accepted != 3 {
		t.Errorf("Accepted = %d, want 3", stats.Accepted)
	}
	if stats.Skipped != 2 { // readme.md unsupported, untagged.jpeg no geotag
		t.Errorf("Skipped = %d, want 2", stats.Skipped)
	}

	b, tr, p := svc.Counts()
	if b != 1 || tr != 1 || p != 1 {
		t.Errorf("counts = %d/%d/%d boundaries/tracks/photos, want 1/1/1", b, tr, p)
	}
}

func TestSeedLoadAllListError(t *testing.T) {
	svc := newTestService(newMockImageStore())
	storage := &mockStorage{listErr: errors.New("connection refused")}
	seed := newTestSeedService(storage, svc)

	_, err := seed.LoadAll(context.Background())
	if err == nil {
		t.Fatal("expected error when listing fails")
	}
	var storageErr *domain.StorageError
	if !errors.As(err, &storageErr) {
		t.Errorf("error = %T, want *domain.StorageError", err)
	}
}

func TestSeedIngestPath(t *testing.T) {
	svc := newTestService(newMockImageStore())
	seed := newTestSeedService(&mockStorage{}, svc)

	path := filepath.Join(t.TempDir(), "walk.kml")
	if err := os.WriteFile(path, []byte("line"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := seed.IngestPath(context.Background(), path); err != nil {
		t.Fatalf("IngestPath failed: %v", err)
	}
	if _, tr, _ := svc.Counts(); tr != 1 {
		t.Errorf("tracks = %d, want 1", tr)
	}
}

func TestSeedIngestPathMissingFile(t *testing.T) {
	svc := newTestService(newMockImageStore())
	seed := newTestSeedService(&mockStorage{}, svc)

	err := seed.IngestPath(context.Background(), filepath.Join(t.TempDir(), "nope.kml"))
	if err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestSeedIngestPathUnsupported(t *testing.T) {
	svc := newTestService(newMockImageStore())
	seed := newTestSeedService(&mockStorage{}, svc)

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := seed.IngestPath(context.Background(), path)
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestIsSeedable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"region.kmz", true},
		{"walk.KML", true},
		{"ride.gpx", true},
		{"beach.jpg", true},
		{"scan.TIFF", true},
		{"notes.txt", false},
		{"styles.css", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSeedable(tt.name); got != tt.want {
			t.Errorf("IsSeedable(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
