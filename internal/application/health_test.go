package application

import (
	"context"
	"testing"

	"github.com/laminamaps/lamina/internal/ports/input"
)

func TestHealthService(t *testing.T) {
	svc := newTestService(newMockImageStore())
	health := NewHealthService(svc)
	ctx := context.Background()

	if !health.IsHealthy(ctx) {
		t.Error("IsHealthy() = false, want true")
	}
	if !health.IsReady(ctx) {
		t.Error("IsReady() = false, want true")
	}
}

func TestHealthDetailsReflectCounts(t *testing.T) {
	svc := newTestService(newMockImageStore())
	health := NewHealthService(svc)
	ctx := context.Background()

	_, _ = svc.AddTracks(ctx, []input.UploadFile{{Name: "walk.kml", Data: []byte("line")}})
	_, _ = svc.AddPhotos(ctx, []input.UploadFile{{Name: "beach.jpg", Data: []byte("geotagged")}})

	details := health.GetHealthDetails(ctx)
	if !details.Healthy || !details.Ready {
		t.Error("details should report healthy and ready")
	}
	if details.Boundaries != 0 || details.Tracks != 1 || details.Photos != 1 {
		t.Errorf("details counts = %d/%d/%d, want 0/1/1",
			details.Boundaries, details.Tracks, details.Photos)
	}
	if details.Components["pipeline"] != "ok" {
		t.Errorf("pipeline component = %q, want ok", details.Components["pipeline"])
	}
}
