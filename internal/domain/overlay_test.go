package domain

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func polygonCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{
		{{120, 14}, {122, 14}, {122, 16}, {120, 16}, {120, 14}},
	}))
	return fc
}

func TestNewOverlay(t *testing.T) {
	ov, err := NewOverlay("b-1", "region.kmz", KindBoundary, polygonCollection())
	if err != nil {
		t.Fatalf("NewOverlay failed: %v", err)
	}

	if ov.Kind != KindBoundary {
		t.Errorf("Kind = %s, want %s", ov.Kind, KindBoundary)
	}
	if ov.FeatureCount() != 1 {
		t.Errorf("FeatureCount() = %d, want 1", ov.FeatureCount())
	}
	want := orb.Bound{Min: orb.Point{120, 14}, Max: orb.Point{122, 16}}
	if ov.Bound != want {
		t.Errorf("Bound = %v, want %v", ov.Bound, want)
	}
	if ov.LoadedAt.IsZero() {
		t.Error("LoadedAt should be set")
	}
}

func TestNewOverlayEmpty(t *testing.T) {
	_, err := NewOverlay("t-1", "empty.kml", KindTrack, geojson.NewFeatureCollection())
	if !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("err = %v, want ErrEmptyCollection", err)
	}

	_, err = NewOverlay("t-2", "nil.kml", KindTrack, nil)
	if !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("err = %v, want ErrEmptyCollection", err)
	}
}

func TestOverlayKindValid(t *testing.T) {
	if !KindBoundary.Valid() || !KindTrack.Valid() {
		t.Error("known kinds should be valid")
	}
	if OverlayKind("marker").Valid() {
		t.Error("unknown kind should not be valid")
	}
}

func TestBatchReport(t *testing.T) {
	r := NewBatchReport("photos")
	r.Add("a.jpg", OutcomeAccepted, "")
	r.Add("b.jpg", OutcomeSkipped, "no geotag")
	r.Add("c.jpg", OutcomeFailed, "truncated file")

	if r.Accepted != 1 || r.Skipped != 1 || r.Failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", r.Accepted, r.Skipped, r.Failed)
	}
	if r.Total() != 3 {
		t.Errorf("Total() = %d, want 3", r.Total())
	}
	if r.Files[1].Detail != "no geotag" {
		t.Errorf("Files[1].Detail = %q, want %q", r.Files[1].Detail, "no geotag")
	}
}
