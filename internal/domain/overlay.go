package domain

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// OverlayKind distinguishes the two geometry collections kept by the service.
type OverlayKind string

// Overlay kinds.
const (
	KindBoundary OverlayKind = "boundary"
	KindTrack    OverlayKind = "track"
)

// Valid returns true for a known overlay kind.
func (k OverlayKind) Valid() bool {
	return k == KindBoundary || k == KindTrack
}

// Overlay is one ingested geometry collection, produced from a single source
// file. Immutable once built; render order follows insertion order.
type Overlay struct {
	ID         string                     // Unique identifier within the session
	Name       string                     // Original file name
	Kind       OverlayKind                // boundary or track
	Collection *geojson.FeatureCollection // Parsed geometry
	Bound      orb.Bound                  // Union bound of all features
	LoadedAt   time.Time                  // Ingestion timestamp
}

// NewOverlay builds an overlay from a parsed feature collection, computing
// the union bound of all contained geometries.
func NewOverlay(id, name string, kind OverlayKind, fc *geojson.FeatureCollection) (*Overlay, error) {
	if fc == nil || len(fc.Features) == 0 {
		return nil, ErrEmptyCollection
	}

	var acc Bounds
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		acc.ExtendBound(f.Geometry.Bound())
	}
	if acc.IsEmpty() {
		return nil, ErrEmptyCollection
	}

	return &Overlay{
		ID:         id,
		Name:       name,
		Kind:       kind,
		Collection: fc,
		Bound:      acc.Bound(),
		LoadedAt:   time.Now(),
	}, nil
}

// FeatureCount returns the number of features in the overlay.
func (o *Overlay) FeatureCount() int {
	return len(o.Collection.Features)
}
