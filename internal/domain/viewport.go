package domain

// DefaultCenter is the viewport fallback when no data is loaded.
// Centered over Metro Manila, matching the historical default of the
// original map widget.
var DefaultCenter = Coordinate{Lon: 120.9842, Lat: 14.5995}

// Viewport holds the derived map center. Bounds are never stored; they are
// recomputed from the loaded data whenever any collection changes.
type Viewport struct {
	Center Coordinate
}

// DefaultViewport returns the viewport in its empty-state position.
func DefaultViewport() Viewport {
	return Viewport{Center: DefaultCenter}
}

// IsDefault returns true if the viewport sits at the fallback center.
func (v Viewport) IsDefault() bool {
	return v.Center == DefaultCenter
}
