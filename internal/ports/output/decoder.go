// Package output defines the secondary/driven ports of the application.
package output

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// ArchiveExtractor defines the secondary port for pulling markup out of a
// compressed container.
type ArchiveExtractor interface {
	// ExtractMarkup returns the payload of the first markup entry in the
	// archive. ok is false when the archive is readable but holds no markup
	// entry; this is expected absence, not an error.
	ExtractMarkup(data []byte) (payload []byte, ok bool, err error)
}

// GeometryDecoder defines the secondary port for converting a markup file
// into a generic geometry collection.
type GeometryDecoder interface {
	// Supports reports whether this decoder handles the given file name.
	Supports(name string) bool

	// Decode parses the file into a feature collection.
	Decode(name string, data []byte) (*geojson.FeatureCollection, error)
}

// Geotag is the location metadata extracted from an image.
type Geotag struct {
	Lon     float64   // Longitude, degrees east
	Lat     float64   // Latitude, degrees north
	TakenAt time.Time // Capture time, zero if absent
}

// GeotagReader defines the secondary port for reading embedded GPS metadata
// from an image file.
type GeotagReader interface {
	// ReadGeotag extracts the geotag. Returns domain.ErrNoGeotag when the
	// image carries no usable coordinates.
	ReadGeotag(data []byte) (Geotag, error)
}
