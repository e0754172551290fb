// Package exif reads embedded GPS metadata from image files.
package exif

import (
	"bytes"
	"fmt"

	goexif "github.com/rwcarlsen/goexif/exif"

	"github.com/laminamaps/lamina/internal/domain"
	"github.com/laminamaps/lamina/internal/ports/output"
)

// Reader implements the GeotagReader port using EXIF metadata.
type Reader struct{}

// NewReader creates an EXIF geotag reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadGeotag extracts GPS coordinates from the image's EXIF segment.
// Missing or undecodable metadata yields domain.ErrNoGeotag: most photos are
// simply not geotagged, and callers treat this as an expected skip rather
// than a failure. Out-of-range coordinates are rejected the same way.
func (r *Reader) ReadGeotag(data []byte) (output.Geotag, error) {
	x, err := goexif.Decode(bytes.NewReader(data))
	if err != nil {
		return output.Geotag{}, fmt.Errorf("%w: %v", domain.ErrNoGeotag, err)
	}

	lat, lon, err := x.LatLong()
	if err != nil {
		return output.Geotag{}, fmt.Errorf("%w: %v", domain.ErrNoGeotag, err)
	}

	coord := domain.Coordinate{Lon: lon, Lat: lat}
	if err := coord.Validate(); err != nil {
		return output.Geotag{}, fmt.Errorf("%w: %v", domain.ErrNoGeotag, err)
	}

	tag := output.Geotag{Lon: lon, Lat: lat}

	// Capture time is nice to have; its absence never fails the extraction.
	if taken, err := x.DateTime(); err == nil {
		tag.TakenAt = taken
	}

	return tag, nil
}
