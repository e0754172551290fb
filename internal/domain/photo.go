package domain

import "time"

// PhotoMarker is a geotagged photo placed on the map. Created only when the
// image carries both a valid latitude and longitude; never mutated. The
// ImageRef handle is released when the session is cleared.
type PhotoMarker struct {
	ID          string     // Unique identifier within the session
	Name        string     // Original file name
	Coordinate  Coordinate // Geotag position
	ImageRef    string     // Handle into the image store
	ContentType string     // MIME type of the stored image
	TakenAt     time.Time  // EXIF capture time, zero if absent
}

// Validate checks the marker's coordinate.
func (m PhotoMarker) Validate() error {
	return m.Coordinate.Validate()
}
