// Package gpx converts GPX track files into geometry collections.
package gpx

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tkrajina/gpxgo/gpx"
)

// Decoder implements the GeometryDecoder port for GPX documents.
type Decoder struct{}

// NewDecoder creates a GPX decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Supports reports whether the file name looks like a GPX document.
func (d *Decoder) Supports(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".gpx")
}

// Decode parses a GPX document. Track segments and routes become
// LineStrings, waypoints become Points. Segments with fewer than two points
// are dropped.
func (d *Decoder) Decode(name string, data []byte) (*geojson.FeatureCollection, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	fc := geojson.NewFeatureCollection()

	for _, track := range doc.Tracks {
		for _, seg := range track.Segments {
			ls := make(orb.LineString, 0, len(seg.Points))
			for _, p := range seg.Points {
				ls = append(ls, orb.Point{p.Longitude, p.Latitude})
			}
			if len(ls) < 2 {
				continue
			}
			f := geojson.NewFeature(ls)
			if track.Name != "" {
				f.Properties["name"] = track.Name
			}
			fc.Append(f)
		}
	}

	for _, route := range doc.Routes {
		ls := make(orb.LineString, 0, len(route.Points))
		for _, p := range route.Points {
			ls = append(ls, orb.Point{p.Longitude, p.Latitude})
		}
		if len(ls) < 2 {
			continue
		}
		f := geojson.NewFeature(ls)
		if route.Name != "" {
			f.Properties["name"] = route.Name
		}
		fc.Append(f)
	}

	for _, wp := range doc.Waypoints {
		f := geojson.NewFeature(orb.Point{wp.Longitude, wp.Latitude})
		if wp.Name != "" {
			f.Properties["name"] = wp.Name
		}
		fc.Append(f)
	}

	return fc, nil
}
