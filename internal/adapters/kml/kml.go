// Package kml converts KML markup and KMZ containers into geometry
// collections.
package kml

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Decoder implements the GeometryDecoder port for KML documents.
type Decoder struct{}

// NewDecoder creates a KML decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Supports reports whether the file name looks like a KML document.
func (d *Decoder) Supports(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".kml")
}

// Decode parses a KML document into a feature collection. Placemarks with
// Point, LineString, Polygon and MultiGeometry elements are converted;
// anything else is ignored. Placemarks may be nested in Document and Folder
// containers at any depth.
func (d *Decoder) Decode(name string, data []byte) (*geojson.FeatureCollection, error) {
	var root kmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	fc := geojson.NewFeatureCollection()
	for _, pm := range root.placemarks() {
		for _, geom := range pm.geometries() {
			f := geojson.NewFeature(geom)
			if pm.Name != "" {
				f.Properties["name"] = pm.Name
			}
			if pm.Description != "" {
				f.Properties["description"] = pm.Description
			}
			fc.Append(f)
		}
	}
	return fc, nil
}

// kmlRoot matches the <kml> document root. Placemarks can sit directly under
// the root or inside a Document.
type kmlRoot struct {
	XMLName    xml.Name       `xml:"kml"`
	Document   *kmlContainer  `xml:"Document"`
	Folders    []kmlContainer `xml:"Folder"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

// kmlContainer matches Document and Folder elements, which nest arbitrarily.
type kmlContainer struct {
	Folders    []kmlContainer `xml:"Folder"`
	Documents  []kmlContainer `xml:"Document"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name          string            `xml:"name"`
	Description   string            `xml:"description"`
	Point         *kmlGeometry      `xml:"Point"`
	LineString    *kmlGeometry      `xml:"LineString"`
	Polygon       *kmlPolygon       `xml:"Polygon"`
	MultiGeometry *kmlMultiGeometry `xml:"MultiGeometry"`
}

type kmlGeometry struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlBoundary `xml:"outerBoundaryIs"`
}

type kmlBoundary struct {
	Ring kmlGeometry `xml:"LinearRing"`
}

type kmlMultiGeometry struct {
	Points      []kmlGeometry `xml:"Point"`
	LineStrings []kmlGeometry `xml:"LineString"`
	Polygons    []kmlPolygon  `xml:"Polygon"`
}

func (r *kmlRoot) placemarks() []kmlPlacemark {
	out := r.Placemarks
	if r.Document != nil {
		out = append(out, r.Document.placemarks()...)
	}
	for i := range r.Folders {
		out = append(out, r.Folders[i].placemarks()...)
	}
	return out
}

func (c *kmlContainer) placemarks() []kmlPlacemark {
	out := c.Placemarks
	for i := range c.Folders {
		out = append(out, c.Folders[i].placemarks()...)
	}
	for i := range c.Documents {
		out = append(out, c.Documents[i].placemarks()...)
	}
	return out
}

// geometries converts a placemark's geometry elements to orb geometries.
// Malformed coordinate tuples inside one element are skipped silently.
func (p *kmlPlacemark) geometries() []orb.Geometry {
	var out []orb.Geometry

	if p.Point != nil {
		if pts := parseCoordinates(p.Point.Coordinates); len(pts) > 0 {
			out = append(out, pts[0])
		}
	}
	if p.LineString != nil {
		if pts := parseCoordinates(p.LineString.Coordinates); len(pts) >= 2 {
			out = append(out, orb.LineString(pts))
		}
	}
	if p.Polygon != nil {
		if poly, ok := p.Polygon.geometry(); ok {
			out = append(out, poly)
		}
	}
	if p.MultiGeometry != nil {
		for _, pt := range p.MultiGeometry.Points {
			if pts := parseCoordinates(pt.Coordinates); len(pts) > 0 {
				out = append(out, pts[0])
			}
		}
		for _, ls := range p.MultiGeometry.LineStrings {
			if pts := parseCoordinates(ls.Coordinates); len(pts) >= 2 {
				out = append(out, orb.LineString(pts))
			}
		}
		for _, pg := range p.MultiGeometry.Polygons {
			if poly, ok := pg.geometry(); ok {
				out = append(out, poly)
			}
		}
	}
	return out
}

func (p *kmlPolygon) geometry() (orb.Polygon, bool) {
	ring := parseCoordinates(p.Outer.Ring.Coordinates)
	if len(ring) < 3 {
		return nil, false
	}
	// KML rings are supposed to be closed; tolerate ones that are not.
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{orb.Ring(ring)}, true
}

// parseCoordinates parses a KML coordinates string: whitespace-separated
// tuples of "lon,lat[,alt]". Altitude is ignored, malformed tuples are
// skipped.
func parseCoordinates(s string) []orb.Point {
	var points []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		points = append(points, orb.Point{lon, lat})
	}
	return points
}
