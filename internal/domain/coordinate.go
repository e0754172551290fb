// Package domain contains the core business entities and value objects.
package domain

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Coordinate represents a geographic WGS84 coordinate.
type Coordinate struct {
	Lon float64 // Longitude, degrees east
	Lat float64 // Latitude, degrees north
}

// NewCoordinate creates a coordinate from longitude and latitude.
func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{Lon: lon, Lat: lat}
}

// Validate checks if the coordinate is within WGS84 bounds.
func (c Coordinate) Validate() error {
	if c.Lon < -180 || c.Lon > 180 {
		return &ValidationError{
			Field:      "longitude",
			Value:      c.Lon,
			Constraint: "[-180, 180]",
			Message:    "longitude must be between -180 and 180",
		}
	}
	if c.Lat < -90 || c.Lat > 90 {
		return &ValidationError{
			Field:      "latitude",
			Value:      c.Lat,
			Constraint: "[-90, 90]",
			Message:    "latitude must be between -90 and 90",
		}
	}
	return nil
}

// Point returns the coordinate as an orb.Point (lon, lat order).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// String returns a string representation of the coordinate.
func (c Coordinate) String() string {
	return fmt.Sprintf("POINT(%f %f)", c.Lon, c.Lat)
}

// Bounds accumulates a bounding box over geometry and marker coordinates.
// The zero value is an empty accumulator; orb.Bound alone cannot express
// emptiness because its zero value is a valid point at the origin.
type Bounds struct {
	bound orb.Bound
	set   bool
}

// ExtendBound grows the accumulator to include another bound.
func (b *Bounds) ExtendBound(o orb.Bound) {
	if !b.set {
		b.bound = o
		b.set = true
		return
	}
	b.bound = b.bound.Union(o)
}

// ExtendPoint grows the accumulator to include a single point.
func (b *Bounds) ExtendPoint(p orb.Point) {
	b.ExtendBound(orb.Bound{Min: p, Max: p})
}

// IsEmpty returns true if nothing has been accumulated.
func (b *Bounds) IsEmpty() bool {
	return !b.set
}

// Bound returns the accumulated bound. Only meaningful if not empty.
func (b *Bounds) Bound() orb.Bound {
	return b.bound
}

// Center returns the geometric center of the accumulated bound.
func (b *Bounds) Center() Coordinate {
	c := b.bound.Center()
	return Coordinate{Lon: c[0], Lat: c[1]}
}

// Contains reports whether a coordinate lies within the accumulated bound.
func (b *Bounds) Contains(c Coordinate) bool {
	return b.set && b.bound.Contains(c.Point())
}
