package spatial

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// LineLength returns the length of a WGS84 polyline in meters
func LineLength(ls orb.LineString) float64 {
	var total float64
	for i := 1; i < len(ls); i++ {
		total += HaversineDistance(ls[i-1].Lat(), ls[i-1].Lon(), ls[i].Lat(), ls[i].Lon())
	}
	return total
}

// GeometryLength returns the length in meters of a line geometry.
// Non-line geometries have no length.
func GeometryLength(g orb.Geometry) float64 {
	switch g := g.(type) {
	case orb.LineString:
		return LineLength(g)
	case orb.MultiLineString:
		var total float64
		for _, ls := range g {
			total += LineLength(ls)
		}
		return total
	default:
		return 0
	}
}

// ValidLatLng reports whether a point lies within WGS84 bounds
func ValidLatLng(p orb.Point) bool {
	return s2.LatLngFromDegrees(p.Lat(), p.Lon()).IsValid()
}

// Center returns the centroid of the union of the geometries on the sphere,
// as (lat, lon). ok is false when there are no points.
func Center(geoms []orb.Geometry) (lat, lon float64, ok bool) {
	var sum s2.Point
	n := 0
	for _, g := range geoms {
		if g == nil {
			continue
		}
		for _, p := range points(g) {
			sum = s2.Point{Vector: sum.Add(s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon())).Vector)}
			n++
		}
	}
	if n == 0 || sum.Norm() == 0 {
		return 0, 0, false
	}
	ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	return ll.Lat.Degrees(), ll.Lng.Degrees(), true
}

func points(g orb.Geometry) []orb.Point {
	switch g := g.(type) {
	case orb.Point:
		return []orb.Point{g}
	case orb.LineString:
		return g
	case orb.MultiLineString:
		var out []orb.Point
		for _, ls := range g {
			out = append(out, ls...)
		}
		return out
	default:
		return nil
	}
}

// EarthRadiusMeters is Earth's mean radius
const EarthRadiusMeters = 6371000.0
