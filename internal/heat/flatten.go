package heat

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/models"
)

// ErrUnsupportedGeometryKind is returned for geometries other than
// LineString and MultiLineString
var ErrUnsupportedGeometryKind = errors.New("unsupported geometry kind")

// Flatten emits one heat sample per coordinate of the record's line geometry.
// Parts of a MultiLineString are concatenated in stored order; shared
// endpoints are kept. Every sample carries the record speed as its weight.
func Flatten(record models.GeometryRecord) ([]models.HeatSample, error) {
	switch g := record.Geometry.(type) {
	case orb.LineString:
		return appendLine(make([]models.HeatSample, 0, len(g)), g, record.Speed), nil
	case orb.MultiLineString:
		n := 0
		for _, ls := range g {
			n += len(ls)
		}
		samples := make([]models.HeatSample, 0, n)
		for _, ls := range g {
			samples = appendLine(samples, ls, record.Speed)
		}
		return samples, nil
	case nil:
		return nil, fmt.Errorf("%w: missing geometry (trip %s)", ErrUnsupportedGeometryKind, record.TripID)
	default:
		return nil, fmt.Errorf("%w: %s (trip %s)", ErrUnsupportedGeometryKind, g.GeoJSONType(), record.TripID)
	}
}

func appendLine(dst []models.HeatSample, ls orb.LineString, weight float64) []models.HeatSample {
	for _, p := range ls {
		dst = append(dst, models.HeatSample{
			Latitude:  p.Lat(),
			Longitude: p.Lon(),
			Weight:    weight,
		})
	}
	return dst
}

// Samples flattens every record in order. The first unsupported geometry
// aborts the whole call.
func Samples(records []models.GeometryRecord) ([]models.HeatSample, error) {
	samples := make([]models.HeatSample, 0)
	for i, r := range records {
		s, err := Flatten(r)
		if err != nil {
			return nil, fmt.Errorf("failed to flatten record %d: %w", i, err)
		}
		samples = append(samples, s...)
	}
	return samples, nil
}

// CheckKind returns ErrUnsupportedGeometryKind unless g is a LineString or
// MultiLineString
func CheckKind(g orb.Geometry) error {
	switch g.(type) {
	case orb.LineString, orb.MultiLineString:
		return nil
	case nil:
		return fmt.Errorf("%w: missing geometry", ErrUnsupportedGeometryKind)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedGeometryKind, g.GeoJSONType())
	}
}
