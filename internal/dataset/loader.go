package dataset

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/models"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/spatial"
)

// Dataset is one loaded trajectory file
type Dataset struct {
	Path     string
	Records  []models.GeometryRecord
	Skipped  int
	MinSpeed float64
	MaxSpeed float64
	LoadedAt time.Time
}

// Property names used by the study's trajectory file
const (
	PropSpeed           = "speed"
	PropDate            = "date_d"
	PropDriverID        = "id_driver"
	PropTripID          = "id_trip"
	PropTrajectoryID    = "id_traj"
	PropNeighborhood    = "bairro"
	PropCity            = "cidade"
	PropSex             = "sexo"
	PropAge             = "idade"
	PropCategory        = "categoria"
	PropLicenseCategory = "categoria_cnh"
	PropHierarchy       = "hierarquia"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
}

// LoadFile reads a GeoJSON FeatureCollection of trajectories from disk
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	ds.Path = path

	log.Printf("[Dataset] Loaded %d records from %s (%d skipped)", len(ds.Records), path, ds.Skipped)
	return ds, nil
}

// Parse decodes a GeoJSON FeatureCollection into geometry records.
// Features without a numeric speed or with coordinates outside WGS84 are
// skipped and counted.
func Parse(data []byte) (*Dataset, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{LoadedAt: time.Now()}
	first := true
	for i, f := range fc.Features {
		record, err := recordFromFeature(f)
		if err != nil {
			log.Printf("[Dataset] Skipping feature %d: %v", i, err)
			ds.Skipped++
			continue
		}

		if first || record.Speed < ds.MinSpeed {
			ds.MinSpeed = record.Speed
		}
		if first || record.Speed > ds.MaxSpeed {
			ds.MaxSpeed = record.Speed
		}
		first = false

		ds.Records = append(ds.Records, record)
	}

	return ds, nil
}

func recordFromFeature(f *geojson.Feature) (models.GeometryRecord, error) {
	speed, ok := toFloat(f.Properties[PropSpeed])
	if !ok || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return models.GeometryRecord{}, fmt.Errorf("missing or invalid %s", PropSpeed)
	}

	if f.Geometry != nil {
		for _, p := range geometryPoints(f.Geometry) {
			if !spatial.ValidLatLng(p) {
				return models.GeometryRecord{}, fmt.Errorf("coordinate %v is not WGS84", p)
			}
		}
	}

	record := models.GeometryRecord{
		Geometry:        f.Geometry,
		Speed:           speed,
		DriverID:        toString(f.Properties[PropDriverID]),
		TripID:          toString(f.Properties[PropTripID]),
		Neighborhood:    toString(f.Properties[PropNeighborhood]),
		City:            toString(f.Properties[PropCity]),
		Sex:             toString(f.Properties[PropSex]),
		Age:             toString(f.Properties[PropAge]),
		Category:        toString(f.Properties[PropCategory]),
		LicenseCategory: toString(f.Properties[PropLicenseCategory]),
		Hierarchy:       toString(f.Properties[PropHierarchy]),
	}

	if v, ok := toFloat(f.Properties[PropTrajectoryID]); ok {
		record.TrajectoryID = int64(v)
	}

	if raw := toString(f.Properties[PropDate]); raw != "" {
		ts, err := parseDate(raw)
		if err != nil {
			// only the timeline needs the date
			log.Printf("[Dataset] Trip %s: %v, keeping record undated", record.TripID, err)
		} else {
			record.Timestamp = &ts
		}
	}

	return record, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized %s value %q", PropDate, raw)
}

func geometryPoints(g orb.Geometry) []orb.Point {
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

func toFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
