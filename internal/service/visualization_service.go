package service

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/classify"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/config"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/heat"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/models"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/spatial"
	"github.com/estudo-naturalistico/dashboard-backend-go/internal/stats"
)

// ErrUnknownScale is returned when a requested color scale is not configured
var ErrUnknownScale = errors.New("unknown color scale")

// Base map used by the folium-style pages
const (
	DefaultZoom  = 11
	HeatMaxZoom  = 15
	CartoTiles   = "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"
	CartoAttrib  = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`
	MercatorCRS  = "EPSG:3857"
	overviewLine = "black"
)

// HeatOptions are the heatmap layer settings of the speeds page
var HeatOptions = models.HeatmapOptions{Radius: 3, Blur: 1.5, MaxZoom: HeatMaxZoom}

// DefaultCenter is the fixed study area center (Curitiba) every page opens on
var DefaultCenter = [2]float64{-25.4809, -49.2718}

// VisualizationService builds the map and chart payloads of each page
type VisualizationService struct {
	trips    *TripService
	palettes *config.Palettes
}

// NewVisualizationService creates a new visualization service
func NewVisualizationService(trips *TripService, palettes *config.Palettes) *VisualizationService {
	return &VisualizationService{trips: trips, palettes: palettes}
}

// GetOverview builds the home page: every trajectory as a thin black line
// plus the trips-per-neighborhood chart
func (s *VisualizationService) GetOverview() (*models.OverviewPage, error) {
	ds, err := s.trips.Dataset()
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, r := range ds.Records {
		if r.Geometry == nil {
			continue
		}
		f := geojson.NewFeature(r.Geometry)
		f.Properties["tripId"] = r.TripID
		f.Properties["neighborhood"] = r.Neighborhood
		f.Properties["color"] = overviewLine
		f.Properties["weight"] = 0.5
		fc.Append(f)
	}

	counts, err := s.trips.GetNeighborhoodCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to count neighborhoods: %w", err)
	}

	return &models.OverviewPage{
		Title:       "Estudo Naturalístico de Direção Brasileiro",
		Description: "Extensão do estudo em Curitiba e Região Metropolitana e contagem de viagens por bairro.",
		Map:         s.mapView(ds.Records, 0),
		Layer:       fc,
		Counts:      counts,
	}, nil
}

// GetTripSpeed builds the individual trajectory page for tripID, or for the
// first trip when tripID is empty. Lines are reprojected to Web Mercator and
// colored on a linear ramp spanning the whole dataset's speed range.
func (s *VisualizationService) GetTripSpeed(tripID string) (*models.TripSpeedPage, error) {
	ds, err := s.trips.Dataset()
	if err != nil {
		return nil, err
	}

	ids, err := s.trips.GetTripIDs()
	if err != nil {
		return nil, err
	}
	if tripID == "" && len(ids) > 0 {
		tripID = ids[0]
	}

	rows, err := s.trips.GetTripRows(tripID)
	if err != nil {
		return nil, err
	}

	low := math.Max(ds.MinSpeed, 0)
	high := math.Max(ds.MaxSpeed, low)
	ramp, err := classify.NewLinearScale("linear", low, high, s.palettes.Linear, s.palettes.Unclassified)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	var speeds []models.TrajectorySpeed
	var values []float64
	selected := models.RecordFilter{TripID: tripID}
	for _, r := range selected.Apply(ds.Records) {
		if err := heat.CheckKind(r.Geometry); err != nil {
			return nil, fmt.Errorf("trip %s: %w", tripID, err)
		}
		f := geojson.NewFeature(project.Geometry(orb.Clone(r.Geometry), project.WGS84.ToMercator))
		f.Properties["trajectoryId"] = r.TrajectoryID
		f.Properties["speed"] = r.Speed
		f.Properties["color"] = ramp.Classify(r.Speed)
		f.Properties["lineWidth"] = 4
		fc.Append(f)

		speeds = append(speeds, models.TrajectorySpeed{TrajectoryID: r.TrajectoryID, Speed: r.Speed})
		values = append(values, r.Speed)
	}

	return &models.TripSpeedPage{
		Title:        "Trajetórias individuais",
		TripIDs:      ids,
		SelectedTrip: tripID,
		CRS:          MercatorCRS,
		Layer:        fc,
		ColorBar:     ramp.Buckets,
		SpeedMin:     low,
		SpeedMax:     high,
		Speeds:       speeds,
		Summary:      stats.Summarize(values),
		Table:        rows,
	}, nil
}

// GetHeatmap flattens the filtered records into heat samples
func (s *VisualizationService) GetHeatmap(filter models.RecordFilter) ([]models.HeatSample, error) {
	records, err := s.trips.Records(filter)
	if err != nil {
		return nil, err
	}
	return heat.Samples(records)
}

// GetClassified colors each filtered record's line by the named scale and
// returns the layer with its legend
func (s *VisualizationService) GetClassified(filter models.RecordFilter, scaleName string) (*geojson.FeatureCollection, models.Legend, error) {
	if scaleName == "" {
		scaleName = config.ScaleDiscrete
	}
	scale, ok := s.palettes.Scales[scaleName]
	if !ok {
		return nil, models.Legend{}, fmt.Errorf("%w: %q", ErrUnknownScale, scaleName)
	}

	records, err := s.trips.Records(filter)
	if err != nil {
		return nil, models.Legend{}, err
	}

	fc := geojson.NewFeatureCollection()
	for _, r := range records {
		if err := heat.CheckKind(r.Geometry); err != nil {
			return nil, models.Legend{}, fmt.Errorf("trip %s: %w", r.TripID, err)
		}
		f := geojson.NewFeature(r.Geometry)
		f.Properties["speed"] = r.Speed
		f.Properties["color"] = scale.Classify(r.Speed)
		f.Properties["tooltip"] = fmt.Sprintf("Velocidade: %v", r.Speed)
		f.Properties["weight"] = 2
		fc.Append(f)
	}

	// the legend always shows the stepped ramp, whatever scale colors the lines
	legendScale := s.palettes.Scales[config.ScaleRamp]
	legendCfg := s.palettes.Configs[config.ScaleRamp]
	return fc, legendScale.Legend(legendCfg.Caption, legendCfg.VMax), nil
}

// GetTimeline groups the filtered records by timestamp. Records without a
// date are left out of the animation.
func (s *VisualizationService) GetTimeline(filter models.RecordFilter) (iter.Seq2[models.TimeBucket, error], error) {
	dated, err := s.datedRecords(filter)
	if err != nil {
		return nil, err
	}
	return heat.GroupByTime(dated)
}

// GetTimelineBuckets returns every timeline bucket at once
func (s *VisualizationService) GetTimelineBuckets(filter models.RecordFilter) ([]models.TimeBucket, error) {
	dated, err := s.datedRecords(filter)
	if err != nil {
		return nil, err
	}
	return heat.CollectTimeline(dated)
}

func (s *VisualizationService) datedRecords(filter models.RecordFilter) ([]models.GeometryRecord, error) {
	records, err := s.trips.Records(filter)
	if err != nil {
		return nil, err
	}

	dated := make([]models.GeometryRecord, 0, len(records))
	for _, r := range records {
		if r.HasTimestamp() {
			dated = append(dated, r)
		}
	}
	if dropped := len(records) - len(dated); dropped > 0 {
		log.Printf("[VisualizationService] %d records without date left out of the timeline", dropped)
	}
	return dated, nil
}

// GetSpeedOverTime builds the speeds page: static heatmap, classified lines
// and, when requested, the animation frames
func (s *VisualizationService) GetSpeedOverTime(filter models.RecordFilter, scaleName string, withTimeline bool) (*models.SpeedTimePage, error) {
	samples, err := s.GetHeatmap(filter)
	if err != nil {
		return nil, err
	}

	classified, legend, err := s.GetClassified(filter, scaleName)
	if err != nil {
		return nil, err
	}

	records, err := s.trips.Records(filter)
	if err != nil {
		return nil, err
	}

	page := &models.SpeedTimePage{
		Title:      "Trajetórias e Velocidades",
		Map:        s.mapView(records, HeatMaxZoom),
		Heat:       samples,
		HeatLayer:  HeatOptions,
		Classified: classified,
		Legend:     legend,
	}

	if withTimeline {
		if page.Timeline, err = s.GetTimelineBuckets(filter); err != nil {
			return nil, err
		}
	}
	return page, nil
}

// GetHierarchyLayer colors the filtered records by road hierarchy. Records
// whose category has no color are skipped and their categories reported.
func (s *VisualizationService) GetHierarchyLayer(filter models.RecordFilter) (*models.HierarchyLayer, error) {
	records, err := s.trips.Records(filter)
	if err != nil {
		return nil, err
	}

	layer := &models.HierarchyLayer{
		Layer:      geojson.NewFeatureCollection(),
		Categories: classify.Categories(s.palettes.Hierarchy),
		Unmapped:   []string{},
	}
	seen := make(map[string]bool)
	for _, r := range records {
		color, err := classify.LookupColor(r.Hierarchy, s.palettes.Hierarchy)
		if errors.Is(err, classify.ErrUnknownCategory) {
			if !seen[r.Hierarchy] {
				seen[r.Hierarchy] = true
				layer.Unmapped = append(layer.Unmapped, r.Hierarchy)
			}
			continue
		}
		if err := heat.CheckKind(r.Geometry); err != nil {
			return nil, fmt.Errorf("trip %s: %w", r.TripID, err)
		}

		f := geojson.NewFeature(r.Geometry)
		f.Properties["hierarchy"] = r.Hierarchy
		f.Properties["color"] = color
		f.Properties["speed"] = r.Speed
		layer.Layer.Append(f)
	}

	if len(layer.Unmapped) > 0 {
		log.Printf("[VisualizationService] Unmapped road hierarchy categories: %q", layer.Unmapped)
	}
	return layer, nil
}

// GetPalettes returns every configured scale as a bucket list
func (s *VisualizationService) GetPalettes() map[string][]models.ColorBucket {
	out := make(map[string][]models.ColorBucket, len(s.palettes.Scales))
	for name, scale := range s.palettes.Scales {
		out[name] = scale.Buckets
	}
	return out
}

func (s *VisualizationService) mapView(records []models.GeometryRecord, maxZoom int) models.MapView {
	view := models.MapView{
		Center:      DefaultCenter,
		Zoom:        DefaultZoom,
		MaxZoom:     maxZoom,
		Tiles:       CartoTiles,
		Attribution: CartoAttrib,
	}

	geoms := make([]orb.Geometry, 0, len(records))
	for _, r := range records {
		geoms = append(geoms, r.Geometry)
	}
	if lat, lon, ok := spatial.Center(geoms); ok {
		view.DataCenter = &[2]float64{lat, lon}
	}
	return view
}
