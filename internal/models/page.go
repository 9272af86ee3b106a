package models

import (
	"github.com/paulmach/orb/geojson"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/stats"
)

// MapView holds the base map settings shared by the folium-style pages
type MapView struct {
	Center      [2]float64  `json:"center"`               // lat, lon
	DataCenter  *[2]float64 `json:"dataCenter,omitempty"` // centroid of the shown records
	Zoom        int         `json:"zoom"`
	MaxZoom     int         `json:"maxZoom,omitempty"`
	Tiles       string      `json:"tiles"`
	Attribution string      `json:"attribution"`
}

// OverviewPage is the payload of the home page
type OverviewPage struct {
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Map         MapView                    `json:"map"`
	Layer       *geojson.FeatureCollection `json:"layer"`
	Counts      []NeighborhoodCount        `json:"neighborhoodCounts"`
}

// TripSpeedPage is the payload of the individual trajectories page
type TripSpeedPage struct {
	Title        string                     `json:"title"`
	TripIDs      []string                   `json:"tripIds"`
	SelectedTrip string                     `json:"selectedTrip"`
	CRS          string                     `json:"crs"`
	Layer        *geojson.FeatureCollection `json:"layer"`
	ColorBar     []ColorBucket              `json:"colorBar"`
	SpeedMin     float64                    `json:"speedMin"`
	SpeedMax     float64                    `json:"speedMax"`
	Speeds       []TrajectorySpeed          `json:"speeds"`
	Summary      stats.SpeedSummary         `json:"summary"`
	Table        []TripRow                  `json:"table"`
}

// SpeedTimePage is the payload of the speeds over time page
type SpeedTimePage struct {
	Title      string                     `json:"title"`
	Map        MapView                    `json:"map"`
	Heat       []HeatSample               `json:"heat"`
	HeatLayer  HeatmapOptions             `json:"heatOptions"`
	Classified *geojson.FeatureCollection `json:"classified"`
	Legend     Legend                     `json:"legend"`
	Timeline   []TimeBucket               `json:"timeline,omitempty"`
}

// HierarchyLayer is a road hierarchy colored layer with the categories
// that had no color assigned
type HierarchyLayer struct {
	Layer      *geojson.FeatureCollection `json:"layer"`
	Categories []string                   `json:"categories"`
	Unmapped   []string                   `json:"unmapped"`
}
