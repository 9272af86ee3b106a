package models

// HeatSample is a single weighted point of a heatmap layer
type HeatSample struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Weight    float64 `json:"weight"`
}

// TimeBucket groups the samples of all records sharing one timestamp
type TimeBucket struct {
	TimestampKey string       `json:"timestamp"`
	Samples      []HeatSample `json:"samples"`
}

// HeatmapOptions mirrors the heat layer settings used by the map widget
type HeatmapOptions struct {
	Radius  float64 `json:"radius"`
	Blur    float64 `json:"blur"`
	MaxZoom int     `json:"maxZoom"`
}
