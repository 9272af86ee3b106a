package models

import (
	"encoding/json"
	"math"
)

// ColorBucket maps the half-open speed interval [Lower, Upper) to Color.
// The final bucket of a scale has Upper set to +Inf.
type ColorBucket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Color string  `json:"color"`
}

// Legend describes a step color scale for the map legend widget
type Legend struct {
	Caption string    `json:"caption"`
	Colors  []string  `json:"colors"`
	Index   []float64 `json:"index"`
	VMin    float64   `json:"vmin"`
	VMax    float64   `json:"vmax"`
}

// MarshalJSON encodes an open upper bound as null, since JSON has no Inf
func (b ColorBucket) MarshalJSON() ([]byte, error) {
	var upper *float64
	if !math.IsInf(b.Upper, 1) {
		upper = &b.Upper
	}
	return json.Marshal(struct {
		Lower float64  `json:"lower"`
		Upper *float64 `json:"upper"`
		Color string   `json:"color"`
	}{b.Lower, upper, b.Color})
}
