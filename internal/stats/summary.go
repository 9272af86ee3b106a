package stats

import (
	"math"
	"sort"
)

// SpeedSummary describes a set of segment speeds in km/h
type SpeedSummary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P85    float64 `json:"p85"` // 85th percentile, the usual operating speed figure
}

// Summarize computes the summary of speeds. Negative and NaN values carry
// no speed and are ignored.
func Summarize(speeds []float64) SpeedSummary {
	sorted := make([]float64, 0, len(speeds))
	for _, v := range speeds {
		if math.IsNaN(v) || v < 0 {
			continue
		}
		sorted = append(sorted, v)
	}
	if len(sorted) == 0 {
		return SpeedSummary{}
	}
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	return SpeedSummary{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   sum / float64(len(sorted)),
		Median: quantile(sorted, 0.5),
		P85:    quantile(sorted, 0.85),
	}
}

// quantile interpolates linearly between the closest ranks of sorted
func quantile(sorted []float64, q float64) float64 {
	index := q * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
