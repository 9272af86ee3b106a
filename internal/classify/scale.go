package classify

import (
	"errors"
	"fmt"
	"math"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/models"
)

// ErrInvalidScale is returned when a threshold table cannot form a scale
var ErrInvalidScale = errors.New("invalid color scale")

// Scale classifies speeds into color buckets.
// Buckets are ascending, non-overlapping and cover [0, +Inf).
type Scale struct {
	Name     string
	Buckets  []models.ColorBucket
	Fallback string // color for negative or NaN speeds
}

// NewScale builds a scale from ascending bucket edges and colors.
//
// With len(colors) == len(edges)-1 the last color absorbs every value above
// its lower edge (a clamped step ramp). With len(colors) == len(edges) the
// final color is an overflow bucket starting at the last edge.
func NewScale(name string, edges []float64, colors []string, fallback string) (*Scale, error) {
	if len(edges) == 0 || len(colors) == 0 {
		return nil, fmt.Errorf("%w %q: empty threshold table", ErrInvalidScale, name)
	}
	if edges[0] != 0 {
		return nil, fmt.Errorf("%w %q: first edge must be 0, got %v", ErrInvalidScale, name, edges[0])
	}
	for i := 1; i < len(edges); i++ {
		if math.IsNaN(edges[i]) || edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("%w %q: edges must be strictly ascending at index %d", ErrInvalidScale, name, i)
		}
	}
	if len(colors) != len(edges) && len(colors) != len(edges)-1 {
		return nil, fmt.Errorf("%w %q: %d colors for %d edges", ErrInvalidScale, name, len(colors), len(edges))
	}

	buckets := make([]models.ColorBucket, len(colors))
	for i, color := range colors {
		upper := math.Inf(1)
		if i+1 < len(colors) {
			upper = edges[i+1]
		}
		buckets[i] = models.ColorBucket{Lower: edges[i], Upper: upper, Color: color}
	}

	return &Scale{Name: name, Buckets: buckets, Fallback: fallback}, nil
}

// NewLinearScale spreads palette evenly over [low, high], the way a linear
// color mapper does. Speeds below low take the first color and speeds above
// high take the last one.
func NewLinearScale(name string, low, high float64, palette []string, fallback string) (*Scale, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w %q: empty palette", ErrInvalidScale, name)
	}
	if math.IsNaN(low) || math.IsNaN(high) || low < 0 || high < low {
		return nil, fmt.Errorf("%w %q: bad range [%v, %v]", ErrInvalidScale, name, low, high)
	}
	if high == low {
		return NewScale(name, []float64{0}, palette[:1], fallback)
	}

	width := (high - low) / float64(len(palette))
	edges := make([]float64, len(palette))
	for i := 1; i < len(palette); i++ {
		edges[i] = low + width*float64(i)
	}
	return NewScale(name, edges, palette, fallback)
}

// Classify returns the color of the bucket containing speed.
// Each bucket holds Lower <= speed < Upper; the last is open-ended.
// Negative, NaN and otherwise unmatched speeds get the fallback color.
func (s *Scale) Classify(speed float64) string {
	if math.IsNaN(speed) || speed < 0 {
		return s.Fallback
	}
	for _, b := range s.Buckets {
		if speed >= b.Lower && speed < b.Upper {
			return b.Color
		}
	}
	return s.Fallback
}

// Classify is the table-driven form of Scale.Classify
func Classify(speed float64, buckets []models.ColorBucket, fallback string) string {
	return (&Scale{Buckets: buckets, Fallback: fallback}).Classify(speed)
}

// Legend renders the scale for a step colormap legend widget
func (s *Scale) Legend(caption string, vmax float64) models.Legend {
	legend := models.Legend{Caption: caption, VMax: vmax}
	if len(s.Buckets) > 0 {
		legend.VMin = s.Buckets[0].Lower
	}
	for _, b := range s.Buckets {
		legend.Colors = append(legend.Colors, b.Color)
		legend.Index = append(legend.Index, b.Lower)
	}
	legend.Index = append(legend.Index, vmax)
	return legend
}
