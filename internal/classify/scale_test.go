package classify

import (
	"errors"
	"math"
	"testing"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/models"
)

func discreteScale(t *testing.T) *Scale {
	t.Helper()
	s, err := NewScale("discrete", DiscreteEdges, DiscreteColors, Unclassified)
	if err != nil {
		t.Fatalf("NewScale failed: %v", err)
	}
	return s
}

func TestScale_BucketLayout(t *testing.T) {
	s := discreteScale(t)

	if len(s.Buckets) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(s.Buckets))
	}
	for i := 1; i < len(s.Buckets); i++ {
		if s.Buckets[i].Lower != s.Buckets[i-1].Upper {
			t.Errorf("bucket %d does not start where bucket %d ends", i, i-1)
		}
	}
	if !math.IsInf(s.Buckets[len(s.Buckets)-1].Upper, 1) {
		t.Error("last bucket should be open-ended")
	}
}

func TestScale_Classify(t *testing.T) {
	s := discreteScale(t)

	tests := []struct {
		speed float64
		want  string
	}{
		{0, "#fff5f0"},
		{5, "#fff5f0"},
		{11.51, "#fff5f0"},
		{11.52, "#fcbea5"},
		{26.73, "#fb7050"},
		{42.64, "#d32020"},
		{64.84, "#d32020"},
		{64.85, "#67000d"},
		{130.99, "#67000d"},
		{131, "#3b0008"},
		{500, "#3b0008"},
		{-0.01, Unclassified},
		{math.NaN(), Unclassified},
		{math.Inf(-1), Unclassified},
	}

	for _, tt := range tests {
		if got := s.Classify(tt.speed); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.speed, got, tt.want)
		}
	}
}

func TestScale_BoundaryChangesBucket(t *testing.T) {
	s := discreteScale(t)
	if s.Classify(11.51) == s.Classify(11.52) {
		t.Error("11.51 and 11.52 should fall in different buckets")
	}
}

func TestScale_EveryNonNegativeSpeedHasOneBucket(t *testing.T) {
	s := discreteScale(t)

	for speed := 0.0; speed < 200; speed += 0.25 {
		matches := 0
		for _, b := range s.Buckets {
			if speed >= b.Lower && speed < b.Upper {
				matches++
				if got := s.Classify(speed); got != b.Color {
					t.Errorf("Classify(%v) = %s, want bucket color %s", speed, got, b.Color)
				}
			}
		}
		if matches != 1 {
			t.Fatalf("speed %v matched %d buckets", speed, matches)
		}
	}
}

func TestScale_RampClampsLastColor(t *testing.T) {
	s, err := NewScale("ramp", RampEdges, RampColors, Unclassified)
	if err != nil {
		t.Fatalf("NewScale failed: %v", err)
	}

	if len(s.Buckets) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(s.Buckets))
	}
	if got := s.Classify(12); got != "#fcbea5" {
		t.Errorf("Classify(12) = %s, want #fcbea5", got)
	}
	if got := s.Classify(200); got != "#67000d" {
		t.Errorf("Classify(200) = %s, want #67000d", got)
	}
}

func TestNewScale_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		edges  []float64
		colors []string
	}{
		{"empty", nil, nil},
		{"not from zero", []float64{1, 2}, []string{"a", "b"}},
		{"descending", []float64{0, 5, 3}, []string{"a", "b"}},
		{"duplicate edge", []float64{0, 5, 5}, []string{"a", "b"}},
		{"color count", []float64{0, 5}, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScale(tt.name, tt.edges, tt.colors, Unclassified)
			if !errors.Is(err, ErrInvalidScale) {
				t.Errorf("expected ErrInvalidScale, got %v", err)
			}
		})
	}
}

func TestNewLinearScale(t *testing.T) {
	s, err := NewLinearScale("plasma", 10, 120, Plasma, Unclassified)
	if err != nil {
		t.Fatalf("NewLinearScale failed: %v", err)
	}

	if got := s.Classify(0); got != Plasma[0] {
		t.Errorf("below low should take first color, got %s", got)
	}
	if got := s.Classify(120); got != Plasma[len(Plasma)-1] {
		t.Errorf("high should take last color, got %s", got)
	}
	if got := s.Classify(1000); got != Plasma[len(Plasma)-1] {
		t.Errorf("above high should take last color, got %s", got)
	}
	if got := s.Classify(-3); got != Unclassified {
		t.Errorf("negative speed should be unclassified, got %s", got)
	}
}

func TestNewLinearScale_FlatRange(t *testing.T) {
	s, err := NewLinearScale("flat", 40, 40, Plasma, Unclassified)
	if err != nil {
		t.Fatalf("NewLinearScale failed: %v", err)
	}
	if got := s.Classify(40); got != Plasma[0] {
		t.Errorf("Classify(40) = %s, want %s", got, Plasma[0])
	}
}

func TestScale_Legend(t *testing.T) {
	s, err := NewScale("ramp", RampEdges, RampColors, Unclassified)
	if err != nil {
		t.Fatalf("NewScale failed: %v", err)
	}

	legend := s.Legend("Velocidade (km/h)", 131)
	want := []float64{0, 12, 27, 43, 65, 131}
	if len(legend.Index) != len(want) {
		t.Fatalf("legend index = %v, want %v", legend.Index, want)
	}
	for i := range want {
		if legend.Index[i] != want[i] {
			t.Errorf("legend index[%d] = %v, want %v", i, legend.Index[i], want[i])
		}
	}
	if len(legend.Colors) != len(RampColors) {
		t.Errorf("legend has %d colors, want %d", len(legend.Colors), len(RampColors))
	}
}

func TestClassify_Table(t *testing.T) {
	buckets := []models.ColorBucket{
		{Lower: 0, Upper: 10, Color: "green"},
		{Lower: 10, Upper: 20, Color: "yellow"},
		{Lower: 20, Upper: 30, Color: "red"},
	}

	tests := []struct {
		speed float64
		want  string
	}{
		{0, "green"},
		{9.99, "green"},
		{10, "yellow"},
		{29.99, "red"},
		{30, "black"},
		{-1, "black"},
		{math.NaN(), "black"},
	}
	for _, tt := range tests {
		if got := Classify(tt.speed, buckets, "black"); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.speed, got, tt.want)
		}
	}
}
