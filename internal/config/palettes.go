package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/estudo-naturalistico/dashboard-backend-go/internal/classify"
)

// Scale names
const (
	ScaleDiscrete = "discrete"
	ScaleRamp     = "ramp"
)

// ScaleConfig is one threshold table
type ScaleConfig struct {
	Edges   []float64 `yaml:"edges" validate:"required,min=1"`
	Colors  []string  `yaml:"colors" validate:"required,min=1,dive,required"`
	Caption string    `yaml:"caption"`
	VMax    float64   `yaml:"vmax" validate:"gte=0"`
}

// PaletteFile is the layout of palettes.yml
type PaletteFile struct {
	Unclassified string                 `yaml:"unclassified" validate:"required"`
	Scales       map[string]ScaleConfig `yaml:"scales" validate:"required,dive"`
	Linear       []string               `yaml:"linear" validate:"required,min=1,dive,required"`
	Hierarchy    map[string]string      `yaml:"hierarchy" validate:"required,dive,keys,required,endkeys,required"`
}

// Palettes holds the validated, ready to use color tables
type Palettes struct {
	Scales       map[string]*classify.Scale
	Configs      map[string]ScaleConfig
	Linear       []string
	Hierarchy    map[string]string
	Unclassified string
}

// DefaultPaletteFile returns the built-in tables
func DefaultPaletteFile() PaletteFile {
	return PaletteFile{
		Unclassified: classify.Unclassified,
		Scales: map[string]ScaleConfig{
			ScaleDiscrete: {
				Edges:   classify.DiscreteEdges,
				Colors:  classify.DiscreteColors,
				Caption: "Velocidade (km/h)",
				VMax:    131,
			},
			ScaleRamp: {
				Edges:   classify.RampEdges,
				Colors:  classify.RampColors,
				Caption: "Velocidade (km/h)",
				VMax:    131,
			},
		},
		Linear:    classify.Plasma,
		Hierarchy: classify.HierarchyColors,
	}
}

// LoadPalettes reads palettes from path, falling back to the built-in
// tables when the file does not exist
func LoadPalettes(path string) (*Palettes, error) {
	file := DefaultPaletteFile()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("[Config] Palette file %s not found, using built-in palettes", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	default:
		file = PaletteFile{}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse palette file: %w", err)
		}
	}

	return file.Build()
}

// Build validates the file and turns each threshold table into a scale
func (f PaletteFile) Build() (*Palettes, error) {
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid palette file: %w", err)
	}
	for _, name := range []string{ScaleDiscrete, ScaleRamp} {
		if _, ok := f.Scales[name]; !ok {
			return nil, fmt.Errorf("invalid palette file: missing scale %q", name)
		}
	}

	p := &Palettes{
		Scales:       make(map[string]*classify.Scale, len(f.Scales)),
		Configs:      f.Scales,
		Linear:       f.Linear,
		Hierarchy:    f.Hierarchy,
		Unclassified: f.Unclassified,
	}
	for name, sc := range f.Scales {
		scale, err := classify.NewScale(name, sc.Edges, sc.Colors, f.Unclassified)
		if err != nil {
			return nil, err
		}
		p.Scales[name] = scale
	}
	return p, nil
}
