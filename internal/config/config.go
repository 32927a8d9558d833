// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/itswill307/TheNewSuzerainProject/internal/view"
)

// Tint is an RGBA highlight color with alpha as blend strength.
type Tint struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// World describes one playable map: its geometry, lookup textures, and
// picking/highlight behavior.
type World struct {
	Name       string  `yaml:"name"`
	Radius     float64 `yaml:"radius"`
	Projection string  `yaml:"projection"` // planesphere, sinusoidal, aitoff, generalized

	// Lookup textures. Provinces is required for picking; an unreadable
	// file disables picking only, nothing else.
	Provinces      string `yaml:"provinces"`
	Heightmap      string `yaml:"heightmap,omitempty"`
	MaxTextureSize int    `yaml:"max_texture_size,omitempty"`

	HeightScale float64 `yaml:"height_scale,omitempty"`
	HeightBias  float64 `yaml:"height_bias,omitempty"`
	UVOffset    float64 `yaml:"uv_offset,omitempty"`

	OceanID    int32 `yaml:"ocean_id"`
	BlockOcean bool  `yaml:"block_ocean"`

	Hover    Tint `yaml:"hover"`
	Selected Tint `yaml:"selected"`

	// Optional display names keyed by province id.
	ProvinceNames map[int32]string `yaml:"province_names,omitempty"`

	// Grid resolution of the rendered surface mesh.
	GridCols int `yaml:"grid_cols,omitempty"`
	GridRows int `yaml:"grid_rows,omitempty"`
}

// Config is the root configuration file structure.
type Config struct {
	World World         `yaml:"world"`
	View  view.Settings `yaml:"view"`
}

// Load reads and parses the YAML configuration file from the specified
// path, filling defaults for anything left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{View: view.DefaultSettings()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if cfg.World.Radius <= 0 {
		return nil, fmt.Errorf("world radius must be positive, got %g", cfg.World.Radius)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	w := &c.World
	if w.Name == "" {
		w.Name = "world"
	}
	if w.Projection == "" {
		w.Projection = "planesphere"
	}
	if w.MaxTextureSize == 0 {
		w.MaxTextureSize = 4096
	}
	if w.HeightScale == 0 {
		w.HeightScale = w.Radius * 0.02
	}
	if w.GridCols == 0 {
		w.GridCols = 128
	}
	if w.GridRows == 0 {
		w.GridRows = 64
	}
	if w.Hover == (Tint{}) {
		w.Hover = Tint{R: 1, G: 1, B: 0.6, A: 0.35}
	}
	if w.Selected == (Tint{}) {
		w.Selected = Tint{R: 1, G: 0.4, B: 0.2, A: 0.5}
	}
	if c.View.FOV == 0 {
		c.View.FOV = view.DefaultSettings().FOV
	}
	if c.View.MorphExponent == 0 {
		c.View.MorphExponent = view.DefaultSettings().MorphExponent
	}
}
