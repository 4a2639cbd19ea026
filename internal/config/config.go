package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldtrace/internal/trace"
)

const (
	DefaultMaxSteps   = trace.DefaultMaxSteps
	DefaultResolution = 3
	DefaultScene      = "dipole"
)

// Config is the file-backed settings surface: trace knobs, palette
// and the starting scene. Live charge placements are never written
// back; only settings round-trip through yaml.
type Config struct {
	Scene      string      `yaml:"scene"`
	MaxSteps   int         `yaml:"max_steps"`
	Resolution int         `yaml:"resolution"`
	Workers    int         `yaml:"workers"`
	Palette    PaletteSpec `yaml:"palette"`
}

type PaletteSpec struct {
	Positive ColorSpec `yaml:"positive"`
	Negative ColorSpec `yaml:"negative"`
}

type ColorSpec struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

func DefaultConfig() *Config {
	p := trace.DefaultPalette()
	return &Config{
		Scene:      DefaultScene,
		MaxSteps:   DefaultMaxSteps,
		Resolution: DefaultResolution,
		Palette: PaletteSpec{
			Positive: ColorSpec{p.Positive.R, p.Positive.G, p.Positive.B},
			Negative: ColorSpec{p.Negative.R, p.Negative.G, p.Negative.B},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FrameConfig translates settings into the orchestrator's knobs,
// applying the same floors the interactive controls enforce.
func (c *Config) FrameConfig() trace.FrameConfig {
	fc := trace.FrameConfig{
		MaxSteps:   c.MaxSteps,
		Resolution: c.Resolution,
		Workers:    c.Workers,
		Palette: trace.Palette{
			Positive: trace.RGBA{R: c.Palette.Positive.R, G: c.Palette.Positive.G, B: c.Palette.Positive.B, A: 255},
			Negative: trace.RGBA{R: c.Palette.Negative.R, G: c.Palette.Negative.G, B: c.Palette.Negative.B, A: 255},
		},
	}
	fc.ClampKnobs()
	return fc
}
