package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"pattern-projector/internal/unit"
)

// Config holds the paths and calibration settings of a session.
type Config struct {
	// Paths
	StorePath string `json:"store_path"`
	OutputDir string `json:"output_dir"`
	Backdrop  string `json:"backdrop"`

	// Calibration
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Unit   unit.Unit `json:"unit"`

	// Render settings
	ViewportWidth  int    `json:"viewport_width"`
	ViewportHeight int    `json:"viewport_height"`
	Supersample    int    `json:"supersample"`
	Format         string `json:"format"`
	Workers        int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) error {
	if flags.StorePath != "" {
		c.StorePath = flags.StorePath
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Backdrop != "" {
		c.Backdrop = flags.Backdrop
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Unit != "" {
		u, err := unit.Parse(flags.Unit)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		c.Unit = u
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.StorePath == "" {
		c.StorePath = defaultStorePath()
	}
	if c.OutputDir == "" {
		c.OutputDir = "previews"
	}

	// A 24x18 inch cutting mat is the most common target.
	if c.Width <= 0 {
		c.Width = 24
	}
	if c.Height <= 0 {
		c.Height = 18
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = 1920
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = 1080
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	StorePath string
	OutputDir string
	Backdrop  string
	Width     float64
	Height    float64
	Unit      string
	Format    string
	Workers   int
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pattern-projector.json"
	}
	return filepath.Join(dir, "pattern-projector", "state.json")
}
