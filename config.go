package subpic

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/subpic/internal/alloc"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the pool and compositor settings.
//
//	capacity: 16
//	margin: 24          # -1 leaves placement to the producer
//	max_payload: 65536  # 0 means unlimited
//	output:
//	  width: 720
//	  height: 576
//	palette:
//	  - {color: "#000000", alpha: 0}
//	  - {color: "#ffffff", alpha: 255}
//	  - {color: "#202020", alpha: 255}
//	  - {color: "#808080", alpha: 128}
type Config struct {
	Capacity   int            `yaml:"capacity"`
	Margin     int            `yaml:"margin"`
	MaxPayload int            `yaml:"max_payload"`
	Output     OutputConfig   `yaml:"output"`
	Palette    []PaletteEntry `yaml:"palette"`
}

// OutputConfig is the size of the video output.
type OutputConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PaletteEntry is one colour of the overlay palette.
type PaletteEntry struct {
	Color string `yaml:"color"` // #rrggbb
	Alpha int    `yaml:"alpha"` // 0 transparent, 255 opaque
}

// DefaultConfig returns the settings of a pool created without options.
func DefaultConfig() *Config {
	return &Config{
		Capacity: DefaultCapacity,
		Margin:   MarginDisabled,
	}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates a YAML config.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.Output.Width < 0 || c.Output.Height < 0 {
		return fmt.Errorf("invalid output size %dx%d", c.Output.Width, c.Output.Height)
	}
	if c.MaxPayload < 0 {
		return fmt.Errorf("max_payload must not be negative, got %d", c.MaxPayload)
	}
	if n := len(c.Palette); n != 0 && n != 4 {
		return fmt.Errorf("palette needs 4 entries, got %d", n)
	}
	for i, e := range c.Palette {
		if _, err := parseHexColor(e.Color); err != nil {
			return fmt.Errorf("palette[%d]: %w", i, err)
		}
		if e.Alpha < 0 || e.Alpha > 255 {
			return fmt.Errorf("palette[%d]: alpha %d out of range", i, e.Alpha)
		}
	}
	return nil
}

// Options converts the config into pool options.
func (c *Config) Options() []PoolOption {
	opts := []PoolOption{
		WithCapacity(c.Capacity),
		WithOutputSize(c.Output.Width, c.Output.Height),
		WithMargin(c.Margin),
	}
	if c.MaxPayload > 0 {
		opts = append(opts, WithAllocator(&alloc.Aligned{Limit: c.MaxPayload}))
	}
	return opts
}

// ColorTable returns the configured palette, or DefaultColorTable when the
// config has none.
func (c *Config) ColorTable() (*ColorTable, error) {
	if len(c.Palette) == 0 {
		return DefaultColorTable(), nil
	}
	if len(c.Palette) != 4 {
		return nil, fmt.Errorf("palette needs 4 entries, got %d", len(c.Palette))
	}

	var colors [4]color.Color
	for i, e := range c.Palette {
		rgb, err := parseHexColor(e.Color)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		rgb.A = uint8(e.Alpha)
		colors[i] = rgb
	}
	return ColorTableFromColors(colors), nil
}

// parseHexColor parses "#rrggbb" into an opaque colour.
func parseHexColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
