package convert

import (
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/scenesync"
	"github.com/gogpu/scenesync/fonts"
)

// Defaults applied to a run.
const (
	DefaultStrokeWeight = 0.5
	DefaultStrokeColor  = "#000000"
	DefaultFontFamily   = "Inter"
	DefaultFontSize     = 12.0
)

// SamplingConfig mirrors scenesync.SampleOptions in the config file.
type SamplingConfig struct {
	Density     float64 `yaml:"density"`
	MinSegments int     `yaml:"min_segments"`
	MaxSegments int     `yaml:"max_segments"`
}

// FontDefaults are used for texts whose font cannot be resolved.
type FontDefaults struct {
	Family string  `yaml:"family"`
	Style  string  `yaml:"style"`
	Size   float64 `yaml:"size"`
}

// Config holds the parameters of a conversion run.
type Config struct {
	// StrokeWeight is the stroke width of every curve. Inputs may
	// override it per run.
	StrokeWeight float64 `yaml:"stroke_weight"`

	// StrokeColor is the "#rrggbb" stroke of every curve.
	StrokeColor string `yaml:"stroke_color"`

	// Sampling controls display sampling of curves.
	Sampling SamplingConfig `yaml:"sampling"`

	// ClassifyDensityFactor multiplies the display density when curves
	// are sampled for frame classification.
	ClassifyDensityFactor float64 `yaml:"classify_density_factor"`

	DefaultFont FontDefaults `yaml:"default_font"`

	// Fonts identifies font files for entries whose family is unknown.
	// Nil disables file lookups.
	Fonts *fonts.Registry `yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		StrokeWeight: DefaultStrokeWeight,
		StrokeColor:  DefaultStrokeColor,
		Sampling: SamplingConfig{
			Density:     scenesync.DefaultDensity,
			MinSegments: scenesync.DefaultMinSegments,
			MaxSegments: scenesync.DefaultMaxSegments,
		},
		ClassifyDensityFactor: scenesync.DefaultClassifyFactor,
		DefaultFont: FontDefaults{
			Family: DefaultFontFamily,
			Style:  fonts.StyleRegular,
			Size:   DefaultFontSize,
		},
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("convert: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("convert: parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

// Validate checks values that have no sensible fallback.
func (c Config) Validate() error {
	if _, err := colorful.Hex(c.StrokeColor); err != nil {
		return fmt.Errorf("convert: stroke_color %q: %w", c.StrokeColor, err)
	}
	if c.Sampling.MaxSegments < c.Sampling.MinSegments {
		return fmt.Errorf("convert: sampling.max_segments %d < min_segments %d",
			c.Sampling.MaxSegments, c.Sampling.MinSegments)
	}
	return nil
}

// applyDefaults replaces zero and out-of-range values with defaults.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if !validWeight(c.StrokeWeight) {
		c.StrokeWeight = d.StrokeWeight
	}
	if c.StrokeColor == "" {
		c.StrokeColor = d.StrokeColor
	}
	if !(c.Sampling.Density > 0) || math.IsInf(c.Sampling.Density, 0) {
		c.Sampling.Density = d.Sampling.Density
	}
	if c.Sampling.MinSegments < 1 {
		c.Sampling.MinSegments = d.Sampling.MinSegments
	}
	if c.Sampling.MaxSegments < 1 {
		c.Sampling.MaxSegments = d.Sampling.MaxSegments
	}
	if !(c.ClassifyDensityFactor > 0) || math.IsInf(c.ClassifyDensityFactor, 0) {
		c.ClassifyDensityFactor = d.ClassifyDensityFactor
	}
	if c.DefaultFont.Family == "" {
		c.DefaultFont.Family = d.DefaultFont.Family
	}
	if c.DefaultFont.Style == "" {
		c.DefaultFont.Style = d.DefaultFont.Style
	}
	if !validHeight(c.DefaultFont.Size) {
		c.DefaultFont.Size = d.DefaultFont.Size
	}
}

// SampleOptions returns the display sampling options.
func (c Config) SampleOptions() scenesync.SampleOptions {
	return scenesync.SampleOptions{
		Density:     c.Sampling.Density,
		MinSegments: c.Sampling.MinSegments,
		MaxSegments: c.Sampling.MaxSegments,
	}
}

// Option modifies a Config.
type Option func(*Config)

// With returns a copy of c with opts applied.
func (c Config) With(opts ...Option) Config {
	for _, opt := range opts {
		opt(&c)
	}
	c.applyDefaults()
	return c
}

// WithStrokeWeight sets the stroke weight.
func WithStrokeWeight(w float64) Option {
	return func(c *Config) {
		c.StrokeWeight = w
	}
}

// WithStrokeColor sets the "#rrggbb" stroke color.
func WithStrokeColor(hex string) Option {
	return func(c *Config) {
		c.StrokeColor = hex
	}
}

// WithSampling sets the display sampling options.
func WithSampling(opts scenesync.SampleOptions) Option {
	return func(c *Config) {
		c.Sampling = SamplingConfig{
			Density:     opts.Density,
			MinSegments: opts.MinSegments,
			MaxSegments: opts.MaxSegments,
		}
	}
}

// WithFontRegistry sets the registry used to identify font files.
func WithFontRegistry(r *fonts.Registry) Option {
	return func(c *Config) {
		c.Fonts = r
	}
}

func validWeight(w float64) bool {
	return w > 0 && !math.IsInf(w, 0)
}
