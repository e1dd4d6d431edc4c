package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/swarm/internal/integrators"
	"github.com/san-kum/swarm/internal/swarm"
)

const (
	DefaultWidth       = 800
	DefaultHeight      = 600
	DefaultColor       = "white"
	DefaultPointSize   = 1
	DefaultPath        = "circle"
	DefaultTicks       = 600
	DefaultSampleEvery = 1
)

type Config struct {
	Width         int        `yaml:"width"`
	Height        int        `yaml:"height"`
	ParticleCount int        `yaml:"particle_count"`
	Friction      float64    `yaml:"friction"`
	Strength      float64    `yaml:"strength"`
	SpawnBounds   swarm.Rect `yaml:"spawn_bounds"`
	Seed          int64      `yaml:"seed"`
	Integrator    string     `yaml:"integrator"`
	TickRate      float64    `yaml:"tick_rate"`
	Color         string     `yaml:"color"`
	PointSize     int        `yaml:"point_size"`
	Run           RunConfig  `yaml:"run"`
}

// RunConfig drives headless runs, where a scripted path stands in for the mouse.
type RunConfig struct {
	Path        string  `yaml:"path"`
	Ticks       int     `yaml:"ticks"`
	SampleEvery int     `yaml:"sample_every"`
	Radius      float64 `yaml:"radius"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		ParticleCount: swarm.DefaultParticleCount,
		Friction:      swarm.DefaultFriction,
		Strength:      swarm.DefaultStrength,
		Integrator:    integrators.Default,
		TickRate:      swarm.DefaultTickRate,
		Color:         DefaultColor,
		PointSize:     DefaultPointSize,
		Run: RunConfig{
			Path:        DefaultPath,
			Ticks:       DefaultTicks,
			SampleEvery: DefaultSampleEvery,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads path over base: keys missing from the file keep base's
// values. base is modified and returned.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, err
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Viewport is the full window area.
func (c *Config) Viewport() swarm.Rect {
	return swarm.Viewport(float64(c.Width), float64(c.Height))
}

// Bounds returns the spawn rectangle, defaulting to the viewport.
func (c *Config) Bounds() swarm.Rect {
	if c.SpawnBounds.IsZero() {
		return c.Viewport()
	}
	return c.SpawnBounds
}

func (c *Config) Params() swarm.Params {
	return swarm.Params{
		Strength: c.Strength,
		Friction: c.Friction,
		TickRate: c.TickRate,
	}
}

// RGB resolves the configured colour.
func (c *Config) RGB() (swarm.Color, error) {
	return ParseColor(c.Color)
}

// Validate fails fast on values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return &swarm.ConfigError{Field: "width", Value: c.Width, Reason: "must be positive"}
	}
	if c.Height <= 0 {
		return &swarm.ConfigError{Field: "height", Value: c.Height, Reason: "must be positive"}
	}
	if c.ParticleCount <= 0 {
		return &swarm.ConfigError{Field: "particle_count", Value: c.ParticleCount, Reason: "must be positive"}
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Bounds().Empty() {
		return &swarm.ConfigError{Field: "spawn_bounds", Value: c.SpawnBounds, Reason: "must have positive width and height"}
	}
	if _, err := integrators.Lookup(c.Integrator); err != nil {
		return &swarm.ConfigError{Field: "integrator", Value: c.Integrator, Reason: fmt.Sprintf("one of %v", integrators.Names())}
	}
	if _, err := c.RGB(); err != nil {
		return &swarm.ConfigError{Field: "color", Value: c.Color, Reason: err.Error()}
	}
	if c.PointSize < 1 {
		return &swarm.ConfigError{Field: "point_size", Value: c.PointSize, Reason: "must be at least 1"}
	}
	if c.Run.Ticks < 1 {
		return &swarm.ConfigError{Field: "run.ticks", Value: c.Run.Ticks, Reason: "must be at least 1"}
	}
	if c.Run.SampleEvery < 1 {
		return &swarm.ConfigError{Field: "run.sample_every", Value: c.Run.SampleEvery, Reason: "must be at least 1"}
	}
	return nil
}

// ParseColor accepts an SVG colour name ("white", "orchid") or #rrggbb.
func ParseColor(s string) (swarm.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return swarm.Color{}, fmt.Errorf("hex colour must be #rrggbb, got %q", s)
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return swarm.Color{}, fmt.Errorf("bad hex colour %q: %w", s, err)
		}
		return swarm.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}
	c, ok := colornames.Map[s]
	if !ok {
		return swarm.Color{}, fmt.Errorf("unknown colour name %q", s)
	}
	return fromRGBA(c), nil
}

func fromRGBA(c color.RGBA) swarm.Color {
	return swarm.Color{R: c.R, G: c.G, B: c.B}
}
