package config

import "sort"

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"dense": with(func(c *Config) {
		c.ParticleCount = 20000
	}),
	"crowd": with(func(c *Config) {
		c.Width, c.Height = 1280, 800
		c.ParticleCount = 50000
		c.Color = "#f0f0ff"
	}),
	"syrup": with(func(c *Config) {
		c.Friction = 0.9
		c.Strength = 0.6
		c.Color = "gold"
	}),
	"orbit": with(func(c *Config) {
		c.Friction = 0.995
		c.Color = "deepskyblue"
		c.Run.Path = "lissajous"
	}),
	"corner": with(func(c *Config) {
		c.SpawnBounds.Left, c.SpawnBounds.Right = 0, 200
		c.SpawnBounds.Bottom, c.SpawnBounds.Top = 0, 150
		c.Run.Path = "fixed"
	}),
	"wallclock": with(func(c *Config) {
		c.Integrator = "scaled"
		c.Color = "orchid"
	}),
}

func with(fn func(c *Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
