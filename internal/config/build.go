package config

import (
	"math/rand"

	"github.com/san-kum/swarm/internal/integrators"
	"github.com/san-kum/swarm/internal/swarm"
)

// Rand returns the spawn source: reproducible for a non-zero seed.
func (c *Config) Rand() *rand.Rand {
	return swarm.NewRand(c.Seed)
}

// NewDriver validates the config and builds a ready simulation with the
// attractor in the middle of the viewport.
func (c *Config) NewDriver(p swarm.Presenter) (*swarm.Driver, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	integ, err := integrators.Lookup(c.Integrator)
	if err != nil {
		return nil, err
	}
	rgb, err := c.RGB()
	if err != nil {
		return nil, err
	}

	store := swarm.NewStore(c.ParticleCount, c.Bounds(), c.Rand())
	center := c.Viewport().Center()
	d := swarm.NewDriver(store, swarm.NewAttractor(center.X, center.Y), integ, c.Params(), p)
	d.SetStyle(rgb, c.PointSize)
	return d, nil
}
