package sim

import (
	"github.com/san-kum/swarm/internal/config"
	"github.com/san-kum/swarm/internal/metrics"
	"github.com/san-kum/swarm/internal/swarm"
)

// DefaultMetrics returns fresh instances of every built-in metric.
func DefaultMetrics() []Metric {
	return []Metric{
		metrics.NewKineticEnergy(),
		metrics.NewSpread(),
		metrics.NewMaxSpeed(),
		metrics.NewStability(),
	}
}

// Build assembles a headless simulator from cfg: driver, scripted path and
// the default metrics. No presenter is attached.
func Build(cfg *config.Config) (*Simulator, error) {
	driver, err := cfg.NewDriver(nil)
	if err != nil {
		return nil, err
	}
	path, err := NewPath(cfg.Run.Path, cfg.Viewport(), cfg.Run.Radius)
	if err != nil {
		return nil, err
	}

	s := New(driver, path)
	for _, m := range DefaultMetrics() {
		s.AddMetric(m)
	}
	return s, nil
}

// ConfigFrom derives the run settings from cfg. Dt is one nominal tick.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Ticks:         cfg.Run.Ticks,
		Dt:            1 / cfg.TickRate,
		SampleEvery:   cfg.Run.SampleEvery,
		ValidateState: true,
	}
}

// SeededFactory returns an ensemble factory that clones cfg and overrides
// only the seed.
func SeededFactory(cfg *config.Config) Factory {
	return func(seed int64) (*Simulator, error) {
		c := cfg.Clone()
		c.Seed = seed
		return Build(c)
	}
}

var _ swarm.Presenter = (*Recorder)(nil)
