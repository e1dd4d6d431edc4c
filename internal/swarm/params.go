package swarm

import "math"

const (
	// Epsilon is added to every distance before dividing by it.
	Epsilon = 0.1

	DefaultParticleCount = 2000
	DefaultFriction      = 0.98
	DefaultStrength      = 0.3
	DefaultTickRate      = 60.0
)

// Params holds the physical constants of a run. They are fixed at construction.
type Params struct {
	Strength float64
	Friction float64
	// TickRate is the nominal ticks per second; only time-scaled integrators read it.
	TickRate float64
}

func DefaultParams() Params {
	return Params{
		Strength: DefaultStrength,
		Friction: DefaultFriction,
		TickRate: DefaultTickRate,
	}
}

// Validate rejects constants that would stall or blow up the simulation.
func (p Params) Validate() error {
	if math.IsNaN(p.Strength) || math.IsInf(p.Strength, 0) {
		return &ConfigError{Field: "strength", Value: p.Strength, Reason: "must be finite"}
	}
	if !(p.Friction > 0 && p.Friction < 1) {
		return &ConfigError{Field: "friction", Value: p.Friction, Reason: "must be in (0, 1)"}
	}
	if !(p.TickRate > 0) || math.IsInf(p.TickRate, 0) {
		return &ConfigError{Field: "tick_rate", Value: p.TickRate, Reason: "must be positive"}
	}
	return nil
}

// Integrator advances every particle one tick toward target. dt is the wall
// time since the previous tick in seconds; implementations may ignore it.
type Integrator interface {
	Step(ps []Particle, target Point, p Params, dt float64)
}
