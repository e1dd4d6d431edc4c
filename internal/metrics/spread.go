package metrics

import (
	"math"

	"github.com/san-kum/swarm/internal/swarm"
)

// Spread is the mean distance from the particles to the attractor. Its
// run value is the last observation: how tightly the swarm ended up packed.
type Spread struct {
	name    string
	current float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(ps []swarm.Particle, target swarm.Point, tick int) {
	if len(ps) == 0 {
		return
	}
	sum := 0.0
	for _, p := range ps {
		sum += math.Hypot(target.X-p.X, target.Y-p.Y)
	}
	s.current = sum / float64(len(ps))
}

func (s *Spread) Current() float64 { return s.current }
func (s *Spread) Value() float64   { return s.current }
func (s *Spread) Reset()           { s.current = 0 }

// MaxSpeed records the fastest particle per tick and over the run.
type MaxSpeed struct {
	name    string
	current float64
	peak    float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(ps []swarm.Particle, target swarm.Point, tick int) {
	m.current = 0
	for _, p := range ps {
		m.current = math.Max(m.current, p.Speed())
	}
	m.peak = math.Max(m.peak, m.current)
}

func (m *MaxSpeed) Current() float64 { return m.current }
func (m *MaxSpeed) Value() float64   { return m.peak }

func (m *MaxSpeed) Reset() {
	m.current = 0
	m.peak = 0
}
