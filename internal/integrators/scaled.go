package integrators

import (
	"math"

	"github.com/san-kum/swarm/internal/swarm"
)

// MaxScale caps the step multiplier so a stalled frame cannot fling particles.
const MaxScale = 4.0

// ScaledEuler scales each tick by dt*TickRate, making motion follow wall time
// instead of the tick rate. At exactly the nominal rate it matches Euler.
type ScaledEuler struct{}

func NewScaledEuler() *ScaledEuler {
	return &ScaledEuler{}
}

func (s *ScaledEuler) Step(ps []swarm.Particle, target swarm.Point, p swarm.Params, dt float64) {
	k := dt * p.TickRate
	if !(k > 0) {
		return
	}
	if k > MaxScale {
		k = MaxScale
	}
	damp := math.Pow(p.Friction, k)

	for i := range ps {
		q := &ps[i]

		dx := target.X - q.X
		dy := target.Y - q.Y
		dist := math.Sqrt(dx*dx+dy*dy) + swarm.Epsilon

		force := p.Strength / dist * k
		q.VX += dx / dist * force
		q.VY += dy / dist * force

		q.VX *= damp
		q.VY *= damp

		q.X += q.VX * k
		q.Y += q.VY * k
	}
}
