package integrators

import (
	"math"

	"github.com/san-kum/swarm/internal/swarm"
)

// Euler is the reference integrator: one unit timestep per tick regardless of
// elapsed wall time, so perceived speed follows the tick rate.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(ps []swarm.Particle, target swarm.Point, p swarm.Params, dt float64) {
	Step(ps, target, p.Strength, p.Friction)
}

// Step pulls every particle toward target with force strength/dist, damps the
// velocity by friction and moves the particle. The three updates happen in
// that order for each particle; they do not commute.
func Step(ps []swarm.Particle, target swarm.Point, strength, friction float64) {
	for i := range ps {
		p := &ps[i]

		dx := target.X - p.X
		dy := target.Y - p.Y
		dist := math.Sqrt(dx*dx+dy*dy) + swarm.Epsilon

		force := strength / dist
		p.VX += dx / dist * force
		p.VY += dy / dist * force

		p.VX *= friction
		p.VY *= friction

		p.X += p.VX
		p.Y += p.VY
	}
}
