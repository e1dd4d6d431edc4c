package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/swarm/internal/integrators"
	"github.com/san-kum/swarm/internal/swarm"
)

// frictionFirst damps before accumulating force; it exists only to show that
// the update order matters.
func frictionFirst(ps []swarm.Particle, target swarm.Point, strength, friction float64) {
	for i := range ps {
		p := &ps[i]
		dx, dy := target.X-p.X, target.Y-p.Y
		dist := math.Sqrt(dx*dx+dy*dy) + swarm.Epsilon
		force := strength / dist
		p.VX *= friction
		p.VY *= friction
		p.VX += dx / dist * force
		p.VY += dy / dist * force
		p.X += p.VX
		p.Y += p.VY
	}
}

var _ = Describe("Step", func() {
	const (
		strength = 0.3
		friction = 0.98
		tol      = 1e-6
	)

	target := swarm.Point{X: 400, Y: 300}

	It("matches the reference scenario after one step", func() {
		ps := []swarm.Particle{{X: 400, Y: 400}}
		integrators.Step(ps, target, strength, friction)

		Expect(ps[0].X).To(Equal(400.0))
		Expect(ps[0].VX).To(Equal(0.0))
		Expect(ps[0].VY).To(BeNumerically("~", -0.0029341288, tol))
		Expect(ps[0].Y).To(BeNumerically("~", 399.9970658712, tol))
	})

	It("stays finite when a particle sits exactly on the target", func() {
		ps := []swarm.Particle{{X: target.X, Y: target.Y}}
		for i := 0; i < 100; i++ {
			integrators.Step(ps, target, strength, friction)
		}
		Expect(ps[0].IsValid()).To(BeTrue())
		Expect(ps[0].X).To(Equal(target.X))
		Expect(ps[0].Y).To(Equal(target.Y))
	})

	It("is a deterministic function of its inputs", func() {
		a := []swarm.Particle{{X: 10, Y: 20, VX: 1, VY: -2}, {X: 700, Y: 5, VX: 0.5}}
		b := make([]swarm.Particle, len(a))
		copy(b, a)

		for i := 0; i < 50; i++ {
			integrators.Step(a, target, strength, friction)
			integrators.Step(b, target, strength, friction)
		}
		Expect(a).To(Equal(b))
	})

	It("applies friction after the force and before the move", func() {
		ref := []swarm.Particle{{X: 400, Y: 400}}
		alt := []swarm.Particle{{X: 400, Y: 400}}

		integrators.Step(ref, target, strength, friction)
		frictionFirst(alt, target, strength, friction)

		Expect(alt[0].Y).To(BeNumerically("~", 399.997005991, tol))
		Expect(math.Abs(ref[0].Y - alt[0].Y)).To(BeNumerically(">", 1e-6))
	})

	It("leaves the target untouched", func() {
		t := target
		ps := []swarm.Particle{{X: 0, Y: 0}}
		integrators.Step(ps, t, strength, friction)
		Expect(t).To(Equal(target))
	})

	It("pulls a particle toward the target", func() {
		ps := []swarm.Particle{{X: 100, Y: 300}}
		integrators.Step(ps, target, strength, friction)
		Expect(ps[0].VX).To(BeNumerically(">", 0))
		Expect(ps[0].VY).To(Equal(0.0))
		Expect(ps[0].X).To(BeNumerically(">", 100))
	})

	It("keeps velocities bounded over a long run", func() {
		ps := swarm.Spawn(200, swarm.Viewport(800, 600), swarm.NewRand(7))
		for i := 0; i < 2000; i++ {
			integrators.Step(ps, target, strength, friction)
		}
		limit := strength / swarm.Epsilon / (1 - friction)
		for _, p := range ps {
			Expect(p.IsValid()).To(BeTrue())
			Expect(p.Speed()).To(BeNumerically("<=", limit))
		}
	})
})

var _ = Describe("Euler", func() {
	It("ignores elapsed time", func() {
		params := swarm.DefaultParams()
		target := swarm.Point{X: 400, Y: 300}
		slow := []swarm.Particle{{X: 10, Y: 10}}
		fast := []swarm.Particle{{X: 10, Y: 10}}

		e := integrators.NewEuler()
		e.Step(slow, target, params, 1.0/10)
		e.Step(fast, target, params, 1.0/240)

		Expect(slow).To(Equal(fast))
	})
})

var _ = Describe("ScaledEuler", func() {
	params := swarm.DefaultParams()
	target := swarm.Point{X: 400, Y: 300}

	It("matches Euler at the nominal tick rate", func() {
		a := []swarm.Particle{{X: 10, Y: 500, VX: 1}}
		b := []swarm.Particle{{X: 10, Y: 500, VX: 1}}

		integrators.NewEuler().Step(a, target, params, 1/params.TickRate)
		integrators.NewScaledEuler().Step(b, target, params, 1/params.TickRate)

		Expect(b[0].X).To(BeNumerically("~", a[0].X, 1e-12))
		Expect(b[0].Y).To(BeNumerically("~", a[0].Y, 1e-12))
		Expect(b[0].VX).To(BeNumerically("~", a[0].VX, 1e-12))
		Expect(b[0].VY).To(BeNumerically("~", a[0].VY, 1e-12))
	})

	It("does nothing for a zero or negative dt", func() {
		ps := []swarm.Particle{{X: 10, Y: 500, VX: 1}}
		before := ps[0]
		s := integrators.NewScaledEuler()
		s.Step(ps, target, params, 0)
		s.Step(ps, target, params, -1)
		Expect(ps[0]).To(Equal(before))
	})

	It("moves further for a longer frame", func() {
		short := []swarm.Particle{{X: 10, Y: 300}}
		long := []swarm.Particle{{X: 10, Y: 300}}
		s := integrators.NewScaledEuler()
		s.Step(short, target, params, 1/params.TickRate)
		s.Step(long, target, params, 2/params.TickRate)
		Expect(long[0].X).To(BeNumerically(">", short[0].X))
	})

	It("caps the multiplier for stalled frames", func() {
		stalled := []swarm.Particle{{X: 10, Y: 300}}
		frozen := []swarm.Particle{{X: 10, Y: 300}}
		s := integrators.NewScaledEuler()
		s.Step(stalled, target, params, 10)
		s.Step(frozen, target, params, 1000)
		Expect(frozen).To(Equal(stalled))
	})
})

var _ = Describe("Lookup", func() {
	It("resolves every registered name", func() {
		for _, name := range integrators.Names() {
			integ, err := integrators.Lookup(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(integ).NotTo(BeNil())
		}
	})

	It("defaults to the reference integrator", func() {
		integ, err := integrators.Lookup(integrators.Default)
		Expect(err).NotTo(HaveOccurred())
		Expect(integ).To(BeAssignableToTypeOf(&integrators.Euler{}))
	})

	It("rejects unknown names", func() {
		_, err := integrators.Lookup("rk4")
		Expect(err).To(MatchError(ContainSubstring("unknown integrator")))
	})
})
