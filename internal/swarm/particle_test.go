package swarm_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/swarm/internal/swarm"
)

var _ = Describe("Spawn", func() {
	bounds := swarm.Rect{Left: -50, Right: 150, Bottom: 10, Top: 20}

	DescribeTable("returns exactly n particles inside bounds at rest",
		func(n int) {
			ps := swarm.Spawn(n, bounds, rand.New(rand.NewSource(3)))
			Expect(ps).To(HaveLen(n))
			for _, p := range ps {
				Expect(bounds.Contains(p.X, p.Y)).To(BeTrue(), "particle %+v outside %+v", p, bounds)
				Expect(p.VX).To(Equal(0.0))
				Expect(p.VY).To(Equal(0.0))
			}
		},
		Entry("none", 0),
		Entry("one", 1),
		Entry("reference count", swarm.DefaultParticleCount),
		Entry("large", 20000),
	)

	It("is reproducible for a fixed seed", func() {
		a := swarm.Spawn(100, bounds, rand.New(rand.NewSource(99)))
		b := swarm.Spawn(100, bounds, rand.New(rand.NewSource(99)))
		Expect(a).To(Equal(b))
	})

	It("differs across seeds", func() {
		a := swarm.Spawn(100, bounds, rand.New(rand.NewSource(1)))
		b := swarm.Spawn(100, bounds, rand.New(rand.NewSource(2)))
		Expect(a).NotTo(Equal(b))
	})

	It("treats a negative count as empty", func() {
		Expect(swarm.Spawn(-4, bounds, swarm.NewRand(1))).To(BeEmpty())
	})

	It("keeps a degenerate-width rectangle half-open", func() {
		tiny := swarm.Rect{Left: 1, Right: math.Nextafter(1, 2), Bottom: 0, Top: 1}
		for _, p := range swarm.Spawn(1000, tiny, swarm.NewRand(5)) {
			Expect(p.X).To(Equal(1.0))
		}
	})
})

var _ = Describe("Rect", func() {
	It("reports empty and zero rectangles", func() {
		Expect(swarm.Rect{}.IsZero()).To(BeTrue())
		Expect(swarm.Rect{}.Empty()).To(BeTrue())
		Expect(swarm.Rect{Left: 5, Right: 1, Bottom: 0, Top: 1}.Empty()).To(BeTrue())
		Expect(swarm.Rect{Left: 0, Right: math.Inf(1), Bottom: 0, Top: 1}.Empty()).To(BeTrue())
		Expect(swarm.Viewport(800, 600).Empty()).To(BeFalse())
	})

	It("excludes the right and top edges", func() {
		r := swarm.Viewport(10, 10)
		Expect(r.Contains(0, 0)).To(BeTrue())
		Expect(r.Contains(10, 5)).To(BeFalse())
		Expect(r.Contains(5, 10)).To(BeFalse())
	})

	It("computes its centre", func() {
		Expect(swarm.Viewport(800, 600).Center()).To(Equal(swarm.Point{X: 400, Y: 300}))
	})
})

var _ = Describe("Store", func() {
	var store *swarm.Store

	BeforeEach(func() {
		store = swarm.NewStore(64, swarm.Viewport(800, 600), swarm.NewRand(11))
	})

	It("exports positions in store order", func() {
		pts := store.Positions(nil)
		Expect(pts).To(HaveLen(store.Len()))
		for i, pt := range pts {
			p := store.At(i)
			Expect(pt).To(Equal(swarm.Point{X: p.X, Y: p.Y}))
		}
	})

	It("reuses the destination buffer", func() {
		buf := make([]swarm.Point, 0, 128)
		pts := store.Positions(buf)
		Expect(&pts[0]).To(BeIdenticalTo(&buf[:1][0]))
	})

	It("respawns to the same layout from the same seed", func() {
		first := store.Clone()
		store.Particles()[0].VX = 5
		store.Respawn(swarm.NewRand(11))
		Expect(store.Particles()).To(Equal(first))
	})

	It("never changes length", func() {
		n := store.Len()
		store.Respawn(swarm.NewRand(2))
		Expect(store.Len()).To(Equal(n))
	})

	It("detects non-finite particles", func() {
		Expect(store.IsValid()).To(BeTrue())
		store.Particles()[3].VY = math.NaN()
		Expect(store.IsValid()).To(BeFalse())
	})
})
