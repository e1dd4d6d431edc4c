package swarm_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/swarm/internal/integrators"
	"github.com/san-kum/swarm/internal/swarm"
)

type capture struct {
	calls int
	last  swarm.DrawRequest
	copy  []swarm.Point
}

func (c *capture) DrawPoints(req swarm.DrawRequest) {
	c.calls++
	c.last = req
	c.copy = append(c.copy[:0], req.Points...)
}

var _ = Describe("Attractor", func() {
	It("overwrites its position unconditionally", func() {
		a := swarm.NewAttractor(1, 2)
		a.Set(-1e9, 1e9)
		Expect(a.Position()).To(Equal(swarm.Point{X: -1e9, Y: 1e9}))
	})
})

var _ = Describe("Driver", func() {
	var (
		store  *swarm.Store
		att    *swarm.Attractor
		pres   *capture
		driver *swarm.Driver
	)

	BeforeEach(func() {
		store = swarm.StoreFrom([]swarm.Particle{{X: 400, Y: 400}, {X: 100, Y: 300}})
		att = swarm.NewAttractor(400, 300)
		pres = &capture{}
		driver = swarm.NewDriver(store, att, integrators.NewEuler(), swarm.DefaultParams(), pres)
	})

	It("steps then presents once per tick", func() {
		driver.Tick(1.0 / 60)
		Expect(pres.calls).To(Equal(1))
		Expect(driver.Ticks()).To(Equal(1))
		Expect(pres.copy).To(HaveLen(2))
		Expect(pres.copy[0].Y).To(BeNumerically("~", 399.9970658712, 1e-6))
		Expect(pres.last.Color).To(Equal(swarm.White))
		Expect(pres.last.Size).To(Equal(1))
	})

	It("uses the most recent pointer position on the next tick", func() {
		Expect(driver.PointerMoved(400, 800)).To(Succeed())
		driver.Tick(1.0 / 60)
		Expect(store.At(0).VY).To(BeNumerically(">", 0))
		Expect(store.At(0).VX).To(Equal(0.0))

		Expect(driver.PointerMoved(0, 400)).To(Succeed())
		before := store.At(0).VX
		driver.Tick(1.0 / 60)
		Expect(store.At(0).VX).To(BeNumerically("<", before))
	})

	It("keeps the previous target when no pointer event arrives", func() {
		driver.PointerMoved(10, 20)
		driver.Tick(1.0 / 60)
		driver.Tick(1.0 / 60)
		Expect(att.Position()).To(Equal(swarm.Point{X: 10, Y: 20}))
	})

	It("rejects non-finite pointer positions", func() {
		for _, bad := range [][2]float64{{math.NaN(), 0}, {0, math.Inf(1)}, {math.Inf(-1), math.NaN()}} {
			err := driver.PointerMoved(bad[0], bad[1])
			Expect(errors.Is(err, swarm.ErrInvalidPointer)).To(BeTrue())
		}
		Expect(att.Position()).To(Equal(swarm.Point{X: 400, Y: 300}))
	})

	It("passes style settings to the presenter", func() {
		driver.SetStyle(swarm.Color{R: 255}, 0)
		driver.Present()
		Expect(pres.last.Color).To(Equal(swarm.Color{R: 255}))
		Expect(pres.last.Size).To(Equal(1))
		Expect(driver.Ticks()).To(Equal(0))
	})

	It("steps without a presenter", func() {
		driver.SetPresenter(nil)
		Expect(func() { driver.Tick(1.0 / 60) }).NotTo(Panic())
		Expect(store.At(0).Y).To(BeNumerically("<", 400.0))
	})

	It("accepts a function as presenter", func() {
		var n int
		driver.SetPresenter(swarm.PresenterFunc(func(req swarm.DrawRequest) { n = len(req.Points) }))
		driver.Tick(1.0 / 60)
		Expect(n).To(Equal(2))
	})
})

var _ = Describe("Params", func() {
	It("accepts the defaults", func() {
		Expect(swarm.DefaultParams().Validate()).To(Succeed())
	})

	DescribeTable("rejects out-of-range constants",
		func(mutate func(*swarm.Params), field string) {
			p := swarm.DefaultParams()
			mutate(&p)
			err := p.Validate()
			Expect(errors.Is(err, swarm.ErrInvalidConfig)).To(BeTrue())
			var cerr *swarm.ConfigError
			Expect(errors.As(err, &cerr)).To(BeTrue())
			Expect(cerr.Field).To(Equal(field))
		},
		Entry("friction of one", func(p *swarm.Params) { p.Friction = 1 }, "friction"),
		Entry("zero friction", func(p *swarm.Params) { p.Friction = 0 }, "friction"),
		Entry("NaN friction", func(p *swarm.Params) { p.Friction = math.NaN() }, "friction"),
		Entry("infinite strength", func(p *swarm.Params) { p.Strength = math.Inf(1) }, "strength"),
		Entry("zero tick rate", func(p *swarm.Params) { p.TickRate = 0 }, "tick_rate"),
	)
})
