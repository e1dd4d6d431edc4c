package swarm

import (
	"math"
	"math/rand"
)

// Driver is the explicit simulation context: it owns the store, the
// attractor and the presenter, and runs one frame per Tick.
type Driver struct {
	store      *Store
	attractor  *Attractor
	integrator Integrator
	params     Params
	presenter  Presenter
	color      Color
	size       int
	snapshot   []Point
	ticks      int
}

// NewDriver wires a simulation. presenter may be nil for pure stepping.
func NewDriver(store *Store, attractor *Attractor, integ Integrator, params Params, presenter Presenter) *Driver {
	return &Driver{
		store:      store,
		attractor:  attractor,
		integrator: integ,
		params:     params,
		presenter:  presenter,
		color:      White,
		size:       1,
		snapshot:   make([]Point, store.Len()),
	}
}

// SetStyle sets the colour and point size handed to the presenter.
func (d *Driver) SetStyle(c Color, size int) {
	d.color = c
	if size < 1 {
		size = 1
	}
	d.size = size
}

// SetPresenter replaces the presenter. nil disables drawing.
func (d *Driver) SetPresenter(p Presenter) { d.presenter = p }

// PointerMoved forwards a pointer-motion event to the attractor. Non-finite
// coordinates are rejected and the previous position is kept.
func (d *Driver) PointerMoved(x, y float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return ErrInvalidPointer
	}
	d.attractor.Set(x, y)
	return nil
}

// Tick advances the simulation one step and presents the result. The
// attractor position is read once, before stepping.
func (d *Driver) Tick(dt float64) {
	target := d.attractor.Position()
	d.integrator.Step(d.store.Particles(), target, d.params, dt)
	d.ticks++
	d.Present()
}

// Present hands the current positions to the presenter without stepping.
func (d *Driver) Present() {
	if d.presenter == nil {
		return
	}
	d.snapshot = d.store.Positions(d.snapshot)
	d.presenter.DrawPoints(DrawRequest{Points: d.snapshot, Color: d.color, Size: d.size})
}

// Reset respawns the particles from rng and zeroes the tick counter. The
// attractor keeps its position.
func (d *Driver) Reset(rng *rand.Rand) {
	d.store.Respawn(rng)
	d.ticks = 0
}

func (d *Driver) Store() *Store          { return d.store }
func (d *Driver) Attractor() *Attractor  { return d.attractor }
func (d *Driver) Params() Params         { return d.params }
func (d *Driver) Ticks() int             { return d.ticks }
func (d *Driver) Integrator() Integrator { return d.integrator }
