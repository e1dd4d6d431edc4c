package swarm

// Attractor is the target every particle is pulled toward. It has exactly one
// writer (pointer input) and one reader (the integrator), so it is not locked.
type Attractor struct {
	pos Point
}

func NewAttractor(x, y float64) *Attractor {
	return &Attractor{pos: Point{X: x, Y: y}}
}

// Set overwrites the position. No clamping, no smoothing.
func (a *Attractor) Set(x, y float64) {
	a.pos = Point{X: x, Y: y}
}

func (a *Attractor) Position() Point { return a.pos }
