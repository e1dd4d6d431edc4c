package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/swarm/internal/swarm"
)

// Path scripts the pointer for headless runs.
type Path interface {
	At(tick int) swarm.Point
}

// Fixed holds the pointer still.
type Fixed struct {
	P swarm.Point
}

func (f Fixed) At(int) swarm.Point { return f.P }

// Circle sweeps the pointer around Center once every Period ticks.
type Circle struct {
	Center swarm.Point
	Radius float64
	Period int
}

func (c Circle) At(tick int) swarm.Point {
	a := phase(tick, c.Period)
	return swarm.Point{
		X: c.Center.X + c.Radius*math.Cos(a),
		Y: c.Center.Y + c.Radius*math.Sin(a),
	}
}

// Lissajous traces a 3:2 Lissajous curve inside a RX×RY box.
type Lissajous struct {
	Center swarm.Point
	RX, RY float64
	Period int
}

func (l Lissajous) At(tick int) swarm.Point {
	a := phase(tick, l.Period)
	return swarm.Point{
		X: l.Center.X + l.RX*math.Sin(3*a+math.Pi/2),
		Y: l.Center.Y + l.RY*math.Sin(2*a),
	}
}

// Figure8 is a lemniscate of Gerono.
type Figure8 struct {
	Center swarm.Point
	Radius float64
	Period int
}

func (f Figure8) At(tick int) swarm.Point {
	a := phase(tick, f.Period)
	return swarm.Point{
		X: f.Center.X + f.Radius*math.Cos(a),
		Y: f.Center.Y + f.Radius*math.Sin(a)*math.Cos(a),
	}
}

func phase(tick, period int) float64 {
	if period <= 0 {
		return 0
	}
	return 2 * math.Pi * float64(tick%period) / float64(period)
}

const defaultPeriod = 360

var paths = map[string]func(view swarm.Rect, radius float64) Path{
	"fixed": func(view swarm.Rect, _ float64) Path {
		return Fixed{P: view.Center()}
	},
	"circle": func(view swarm.Rect, r float64) Path {
		return Circle{Center: view.Center(), Radius: r, Period: defaultPeriod}
	},
	"lissajous": func(view swarm.Rect, r float64) Path {
		return Lissajous{Center: view.Center(), RX: r * view.Width() / view.Height(), RY: r, Period: 2 * defaultPeriod}
	},
	"figure8": func(view swarm.Rect, r float64) Path {
		return Figure8{Center: view.Center(), Radius: r, Period: defaultPeriod}
	},
}

// NewPath builds a named path centred in view. A non-positive radius
// defaults to a third of the shorter side.
func NewPath(name string, view swarm.Rect, radius float64) (Path, error) {
	fn, ok := paths[name]
	if !ok {
		return nil, fmt.Errorf("unknown path: %s (available: %v)", name, PathNames())
	}
	if radius <= 0 {
		radius = math.Min(view.Width(), view.Height()) / 3
	}
	return fn(view, radius), nil
}

func PathNames() []string {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
