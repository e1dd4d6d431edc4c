package sim

import (
	"math"
	"testing"

	"github.com/san-kum/swarm/internal/swarm"
)

func TestNewPath(t *testing.T) {
	view := swarm.Viewport(800, 600)

	for _, name := range PathNames() {
		t.Run(name, func(t *testing.T) {
			p, err := NewPath(name, view, 0)
			if err != nil {
				t.Fatalf("NewPath(%q) failed: %v", name, err)
			}
			for tick := 0; tick < 720; tick += 7 {
				pt := p.At(tick)
				if math.IsNaN(pt.X) || math.IsNaN(pt.Y) {
					t.Fatalf("tick %d: NaN point", tick)
				}
				if !view.Contains(pt.X, pt.Y) {
					t.Fatalf("tick %d: %+v outside the viewport", tick, pt)
				}
			}
		})
	}
}

func TestPathNames(t *testing.T) {
	want := []string{"circle", "figure8", "fixed", "lissajous"}
	got := PathNames()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestCirclePath(t *testing.T) {
	c := Circle{Center: swarm.Point{X: 400, Y: 300}, Radius: 100, Period: 4}

	tests := []struct {
		tick int
		want swarm.Point
	}{
		{0, swarm.Point{X: 500, Y: 300}},
		{1, swarm.Point{X: 400, Y: 400}},
		{2, swarm.Point{X: 300, Y: 300}},
		{4, swarm.Point{X: 500, Y: 300}},
	}

	for _, tt := range tests {
		got := c.At(tt.tick)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("tick %d: expected %+v, got %+v", tt.tick, tt.want, got)
		}
	}
}

func TestFixedPath(t *testing.T) {
	p, _ := NewPath("fixed", swarm.Viewport(800, 600), 0)
	if got := p.At(123); got != (swarm.Point{X: 400, Y: 300}) {
		t.Errorf("expected the viewport centre, got %+v", got)
	}
}

func TestNewPathUnknown(t *testing.T) {
	if _, err := NewPath("spiral", swarm.Viewport(800, 600), 0); err == nil {
		t.Error("expected error for unknown path")
	}
}
