package viz

import (
	"math"

	"github.com/san-kum/swarm/internal/swarm"
)

// Projection maps simulation space onto canvas sub-pixels. Both have y
// growing downwards, like the window the swarm was built for.
type Projection struct {
	View   swarm.Rect
	Canvas *Canvas
}

func (p Projection) subSize() (float64, float64) {
	return float64(p.Canvas.Width * 2), float64(p.Canvas.Height * 4)
}

// ToCanvas returns the sub-pixel for a point and whether it is on the canvas.
func (p Projection) ToCanvas(pt swarm.Point) (int, int, bool) {
	if !p.View.Contains(pt.X, pt.Y) {
		return 0, 0, false
	}
	sw, sh := p.subSize()
	x := int(math.Floor((pt.X - p.View.Left) / p.View.Width() * sw))
	y := int(math.Floor((pt.Y - p.View.Bottom) / p.View.Height() * sh))
	return x, y, true
}

// FromCell returns the simulation point at the centre of a terminal cell.
func (p Projection) FromCell(col, row int) swarm.Point {
	sw, sh := p.subSize()
	sx := float64(col*2) + 1
	sy := float64(row*4) + 2
	return swarm.Point{
		X: p.View.Left + sx/sw*p.View.Width(),
		Y: p.View.Bottom + sy/sh*p.View.Height(),
	}
}

// CanvasPresenter draws every frame onto a braille canvas. Points outside
// the view are dropped.
type CanvasPresenter struct {
	proj  Projection
	color swarm.Color
	drawn int
}

func NewCanvasPresenter(view swarm.Rect, c *Canvas) *CanvasPresenter {
	return &CanvasPresenter{proj: Projection{View: view, Canvas: c}, color: swarm.White}
}

func (p *CanvasPresenter) DrawPoints(req swarm.DrawRequest) {
	p.proj.Canvas.Clear()
	p.color = req.Color
	p.drawn = 0
	for _, pt := range req.Points {
		x, y, ok := p.proj.ToCanvas(pt)
		if !ok {
			continue
		}
		p.proj.Canvas.Fill(x, y, req.Size)
		p.drawn++
	}
}

// Mark draws a small cross over pt, used for the attractor.
func (p *CanvasPresenter) Mark(pt swarm.Point) {
	x, y, ok := p.proj.ToCanvas(pt)
	if !ok {
		return
	}
	p.proj.Canvas.DrawLine(x-2, y, x+2, y)
	p.proj.Canvas.DrawLine(x, y-2, x, y+2)
}

func (p *CanvasPresenter) Projection() Projection { return p.proj }
func (p *CanvasPresenter) Color() swarm.Color     { return p.color }

// Drawn is the number of points that landed on the canvas last frame.
func (p *CanvasPresenter) Drawn() int { return p.drawn }
