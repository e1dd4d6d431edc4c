package gui

import "github.com/san-kum/swarm/internal/swarm"

// Raster is an RGBA pixel buffer that doubles as a presenter. Points
// outside the buffer are clipped.
type Raster struct {
	Width, Height int
	Pix           []byte
}

func NewRaster(w, h int) *Raster {
	r := &Raster{Width: w, Height: h, Pix: make([]byte, w*h*4)}
	r.Clear()
	return r
}

// Clear paints the buffer opaque black.
func (r *Raster) Clear() {
	for i := 0; i < len(r.Pix); i += 4 {
		r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3] = 0, 0, 0, 0xff
	}
}

func (r *Raster) set(x, y int, c swarm.Color) {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return
	}
	i := (y*r.Width + x) * 4
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
}

func (r *Raster) DrawPoints(req swarm.DrawRequest) {
	r.Clear()
	size := max(req.Size, 1)
	for _, p := range req.Points {
		if p.X < 0 || p.Y < 0 {
			continue
		}
		x, y := int(p.X), int(p.Y)
		for dy := 0; dy < size; dy++ {
			for dx := 0; dx < size; dx++ {
				r.set(x+dx, y+dy, req.Color)
			}
		}
	}
}

// At returns the RGB value of a pixel.
func (r *Raster) At(x, y int) swarm.Color {
	i := (y*r.Width + x) * 4
	return swarm.Color{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2]}
}
