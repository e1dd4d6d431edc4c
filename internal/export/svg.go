package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/swarm/internal/swarm"
	"github.com/san-kum/swarm/internal/viz"
)

func hex(c swarm.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// SnapshotToSVG draws one frame at window scale on a black background.
// Points outside view are dropped; a nil target draws no marker.
func SnapshotToSVG(points []swarm.Point, view swarm.Rect, color swarm.Color, size int, target *swarm.Point) string {
	if size < 1 {
		size = 1
	}
	w, h := view.Width(), view.Height()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%g %g %g %g">
<rect x="%g" y="%g" width="%g" height="%g" fill="#000000"/>
<g fill="%s">
`, w, h, view.Left, view.Bottom, w, h, view.Left, view.Bottom, w, h, hex(color)))

	for _, p := range points {
		if !view.Contains(p.X, p.Y) {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%d" height="%d"/>
`, p.X, p.Y, size, size))
	}
	sb.WriteString("</g>\n")

	if target != nil {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="4" fill="none" stroke="#ff0000"/>
`, target.X, target.Y))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG draws every lit braille dot as a circle, scale units apart.
func CanvasToSVG(canvas *viz.Canvas, scale float64, color swarm.Color) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
<g fill="%s">
`, width, height, width, height, hex(color)))

	r := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.Dot(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, r))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots one metric series as a polyline, first sample on the left.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
