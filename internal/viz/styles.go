package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/swarm/internal/config"
	"github.com/san-kum/swarm/internal/swarm"
)

var (
	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

var sparkBars = []rune("▁▂▃▄▅▆▇█")

// ColorOf converts a presenter colour to a lipgloss colour.
func ColorOf(c swarm.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// rgbOf resolves a lipgloss hex colour, white when it is not #rrggbb.
func rgbOf(c lipgloss.Color) swarm.Color {
	rgb, err := config.ParseColor(string(c))
	if err != nil {
		return swarm.White
	}
	return rgb
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + t*(float64(b)-float64(a)))
}

// GradientText colours each rune of text on a line from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, to := rgbOf(start), rgbOf(end)

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := swarm.Color{R: lerp(from.R, to.R, t), G: lerp(from.G, to.G, t), B: lerp(from.B, to.B, t)}
		b.WriteString(lipgloss.NewStyle().Foreground(ColorOf(c)).Render(string(r)))
	}
	return b.String()
}

// SparklineChart renders the last width values as bars scaled to their own
// range, coloured by height.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		norm := (v - lo) / span
		bar := string(sparkBars[max(0, min(int(norm*float64(len(sparkBars)-1)), len(sparkBars)-1))])
		switch {
		case norm > 0.7:
			b.WriteString(SparkHigh.Render(bar))
		case norm > 0.3:
			b.WriteString(SparkMid.Render(bar))
		default:
			b.WriteString(SparkLow.Render(bar))
		}
	}
	return b.String()
}
