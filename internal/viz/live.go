package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/swarm/internal/config"
	"github.com/san-kum/swarm/internal/metrics"
	"github.com/san-kum/swarm/internal/swarm"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600

	// canvasStyle padding, used to map mouse cells back onto the canvas.
	canvasPadTop  = 1
	canvasPadLeft = 2
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(canvasPadTop, canvasPadLeft)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type TickMsg time.Time

// SaveFunc persists the current canvas and returns where it went.
type SaveFunc func(c *Canvas) (string, error)

// Model runs a swarm in the terminal. Mouse motion over the canvas moves
// the attractor.
type Model struct {
	cfg           *config.Config
	driver        *swarm.Driver
	canvas        *Canvas
	presenter     *CanvasPresenter
	energy        *metrics.KineticEnergy
	spread        *metrics.Spread
	energyHistory []float64
	spreadHistory []float64
	interval      time.Duration
	lastTick      time.Time
	running       bool
	showHelp      bool
	theme         Theme
	save          SaveFunc
	status        string
}

// NewModel builds the driver from cfg with a braille canvas as presenter.
func NewModel(cfg *config.Config) (Model, error) {
	canvas := NewCanvas(width, height)
	presenter := NewCanvasPresenter(cfg.Viewport(), canvas)

	driver, err := cfg.NewDriver(presenter)
	if err != nil {
		return Model{}, err
	}
	driver.Present()

	m := Model{
		cfg:           cfg,
		driver:        driver,
		canvas:        canvas,
		presenter:     presenter,
		energy:        metrics.NewKineticEnergy(),
		spread:        metrics.NewSpread(),
		energyHistory: make([]float64, 0, historyCapacity),
		spreadHistory: make([]float64, 0, historyCapacity),
		interval:      time.Duration(float64(time.Second) / cfg.TickRate),
		running:       true,
		theme:         Themes[0],
	}
	m.presenter.Mark(driver.Attractor().Position())
	return m, nil
}

// WithTheme selects the starting theme; unknown names get the first one.
func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	return m
}

// WithSave enables the "s" key.
func (m Model) WithSave(fn SaveFunc) Model {
	m.save = fn
	return m
}

func (m Model) Driver() *swarm.Driver { return m.driver }
func (m Model) Canvas() *Canvas       { return m.canvas }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "s":
			m.saveCanvas()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			m.pointer(msg.X, msg.Y)
		}
	case TickMsg:
		dt := m.elapsed(time.Time(msg))
		if m.running {
			m.step(dt)
		}
		return m, m.tick()
	}
	return m, nil
}

// pointer maps a terminal cell to simulation space. Cells outside the
// canvas are ignored.
func (m *Model) pointer(x, y int) {
	if m.showHelp {
		return
	}
	col, row := x-canvasPadLeft, y-canvasPadTop
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return
	}
	pt := m.presenter.Projection().FromCell(col, row)
	if err := m.driver.PointerMoved(pt.X, pt.Y); err != nil {
		log.Printf("pointer rejected: %v", err)
		return
	}
	if !m.running {
		m.redraw()
	}
}

// elapsed returns the seconds since the previous tick, or the nominal
// interval when there is no usable previous timestamp.
func (m *Model) elapsed(now time.Time) float64 {
	prev := m.lastTick
	m.lastTick = now
	if prev.IsZero() || now.IsZero() || !now.After(prev) {
		return 1 / m.cfg.TickRate
	}
	return now.Sub(prev).Seconds()
}

func (m *Model) step(dt float64) {
	m.driver.Tick(dt)
	m.presenter.Mark(m.driver.Attractor().Position())

	ps := m.driver.Store().Particles()
	target := m.driver.Attractor().Position()
	m.energy.Observe(ps, target, m.driver.Ticks())
	m.spread.Observe(ps, target, m.driver.Ticks())
	m.energyHistory = appendCapped(m.energyHistory, m.energy.Current())
	m.spreadHistory = appendCapped(m.spreadHistory, m.spread.Value())
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func (m *Model) redraw() {
	m.driver.Present()
	m.presenter.Mark(m.driver.Attractor().Position())
}

// reset respawns the swarm from the configured seed. The attractor stays.
func (m *Model) reset() {
	m.driver.Reset(m.cfg.Rand())
	m.energy.Reset()
	m.spread.Reset()
	m.energyHistory = m.energyHistory[:0]
	m.spreadHistory = m.spreadHistory[:0]
	m.status = ""
	m.redraw()
}

func (m *Model) saveCanvas() {
	if m.save == nil {
		return
	}
	name, err := m.save(m.canvas)
	if err != nil {
		log.Printf("save canvas: %v", err)
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = "saved " + name
}

// View renders the TUI interface.
func (m Model) View() string {
	pointStyle := canvasStyle.Foreground(ColorOf(m.presenter.Color())).Background(m.theme.Background)
	canvasView := pointStyle.Render(strings.TrimSuffix(m.canvas.String(), "\n"))

	var s strings.Builder
	s.WriteString(GradientText("SWARM", m.theme.Primary, m.theme.Secondary) + "\n")
	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(chart) + "\n\n")
	}

	target := m.driver.Attractor().Position()
	rows := [][2]string{
		{"Tick", fmt.Sprintf("%d", m.driver.Ticks())},
		{"Particles", fmt.Sprintf("%d (%d visible)", m.driver.Store().Len(), m.presenter.Drawn())},
		{"Attractor", fmt.Sprintf("%.0f, %.0f", target.X, target.Y)},
		{"Energy", fmt.Sprintf("%.4f", m.energy.Current())},
		{"Spread", fmt.Sprintf("%.1f", m.spread.Value())},
		{"Friction", fmt.Sprintf("%.3f", m.driver.Params().Friction)},
		{"Strength", fmt.Sprintf("%.3f", m.driver.Params().Strength)},
		{"Theme", m.theme.Name},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r[0]) + valueStyle.Render(r[1]) + "\n")
	}
	s.WriteString("\n" + SparklineChart(m.spreadHistory, 30) + "\n")

	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Accent).Render(m.status) + "\n")
	}

	help := "\n─────────────────────\nSP:Pause R:Reset Q:Quit\nT:Theme  S:Save SVG ?:Help"
	s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Muted).Render(help))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Mouse    - Move the attractor       ║
║  Space    - Pause/Resume simulation  ║
║  R        - Respawn the swarm        ║
║  T        - Cycle themes             ║
║  S        - Save canvas as SVG       ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the terminal view with mouse motion reporting enabled.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
