package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/swarm/internal/config"
)

var presetInfo = map[string]string{
	"reference": "2000 particles, the classic",
	"dense":     "20k particles",
	"crowd":     "50k particles",
	"syrup":     "heavy damping",
	"orbit":     "light damping, slingshots",
	"corner":    "spawned in one corner",
	"wallclock": "frame-rate independent",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// param is one tunable field on the config screen.
type param struct {
	name   string
	get    func(c *config.Config) float64
	adjust func(c *config.Config, dir int)
}

var params = []param{
	{
		name: "particles",
		get:  func(c *config.Config) float64 { return float64(c.ParticleCount) },
		adjust: func(c *config.Config, dir int) {
			c.ParticleCount = max(100, c.ParticleCount+dir*500)
		},
	},
	{
		name: "friction",
		get:  func(c *config.Config) float64 { return c.Friction },
		adjust: func(c *config.Config, dir int) {
			c.Friction = min(0.999, max(0.5, c.Friction+float64(dir)*0.005))
		},
	},
	{
		name: "strength",
		get:  func(c *config.Config) float64 { return c.Strength },
		adjust: func(c *config.Config, dir int) {
			c.Strength = max(0, c.Strength+float64(dir)*0.05)
		},
	},
	{
		name: "seed",
		get:  func(c *config.Config) float64 { return float64(c.Seed) },
		adjust: func(c *config.Config, dir int) {
			c.Seed = max(0, c.Seed+int64(dir))
		},
	},
}

type model struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	err           error
	save          SaveFunc
	liveModel     Model
}

// NewInteractiveApp starts on a preset menu; the chosen preset can be tuned
// before the swarm starts.
func NewInteractiveApp(save SaveFunc) *model {
	return &model{
		state:   stateMenu,
		presets: config.ListPresets(),
		save:    save,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		cfg := config.GetPreset(m.selected)
		if cfg == nil {
			m.err = fmt.Errorf("unknown preset: %s", m.selected)
			return m, nil
		}
		m.cfg, m.err, m.paramCursor, m.state = cfg, nil, 0, stateConfig
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "left", "h":
		params[m.paramCursor].adjust(m.cfg, -1)
	case "right", "l":
		params[m.paramCursor].adjust(m.cfg, 1)
	case "enter", " ", "s":
		return m.start()
	}
	return m, nil
}

func (m model) start() (model, tea.Cmd) {
	live, err := NewModel(m.cfg)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.liveModel = live.WithSave(m.save)
	m.err, m.state = nil, stateSim
	return m, m.liveModel.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + idleStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("SWARM") + "\n    " + subStyle.Render("particles chasing the pointer") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), activeStyle.Render(fmt.Sprintf("%-12s", name)), descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleStyle.Render(fmt.Sprintf("  %-12s", name)), idleStyle.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render(strings.ToUpper(m.selected)) + "\n    " + subStyle.Render(presetInfo[m.selected]) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, p := range params {
		valStr := fmt.Sprintf("%8.3f", p.get(m.cfg))
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), activeStyle.Render(fmt.Sprintf("%-10s", p.name)), descStyle.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-10s", p.name)), idleStyle.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "select", "h/l", "adjust", "enter", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive starts the preset menu.
func RunInteractive(save SaveFunc) error {
	_, err := tea.NewProgram(NewInteractiveApp(save), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
