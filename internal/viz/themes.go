package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the chrome around the swarm. Particles keep the configured colour.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Muted      lipgloss.Color
}

var Themes = []Theme{
	{
		Name:       "night",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#7f7fff"),
		Accent:     lipgloss.Color("#ff3c3c"),
		Background: lipgloss.Color("#000000"),
		Muted:      lipgloss.Color("#5a5a5a"),
	},
	{
		Name:       "phosphor",
		Primary:    lipgloss.Color("#33ff66"),
		Secondary:  lipgloss.Color("#1f9e40"),
		Accent:     lipgloss.Color("#ccffcc"),
		Background: lipgloss.Color("#001a08"),
		Muted:      lipgloss.Color("#0f5a22"),
	},
	{
		Name:       "ember",
		Primary:    lipgloss.Color("#ffb347"),
		Secondary:  lipgloss.Color("#ff5e3a"),
		Accent:     lipgloss.Color("#ffe29a"),
		Background: lipgloss.Color("#1a0a05"),
		Muted:      lipgloss.Color("#7a4a30"),
	},
	{
		Name:       "deep",
		Primary:    lipgloss.Color("#00bfff"),
		Secondary:  lipgloss.Color("#0066cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#00101f"),
		Muted:      lipgloss.Color("#35607f"),
	},
}

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
