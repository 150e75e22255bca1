package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the canvas and the stats panel.
type Theme struct {
	Name      string
	Bodies    lipgloss.Color
	Title     lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	ChartLine lipgloss.Color
}

var (
	ThemeGravitonic = Theme{
		Name:      "gravitonic",
		Bodies:    lipgloss.Color("#ffffff"),
		Title:     lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ff00ff"),
		Muted:     lipgloss.Color("#666688"),
		ChartLine: lipgloss.Color("49"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Bodies:    lipgloss.Color("#00ff00"),
		Title:     lipgloss.Color("#88ff88"),
		Accent:    lipgloss.Color("#00cc00"),
		Muted:     lipgloss.Color("#005500"),
		ChartLine: lipgloss.Color("#00cc00"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Bodies:    lipgloss.Color("#e0f0ff"),
		Title:     lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Muted:     lipgloss.Color("#4488aa"),
		ChartLine: lipgloss.Color("#0077be"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Bodies:    lipgloss.Color("#feca57"),
		Title:     lipgloss.Color("#ff6b6b"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Muted:     lipgloss.Color("#8b6b8c"),
		ChartLine: lipgloss.Color("#ff9ff3"),
	}

	Themes = []Theme{
		ThemeGravitonic,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// ThemeIndex returns the position of the named theme, or 0.
func ThemeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
