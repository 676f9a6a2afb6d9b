package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the live view.
type Theme struct {
	Name    string
	Surface lipgloss.Color // free-surface profile
	Level   lipgloss.Color // still-water line
	Graph   lipgloss.Color // elevation history
	Accent  lipgloss.Color
	Muted   lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:    "ocean",
		Surface: lipgloss.Color("#00a8cc"),
		Level:   lipgloss.Color("#335577"),
		Graph:   lipgloss.Color("#00ff88"),
		Accent:  lipgloss.Color("#ffd700"),
		Muted:   lipgloss.Color("#4488aa"),
	}

	ThemeStorm = Theme{
		Name:    "storm",
		Surface: lipgloss.Color("#c0c8d0"),
		Level:   lipgloss.Color("#444c55"),
		Graph:   lipgloss.Color("#ffcc00"),
		Accent:  lipgloss.Color("#ff4757"),
		Muted:   lipgloss.Color("#777f88"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Surface: lipgloss.Color("#ffffff"),
		Level:   lipgloss.Color("#666666"),
		Graph:   lipgloss.Color("#cccccc"),
		Accent:  lipgloss.Color("#0088ff"),
		Muted:   lipgloss.Color("#888888"),
	}

	Themes = []Theme{ThemeOcean, ThemeStorm, ThemeMinimal}
)

// LookupTheme returns the theme with the given name.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// GetTheme returns a theme by name, falling back to ocean.
func GetTheme(name string) Theme {
	if t, ok := LookupTheme(name); ok {
		return t
	}
	return ThemeOcean
}

// NextTheme returns the theme after t in Themes.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames lists the theme names in cycling order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
