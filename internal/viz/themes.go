package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the table colors for the TUI
type Theme struct {
	Name   string
	Felt   lipgloss.Color
	Accent lipgloss.Color
	Aim    lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

// Available themes
var (
	ThemeFelt = Theme{
		Name:   "felt",
		Felt:   lipgloss.Color("#008000"), // Classic green
		Accent: lipgloss.Color("#00ffff"),
		Aim:    lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
	}

	ThemeSnooker = Theme{
		Name:   "snooker",
		Felt:   lipgloss.Color("#0b3d0b"),
		Accent: lipgloss.Color("#ffd700"),
		Aim:    lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#f0f0e0"),
		Muted:  lipgloss.Color("#6b8e6b"),
	}

	ThemeTournament = Theme{
		Name:   "tournament",
		Felt:   lipgloss.Color("#1f4e8c"), // Tournament blue
		Accent: lipgloss.Color("#ff9ff3"),
		Aim:    lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	ThemeNight = Theme{
		Name:   "night",
		Felt:   lipgloss.Color("#0a0a0a"),
		Accent: lipgloss.Color("#ff00ff"),
		Aim:    lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
	}

	// Default theme
	CurrentTheme = ThemeFelt

	// All available themes
	Themes = []Theme{
		ThemeFelt,
		ThemeSnooker,
		ThemeTournament,
		ThemeNight,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeFelt
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeFelt
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
