package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/taskdash/internal/models"
)

// Palette holds the colours of one dashboard theme
type Palette struct {
	// Base Colors
	CardBackground string
	Border         string

	// Text Colors
	PrimaryText   string
	SecondaryText string
	DisabledText  string
	Placeholder   string
	HelpText      string

	// Accent Colors
	AccentMain   string
	AccentBright string

	// State Colors
	Error   string
	Success string
	Warning string
}

// DarkPalette is the purple-on-dark theme
var DarkPalette = Palette{
	CardBackground: "#1B1530", // Dark purple
	Border:         "#3A3F55", // Grey-blue
	PrimaryText:    "#E6EAF2",
	SecondaryText:  "#B1B8C7",
	DisabledText:   "#6D7383",
	Placeholder:    "#B1B8C7",
	HelpText:       "240",
	AccentMain:     "#7C3AED",
	AccentBright:   "#A78BFA",
	Error:          "#EF4444",
	Success:        "#22C55E",
	Warning:        "#F59E0B",
}

// LightPalette keeps the accents and darkens the text for light terminals
var LightPalette = Palette{
	CardBackground: "#F3F0FF",
	Border:         "#C4C9D8",
	PrimaryText:    "#1F2330",
	SecondaryText:  "#4B5263",
	DisabledText:   "#9AA0AE",
	Placeholder:    "#7A8194",
	HelpText:       "244",
	AccentMain:     "#6D28D9",
	AccentBright:   "#7C3AED",
	Error:          "#DC2626",
	Success:        "#16A34A",
	Warning:        "#D97706",
}

// PaletteFor returns the palette of a theme
func PaletteFor(theme models.Theme) Palette {
	if theme == models.ThemeDark {
		return DarkPalette
	}
	return LightPalette
}

// StatusColor mirrors the CLI: green done, yellow in progress, red not started
func (p Palette) StatusColor(s models.Status) lipgloss.Color {
	switch s {
	case models.StatusDone:
		return lipgloss.Color(p.Success)
	case models.StatusInProgress:
		return lipgloss.Color(p.Warning)
	}
	return lipgloss.Color(p.Error)
}

func (p Palette) fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}
