package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kestrelhq/badgehunt/internal/badge"
)

// Theme holds every style the UI renders with. Two palettes exist, dark
// and light, switchable at runtime.
type Theme struct {
	Name string

	Title     lipgloss.Style
	TabActive lipgloss.Style
	Tab       lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Owned     lipgloss.Style
	Detail    lipgloss.Style
	ChatUser  lipgloss.Style
	ChatBot   lipgloss.Style

	barFilled lipgloss.Style
	barEmpty  lipgloss.Style
}

var rarityColors = map[badge.Rarity]lipgloss.Color{
	badge.RarityCommon:    "245",
	badge.RarityRare:      "39",
	badge.RarityEpic:      "129",
	badge.RarityLegendary: "214",
}

// Dark is the default palette.
func Dark() Theme {
	return Theme{
		Name:      "dark",
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		TabActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Owned:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Detail:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("57")).Padding(1, 2),
		ChatUser:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		ChatBot:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		barFilled: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		barEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

// Light adapts the palette for light terminal backgrounds.
func Light() Theme {
	return Theme{
		Name:      "light",
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("90")),
		TabActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("90")).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("26")),
		Owned:     lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Detail:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("90")).Padding(1, 2),
		ChatUser:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("26")),
		ChatBot:   lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		barFilled: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		barEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}

// ByName resolves a theme preference, defaulting to dark.
func ByName(name string) Theme {
	if name == "light" {
		return Light()
	}
	return Dark()
}

// Rarity renders a rarity label in its signature color.
func (t Theme) Rarity(r badge.Rarity) string {
	color, ok := rarityColors[r]
	if !ok {
		color = rarityColors[badge.RarityCommon]
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(r))
}

// ProgressBar renders a fixed-width bar for a 0-100 percentage.
func (t Theme) ProgressBar(percent float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return fmt.Sprintf("%s%s %3.0f%%",
		t.barFilled.Render(strings.Repeat("█", filled)),
		t.barEmpty.Render(strings.Repeat("░", width-filled)),
		percent)
}
