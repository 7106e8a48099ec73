package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilechain/internal/core"
)

// Theme holds every style the shell draws with.
type Theme struct {
	Name string

	// Screen cell colors, indexed by core.Color
	Colors map[core.Color]lipgloss.Color

	// Menus
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuStars       lipgloss.Style
	Controls        lipgloss.Style

	// Scoreboard
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	Border        lipgloss.Color
	Muted         lipgloss.Style
}

// ClassicTheme returns the default theme.
func ClassicTheme() Theme {
	return Theme{
		Name: "classic",
		Colors: map[core.Color]lipgloss.Color{
			core.ColorRed:          "196",
			core.ColorGreen:        "46",
			core.ColorYellow:       "226",
			core.ColorBlue:         "33",
			core.ColorMagenta:      "135",
			core.ColorCyan:         "51",
			core.ColorWhite:        "252",
			core.ColorOrange:       "208",
			core.ColorGray:         "240",
			core.ColorBrightYellow: "229",
			core.ColorBrightWhite:  "255",
		},

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuStars:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		Controls:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		TableHeader:   lipgloss.NewStyle().Bold(true),
		TableSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Border:        lipgloss.Color("240"),
		Muted:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// NeonTheme returns a saturated theme.
func NeonTheme() Theme {
	t := ClassicTheme()
	t.Name = "neon"
	t.Colors[core.ColorRed] = "199"
	t.Colors[core.ColorGreen] = "118"
	t.Colors[core.ColorYellow] = "227"
	t.Colors[core.ColorBlue] = "87"
	t.Colors[core.ColorMagenta] = "171"
	t.Colors[core.ColorOrange] = "214"
	t.MenuTitle = t.MenuTitle.Foreground(lipgloss.Color("199"))
	return t
}

// PastelTheme returns a softer theme.
func PastelTheme() Theme {
	t := ClassicTheme()
	t.Name = "pastel"
	t.Colors[core.ColorRed] = "217"
	t.Colors[core.ColorGreen] = "157"
	t.Colors[core.ColorYellow] = "229"
	t.Colors[core.ColorBlue] = "153"
	t.Colors[core.ColorMagenta] = "183"
	t.Colors[core.ColorOrange] = "223"
	t.MenuTitle = t.MenuTitle.Foreground(lipgloss.Color("153"))
	return t
}

// MonoTheme returns a grayscale theme, best paired with letter glyphs.
func MonoTheme() Theme {
	t := ClassicTheme()
	t.Name = "mono"
	for c := range t.Colors {
		t.Colors[c] = "252"
	}
	t.Colors[core.ColorGray] = "240"
	t.MenuTitle = t.MenuTitle.Foreground(lipgloss.Color("255"))
	t.MenuItemActive = t.MenuItemActive.Foreground(lipgloss.Color("255"))
	return t
}

var themes = map[string]func() Theme{
	"classic": ClassicTheme,
	"neon":    NeonTheme,
	"pastel":  PastelTheme,
	"mono":    MonoTheme,
}

// ThemeByName returns the named theme, falling back to classic.
func ThemeByName(name string) Theme {
	if mk, ok := themes[name]; ok {
		return mk()
	}
	return ClassicTheme()
}

// ThemeNames lists the known themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Style returns the lipgloss style for a cell's color and attributes.
func (t Theme) Style(c core.Color, a core.Attr) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg, ok := t.Colors[c]; ok {
		s = s.Foreground(fg)
	}
	if a.Has(core.AttrBold) {
		s = s.Bold(true)
	}
	if a.Has(core.AttrReverse) {
		s = s.Reverse(true)
	}
	if a.Has(core.AttrFaint) {
		s = s.Faint(true)
	}
	if a.Has(core.AttrUnderline) {
		s = s.Underline(true)
	}
	return s
}
