package core

import "strings"

// Color identifies a tile color. Colors are compared by value only; the
// points a color is worth come from the level's Palette.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorOrange
	ColorCount
)

var colorNames = [ColorCount]string{"red", "green", "blue", "yellow", "purple", "orange"}

func (c Color) String() string {
	if c >= ColorCount {
		return "unknown"
	}
	return colorNames[c]
}

// Char returns the single letter used in layouts and ASCII dumps.
func (c Color) Char() rune {
	if c >= ColorCount {
		return '?'
	}
	return rune(strings.ToUpper(colorNames[c])[0])
}

// ParseColor accepts a full color name or its layout letter, case-insensitive.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c := range ColorCount {
		name := colorNames[c]
		if s == name || (len(s) == 1 && s[0] == name[0]) {
			return c, true
		}
	}
	return ColorRed, false
}
