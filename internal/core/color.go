package core

// Color is a foreground color for a screen cell. The platform maps each
// value to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorBrightYellow
	ColorBrightWhite
)

// Attr is a bit set of text attributes for a screen cell.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrReverse
	AttrFaint
	AttrUnderline
)

// Has reports whether all bits of b are set.
func (a Attr) Has(b Attr) bool { return a&b == b }
