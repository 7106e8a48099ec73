package core

import (
	"fmt"
	"strings"
)

// Swatch is a palette entry: a color and the points a tile of that color
// is worth.
type Swatch struct {
	Color  Color
	Points int
}

func (s Swatch) String() string {
	return fmt.Sprintf("%s:%d", s.Color, s.Points)
}

// Palette is the finite set of swatches a level draws tiles from.
type Palette []Swatch

// Validate rejects empty palettes, unknown colors, repeated colors and
// negative point values.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalidLevel)
	}
	seen := make(map[Color]bool, len(p))
	for _, sw := range p {
		if sw.Color >= ColorCount {
			return fmt.Errorf("%w: unknown color %d", ErrInvalidLevel, sw.Color)
		}
		if seen[sw.Color] {
			return fmt.Errorf("%w: color %s listed twice", ErrInvalidLevel, sw.Color)
		}
		if sw.Points < 0 {
			return fmt.Errorf("%w: negative points for %s", ErrInvalidLevel, sw.Color)
		}
		seen[sw.Color] = true
	}
	return nil
}

// Lookup returns the palette swatch for c.
func (p Palette) Lookup(c Color) (Swatch, bool) {
	for _, sw := range p {
		if sw.Color == c {
			return sw, true
		}
	}
	return Swatch{}, false
}

// Draw picks a uniformly random swatch.
func (p Palette) Draw(rng Source) Swatch {
	return p[rng.Intn(len(p))]
}

func (p Palette) String() string {
	parts := make([]string, len(p))
	for i, sw := range p {
		parts[i] = sw.String()
	}
	return strings.Join(parts, " ")
}

// Tile is one grid cell. A dead tile has been cleared and is waiting for
// its refill.
type Tile struct {
	Swatch
	Pos   Position
	Alive bool
}

// Source is the randomness a grid draws from. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// firstSource always picks index 0.
type firstSource struct{}

func (firstSource) Intn(int) int { return 0 }
