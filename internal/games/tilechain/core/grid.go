package core

import (
	"fmt"
	"iter"
	"strings"
)

// Grid owns the tiles of one board. Tiles are stored row-major in a flat
// slice: index = row*cols + col.
type Grid struct {
	rows    int
	cols    int
	tiles   []Tile
	palette Palette
	rng     Source
}

// Refill records one cell recolored by the gravity walk.
type Refill struct {
	Pos    Position
	Swatch Swatch
}

// NewGrid fills a rows×cols board with independent uniform draws from palette.
func NewGrid(rows, cols int, palette Palette, rng Source) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidLevel, rows, cols)
	}
	if err := palette.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidLevel)
	}
	g := &Grid{
		rows:    rows,
		cols:    cols,
		tiles:   make([]Tile, rows*cols),
		palette: palette,
		rng:     rng,
	}
	for i := range g.tiles {
		g.tiles[i] = Tile{
			Swatch: palette.Draw(rng),
			Pos:    Position{Row: i / cols, Col: i % cols},
			Alive:  true,
		}
	}
	return g, nil
}

// NewGridFromLayout builds a grid from letter lines as they appear on
// screen: the first line is the top of every column (Col = cols-1) and
// characters run left to right over rows. Refills still draw from rng.
func NewGridFromLayout(layout []string, palette Palette, rng Source) (*Grid, error) {
	cols := len(layout)
	if cols == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLevel)
	}
	rows := len([]rune(layout[0]))
	g, err := NewGrid(rows, cols, palette, rng)
	if err != nil {
		return nil, err
	}
	for line, text := range layout {
		letters := []rune(text)
		if len(letters) != rows {
			return nil, fmt.Errorf("%w: layout line %d has %d cells, want %d", ErrInvalidLevel, line+1, len(letters), rows)
		}
		col := cols - 1 - line
		for row, ch := range letters {
			c, ok := ParseColor(string(ch))
			if !ok {
				return nil, fmt.Errorf("%w: layout line %d: unknown color %q", ErrInvalidLevel, line+1, ch)
			}
			sw, ok := palette.Lookup(c)
			if !ok {
				return nil, fmt.Errorf("%w: layout line %d: %s not in palette", ErrInvalidLevel, line+1, c)
			}
			if err := g.Paint(P(row, col), sw); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func (g *Grid) index(p Position) int {
	return p.Row*g.cols + p.Col
}

// Rows returns the extent of the horizontal axis.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the extent of the vertical axis.
func (g *Grid) Cols() int { return g.cols }

// Palette returns the swatches the grid draws from.
func (g *Grid) Palette() Palette { return g.palette }

// InBounds reports whether p lies in [0,rows) × [0,cols).
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// TileAt returns a copy of the tile at p.
func (g *Grid) TileAt(p Position) (Tile, error) {
	if !g.InBounds(p) {
		return Tile{}, fmt.Errorf("%w: %s on %dx%d", ErrOutOfBounds, p, g.rows, g.cols)
	}
	return g.tiles[g.index(p)], nil
}

// mustTile is TileAt for positions the engine has already validated.
func (g *Grid) mustTile(p Position) *Tile {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("tilechain: %s outside %dx%d grid", p, g.rows, g.cols))
	}
	return &g.tiles[g.index(p)]
}

// NeighborsOf returns the Moore neighborhood of p clipped to the board.
func (g *Grid) NeighborsOf(p Position) []Position {
	out := make([]Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			q := Position{Row: p.Row + dr, Col: p.Col + dc}
			if g.InBounds(q) {
				out = append(out, q)
			}
		}
	}
	return out
}

// HasAnyMatch reports whether some interior cell has at least minMatch
// same-colored tiles among itself and its eight neighbors. The outer ring
// is never used as a center, so boards thinner than 3 cells never match.
func (g *Grid) HasAnyMatch(minMatch int) bool {
	for row := 1; row < g.rows-1; row++ {
		for col := 1; col < g.cols-1; col++ {
			center := g.tiles[g.index(P(row, col))].Color
			count := 1
			for _, q := range g.NeighborsOf(P(row, col)) {
				if g.tiles[g.index(q)].Color == center {
					count++
				}
			}
			if count >= minMatch {
				return true
			}
		}
	}
	return false
}

// ShuffleAllColors redraws every tile's swatch. Tiles do not move.
func (g *Grid) ShuffleAllColors() {
	for i := range g.tiles {
		g.tiles[i].Swatch = g.palette.Draw(g.rng)
	}
}

// ReplaceCellFromAbove pulls the column above p down by one cell: p takes
// the swatch of p.Above(), that cell takes the one above it, and the top
// cell gets a fresh draw. Every touched cell ends alive. Refills are
// returned bottom to top.
func (g *Grid) ReplaceCellFromAbove(p Position) []Refill {
	g.mustTile(p)
	refills := make([]Refill, 0, g.cols-p.Col)
	for col := p.Col; col < g.cols; col++ {
		t := &g.tiles[g.index(P(p.Row, col))]
		if col == g.cols-1 {
			t.Swatch = g.palette.Draw(g.rng)
		} else {
			t.Swatch = g.tiles[g.index(P(p.Row, col+1))].Swatch
		}
		t.Alive = true
		refills = append(refills, Refill{Pos: t.Pos, Swatch: t.Swatch})
	}
	return refills
}

// Paint overwrites the swatch at p.
func (g *Grid) Paint(p Position, sw Swatch) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	g.tiles[g.index(p)].Swatch = sw
	return nil
}

func (g *Grid) kill(p Position) Tile {
	t := g.mustTile(p)
	t.Alive = false
	return *t
}

// All yields every tile in storage order.
func (g *Grid) All() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for _, t := range g.tiles {
			if !yield(t) {
				return
			}
		}
	}
}

// Stable reports whether every cell holds a live tile.
func (g *Grid) Stable() bool {
	for _, t := range g.tiles {
		if !t.Alive {
			return false
		}
	}
	return true
}

// Clone returns an independent copy sharing the palette and random source.
func (g *Grid) Clone() *Grid {
	c := *g
	c.tiles = append([]Tile(nil), g.tiles...)
	return &c
}

// String draws the board top line first, dead tiles as '.'.
func (g *Grid) String() string {
	var b strings.Builder
	for col := g.cols - 1; col >= 0; col-- {
		for row := range g.rows {
			t := g.tiles[g.index(P(row, col))]
			if !t.Alive {
				b.WriteByte('.')
				continue
			}
			b.WriteRune(t.Color.Char())
		}
		if col > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
