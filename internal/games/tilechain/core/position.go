package core

import "fmt"

// Position addresses a grid cell. Row is the horizontal axis and Col the
// vertical one; Col grows upward, so the cell above p is {p.Row, p.Col+1}.
type Position struct {
	Row int
	Col int
}

// P is a shorthand constructor.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Above returns the cell one step up the column.
func (p Position) Above() Position {
	return Position{Row: p.Row, Col: p.Col + 1}
}

// Adjacent reports whether q is one of the eight Moore neighbors of p.
// A cell is not adjacent to itself.
func (p Position) Adjacent(q Position) bool {
	dr, dc := abs(p.Row-q.Row), abs(p.Col-q.Col)
	return dr <= 1 && dc <= 1 && (dr|dc) != 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
