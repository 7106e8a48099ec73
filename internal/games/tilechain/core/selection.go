package core

import "slices"

// Selection is the ordered list of positions the player has toggled.
type Selection struct {
	picks []Position
}

// Toggle appends p, or removes it if it is already selected. Only that
// entry is removed; later picks keep their order.
func (s *Selection) Toggle(p Position) {
	if i := slices.Index(s.picks, p); i >= 0 {
		s.picks = slices.Delete(s.picks, i, i+1)
		return
	}
	s.picks = append(s.picks, p)
}

// Contains reports whether p is selected.
func (s *Selection) Contains(p Position) bool {
	return slices.Contains(s.picks, p)
}

// Positions returns a copy in selection order.
func (s *Selection) Positions() []Position {
	return slices.Clone(s.picks)
}

func (s *Selection) Len() int { return len(s.picks) }

func (s *Selection) Clear() { s.picks = s.picks[:0] }

// Validate reports whether the selection is a clearable chain on g: at
// least minMatch tiles, all the color of the first pick, and every
// consecutive pair 8-adjacent. Connectivity beyond consecutive pairs is
// not checked.
func (s *Selection) Validate(g *Grid, minMatch int) bool {
	if len(s.picks) < minMatch || len(s.picks) == 0 {
		return false
	}
	first := g.mustTile(s.picks[0]).Color
	for i, p := range s.picks {
		if g.mustTile(p).Color != first {
			return false
		}
		if i > 0 && !s.picks[i-1].Adjacent(p) {
			return false
		}
	}
	return true
}
