package core

import "fmt"

// DefaultMinMatch is the chain length used when a level does not set one.
const DefaultMinMatch = 3

// Level holds the parameters a board is started with.
type Level struct {
	ID       string
	Name     string
	Rows     int
	Cols     int
	Palette  Palette
	Target   int
	Moves    int
	MinMatch int
	// Layout optionally paints the opening board, top line first. When set
	// it fixes Rows and Cols.
	Layout []string
}

// Normalize fills defaults and derives the board size from Layout.
func (l Level) Normalize() Level {
	if l.MinMatch == 0 {
		l.MinMatch = DefaultMinMatch
	}
	if len(l.Layout) > 0 {
		l.Cols = len(l.Layout)
		l.Rows = len([]rune(l.Layout[0]))
	}
	if l.Name == "" {
		l.Name = l.ID
	}
	return l
}

// Validate checks a normalized level.
func (l Level) Validate() error {
	switch {
	case l.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidLevel)
	case l.Rows <= 0 || l.Cols <= 0:
		return fmt.Errorf("%w: %s: grid %dx%d", ErrInvalidLevel, l.ID, l.Rows, l.Cols)
	case l.Target <= 0:
		return fmt.Errorf("%w: %s: target must be positive", ErrInvalidLevel, l.ID)
	case l.Moves < 0:
		return fmt.Errorf("%w: %s: negative move budget", ErrInvalidLevel, l.ID)
	case l.MinMatch < 1:
		return fmt.Errorf("%w: %s: min match must be at least 1", ErrInvalidLevel, l.ID)
	}
	for i, line := range l.Layout {
		if n := len([]rune(line)); n != l.Rows {
			return fmt.Errorf("%w: %s: layout line %d has %d cells, want %d", ErrInvalidLevel, l.ID, i+1, n, l.Rows)
		}
	}
	if err := l.Palette.Validate(); err != nil {
		return fmt.Errorf("%s: %w", l.ID, err)
	}
	return nil
}
