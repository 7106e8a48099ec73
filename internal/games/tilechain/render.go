package tilechain

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vovakirdan/tilechain/internal/config"
	platformcore "github.com/vovakirdan/tilechain/internal/core"
	"github.com/vovakirdan/tilechain/internal/games/tilechain/core"
)

const (
	cellW      = 4 // bracket, two glyph columns, bracket
	hudHeight  = 3
	footHeight = 3
)

// layout is where the board sits on screen for the current size.
type layout struct {
	board    platformcore.Rect
	tooSmall bool
}

func (g *Game) layout() layout {
	rows, cols := g.engine.Rows(), g.engine.Cols()
	w, h := rows*cellW, cols
	if w+2 > g.screenW || h+2+hudHeight+footHeight > g.screenH {
		return layout{tooSmall: true}
	}
	area := platformcore.NewRect(0, hudHeight, g.screenW, g.screenH-hudHeight-footHeight)
	return layout{board: area.Centered(w, h)}
}

// cellOrigin is the screen column and row of the tile at p.
func (l layout) cellOrigin(p core.Position, cols int) (int, int) {
	return l.board.X + p.Row*cellW, l.board.Y + cols - 1 - p.Col
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.engine == nil {
		msg := "No levels found"
		if g.loadErr != nil && !errors.Is(g.loadErr, ErrNoLevels) {
			msg = g.loadErr.Error()
		}
		renderOverlay(dst, "TileChain", msg, "Esc: Menu")
		return
	}

	g.renderHUD(dst)

	l := g.layout()
	if l.tooSmall {
		renderOverlay(dst, "Window too small", "Resize to continue", "")
		return
	}

	g.renderBoard(dst, l)
	g.renderPopups(dst, l)
	g.renderFooter(dst)

	switch {
	case g.won:
		g.renderComplete(dst)
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue", "")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	lvl := g.engine.Level()
	s := g.engine.Session()

	title := " TileChain | " + lvl.Name +
		" (" + strconv.Itoa(g.levelIndex+1) + "/" + strconv.Itoa(len(g.catalogue)) + ")"
	dst.DrawStyled(0, 0, title, platformcore.ColorCyan, platformcore.AttrBold)

	stats := " Score " + strconv.Itoa(s.Score) + "/" + strconv.Itoa(s.Target) +
		" | Moves " + strconv.Itoa(s.MovesRemaining) +
		" | Chain " + strconv.Itoa(lvl.MinMatch) + "+ | "
	dst.DrawText(0, 1, stats)
	dst.DrawStyled(len([]rune(stats)), 1, StarString(s.Stars), platformcore.ColorBrightYellow, 0)

	for x := range dst.Width() {
		dst.SetCell(x, 2, platformcore.Cell{Rune: '─', Color: platformcore.ColorGray})
	}
}

func (g *Game) renderBoard(dst *platformcore.Screen, l layout) {
	cols := g.engine.Cols()
	dst.DrawBox(platformcore.NewRect(l.board.X-1, l.board.Y-1, l.board.W+2, l.board.H+2), platformcore.ColorGray)

	for t := range g.engine.Board().All() {
		x, y := l.cellOrigin(t.Pos, cols)
		selected := g.engine.Selected(t.Pos)
		glyph := g.glyph(t, selected)
		color := TileColor(t.Color)
		var attr platformcore.Attr
		switch {
		case !t.Alive:
			color = platformcore.ColorGray
		case selected:
			attr = platformcore.AttrBold
		}
		dst.DrawStyled(x+1, y, glyph, color, attr)

		if t.Pos == g.cursor && !g.won {
			dst.SetCell(x, y, platformcore.Cell{Rune: '[', Color: platformcore.ColorBrightWhite, Attr: platformcore.AttrBold})
			dst.SetCell(x+3, y, platformcore.Cell{Rune: ']', Color: platformcore.ColorBrightWhite, Attr: platformcore.AttrBold})
		}
	}
}

// glyph is the two-column face of a tile.
func (g *Game) glyph(t core.Tile, selected bool) string {
	if !t.Alive {
		return "··"
	}
	if g.cfg.Theme.Glyphs == config.GlyphsLetters {
		c := string(t.Color.Char())
		if selected {
			return c + "*"
		}
		return c + " "
	}
	if selected {
		return "▓▓"
	}
	return "██"
}

// renderPopups draws "+N" labels drifting up from cleared tiles.
func (g *Game) renderPopups(dst *platformcore.Screen, l layout) {
	life := max(g.cfg.Pacing.PopupTicks, 1)
	cols := g.engine.Cols()
	for _, p := range g.popups {
		x, y := l.cellOrigin(p.pos, cols)
		rise := p.age * 3 / life
		var attr platformcore.Attr
		if p.age*2 >= life {
			attr = platformcore.AttrFaint
		}
		dst.DrawStyled(x, y-rise, p.text, platformcore.ColorBrightWhite, attr|platformcore.AttrBold)
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen) {
	h := dst.Height()
	if g.flash != "" {
		dst.DrawStyledCentered(h-3, g.flash, platformcore.ColorOrange, platformcore.AttrBold)
	} else if g.engine.Unsolvable() {
		dst.DrawStyledCentered(h-3, "No chains left, press R to restart", platformcore.ColorOrange, 0)
	}
	if n := len(g.engine.Selection()); n > 0 {
		dst.DrawStyledCentered(h-2, "Selected: "+strconv.Itoa(n), platformcore.ColorWhite, 0)
	}
	dst.DrawStyled(0, h-1, " Arrows: Move | Space: Pick | Enter: Clear | X: Cancel | R: Restart | P: Pause | Esc: Menu",
		platformcore.ColorGray, 0)
}

func (g *Game) renderComplete(dst *platformcore.Screen) {
	s := g.engine.Session()
	next := "N: Next level"
	if !g.HasNext() {
		next = "Last level cleared"
	}
	lines := []string{
		StarString(g.stars),
		"Score " + strconv.Itoa(s.Score),
		next,
		"R: Replay | Esc: Menu",
	}
	renderBox(dst, "Level Complete", lines)
}

func renderOverlay(dst *platformcore.Screen, title, text, hint string) {
	lines := []string{text}
	if hint != "" {
		lines = append(lines, hint)
	}
	renderBox(dst, title, lines)
}

// renderBox draws a bordered, centered panel with a title line.
func renderBox(dst *platformcore.Screen, title string, lines []string) {
	w := len([]rune(title))
	for _, s := range lines {
		w = max(w, len([]rune(s)))
	}
	w += 4
	h := len(lines) + 4
	r := dst.Bounds().Centered(w, h)

	blank := strings.Repeat(" ", w-2)
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		dst.DrawText(r.X+1, y, blank)
	}
	dst.DrawBox(r, platformcore.ColorWhite)
	dst.DrawStyledCentered(r.Y+1, title, platformcore.ColorBrightYellow, platformcore.AttrBold)
	for i, s := range lines {
		dst.DrawStyledCentered(r.Y+3+i, s, platformcore.ColorWhite, 0)
	}
}

// StarString renders a rating as filled and empty stars.
func StarString(stars int) string {
	stars = platformcore.Clamp(stars, 0, core.MaxStars)
	return strings.Repeat("★", stars) + strings.Repeat("☆", core.MaxStars-stars)
}

// TileColor maps a tile color to a screen color.
func TileColor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorRed:
		return platformcore.ColorRed
	case core.ColorGreen:
		return platformcore.ColorGreen
	case core.ColorBlue:
		return platformcore.ColorBlue
	case core.ColorYellow:
		return platformcore.ColorYellow
	case core.ColorPurple:
		return platformcore.ColorMagenta
	case core.ColorOrange:
		return platformcore.ColorOrange
	default:
		return platformcore.ColorWhite
	}
}
