// Package tilechain puts the chain-clearing engine behind the platform's
// Game interface: a cursor for picking tiles, paced playback of clear
// sequences, and a character-cell rendering of the board.
package tilechain

import (
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/vovakirdan/tilechain/internal/config"
	platformcore "github.com/vovakirdan/tilechain/internal/core"
	"github.com/vovakirdan/tilechain/internal/games/tilechain/core"
	"github.com/vovakirdan/tilechain/internal/games/tilechain/levels"
)

// ErrNoLevels is reported when the catalogue is empty.
var ErrNoLevels = errors.New("tilechain: no levels available")

// popup is a floating score label above a cleared tile.
type popup struct {
	pos  core.Position
	text string
	age  int
}

// Game is one play session over a level catalogue.
type Game struct {
	cfg       config.TileChainConfig
	catalogue []levels.Level
	startID   string

	rng        *rand.Rand
	engine     *core.Engine
	pacer      *config.Pacer
	levelIndex int
	loadErr    error

	cursor   core.Position
	popups   []popup
	flash    string
	flashAge int

	screenW int
	screenH int
	tick    uint64

	paused bool
	back   bool
	won    bool
	stars  int
}

// New creates a game over catalogue. Reset must be called before the
// first Step.
func New(catalogue []levels.Level, cfg config.TileChainConfig) *Game {
	return &Game{
		cfg:       cfg,
		catalogue: catalogue,
		pacer:     config.NewPacer(cfg.Pacing),
	}
}

// StartAt makes the next Reset open level id instead of the first one.
// Unknown IDs are ignored.
func (g *Game) StartAt(id string) {
	g.startID = id
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tilechain"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "TileChain"
}

// Reset starts the session over at the start level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.back = false

	g.levelIndex = 0
	if g.startID != "" {
		if i := levels.Index(g.catalogue, g.startID); i >= 0 {
			g.levelIndex = i
		}
	}
	g.loadLevel()
}

// Resize updates the screen size used for layout.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// loadLevel (re)starts the level at levelIndex with a fresh board.
func (g *Game) loadLevel() {
	g.won = false
	g.stars = 0
	g.paused = false
	g.popups = nil
	g.flash, g.flashAge = "", 0
	g.pacer.Reset()

	if len(g.catalogue) == 0 {
		g.engine, g.loadErr = nil, ErrNoLevels
		return
	}

	lvl := g.catalogue[g.levelIndex]
	e, err := core.Start(lvl.Level, g.rng, core.ListenerFuncs{
		TileCleared: func(pos core.Position, points int) {
			g.popups = append(g.popups, popup{pos: pos, text: "+" + strconv.Itoa(points)})
		},
		NoMatch: func() {
			g.setFlash("No match")
		},
		LevelComplete: func(stars, _ int) {
			g.won = true
			g.stars = stars
		},
		Reshuffle: func(solvable bool) {
			if solvable {
				g.setFlash("Board reshuffled")
			} else {
				g.setFlash("No chains left, press R to restart")
			}
		},
	})
	if err != nil {
		g.engine, g.loadErr = nil, err
		return
	}
	g.engine, g.loadErr = e, nil
	g.cursor = core.P(e.Rows()/2, e.Cols()/2)
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashAge = g.cfg.Pacing.FlashTicks
}

// Step handles the input of one tick and advances any running clear
// sequence as far as the pacing allows.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	g.age()

	for _, a := range in.Actions() {
		g.handle(a)
	}

	if g.engine != nil && !g.paused && g.engine.Busy() && g.pacer.Tick() {
		for g.advance() && g.pacer.Ready() {
		}
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) handle(a platformcore.Action) {
	switch a {
	case platformcore.ActionBack:
		g.back = true
		return
	case platformcore.ActionRestart:
		if len(g.catalogue) > 0 {
			g.loadLevel()
		}
		return
	case platformcore.ActionPause:
		if g.engine != nil && !g.won {
			g.paused = !g.paused
		}
		return
	}

	if g.engine == nil || g.paused {
		return
	}
	if g.won {
		if a == platformcore.ActionNext && g.HasNext() {
			g.levelIndex++
			g.loadLevel()
		}
		return
	}

	switch a {
	case platformcore.ActionUp:
		g.moveCursor(0, 1)
	case platformcore.ActionDown:
		g.moveCursor(0, -1)
	case platformcore.ActionLeft:
		g.moveCursor(-1, 0)
	case platformcore.ActionRight:
		g.moveCursor(1, 0)
	case platformcore.ActionSelect:
		// Busy boards ignore picks until the sequence settles.
		_ = g.engine.Select(g.cursor)
	case platformcore.ActionConfirm:
		g.confirm()
	case platformcore.ActionCancel:
		for _, p := range g.engine.Selection() {
			_ = g.engine.Select(p)
		}
	}
}

// moveCursor moves in board coordinates: dc > 0 is up the screen.
func (g *Game) moveCursor(dr, dc int) {
	g.cursor.Row = platformcore.Clamp(g.cursor.Row+dr, 0, g.engine.Rows()-1)
	g.cursor.Col = platformcore.Clamp(g.cursor.Col+dc, 0, g.engine.Cols()-1)
}

func (g *Game) confirm() {
	ok, err := g.engine.Confirm()
	switch {
	case errors.Is(err, core.ErrEmptySelection):
		g.setFlash("Select tiles first")
	case err != nil:
	case ok:
		g.pacer.Reset()
	}
}

// advance runs one engine step and arms the matching delay. It reports
// whether the sequence is still running.
func (g *Game) advance() bool {
	st, ok := g.engine.Step()
	if !ok {
		return false
	}
	switch st.Kind {
	case core.StepClear:
		g.pacer.AfterClear()
	case core.StepRefill:
		g.pacer.AfterFall()
	}
	return g.engine.Busy()
}

// age moves popups up their lifetime and expires the status message.
func (g *Game) age() {
	life := g.cfg.Pacing.PopupTicks
	kept := g.popups[:0]
	for _, p := range g.popups {
		p.age++
		if p.age < life {
			kept = append(kept, p)
		}
	}
	g.popups = kept

	if g.flashAge > 0 {
		g.flashAge--
		if g.flashAge == 0 {
			g.flash = ""
		}
	}
}

// State reports the session to the platform.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Stars:    g.stars,
		Won:      g.won,
		GameOver: g.won,
		Paused:   g.paused,
		Back:     g.back,
	}
	if g.engine != nil {
		st.Level = g.engine.Level().ID
		st.Score = g.engine.Session().Score
	}
	return st
}

// HasNext reports whether a level follows the current one.
func (g *Game) HasNext() bool {
	return g.levelIndex+1 < len(g.catalogue)
}

// Engine returns the engine of the current level, or nil if it failed
// to load.
func (g *Game) Engine() *core.Engine { return g.engine }

// Err returns why the current level could not be started.
func (g *Game) Err() error { return g.loadErr }

// Cursor returns the board position under the cursor.
func (g *Game) Cursor() core.Position { return g.cursor }

// Flash returns the status message on display, if any.
func (g *Game) Flash() string { return g.flash }

// LevelIndex returns the catalogue index of the current level.
func (g *Game) LevelIndex() int { return g.levelIndex }
