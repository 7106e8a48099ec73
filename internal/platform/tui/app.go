package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilechain/internal/config"
	"github.com/vovakirdan/tilechain/internal/core"
	"github.com/vovakirdan/tilechain/internal/games/tilechain"
	tc "github.com/vovakirdan/tilechain/internal/games/tilechain/core"
	"github.com/vovakirdan/tilechain/internal/games/tilechain/levels"
	"github.com/vovakirdan/tilechain/internal/storage"
)

// Deps are the long-lived services a session works with. Store and
// Logger may be nil.
type Deps struct {
	Store     *storage.Store
	Progress  *tc.Progress
	Catalogue []levels.Level
	Config    config.TileChainConfig
	Theme     Theme
	Logger    *log.Logger
}

func (d Deps) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.New(io.Discard)
}

// starMap reads the best rating of every catalogue level.
func (d Deps) starMap() map[string]int {
	stars := make(map[string]int, len(d.Catalogue))
	if d.Progress == nil {
		return stars
	}
	for _, lvl := range d.Catalogue {
		n, err := d.Progress.Best(lvl.ID)
		if err != nil {
			d.logger().Warn("could not read stars", "level", lvl.ID, "error", err)
			continue
		}
		stars[lvl.ID] = n
	}
	return stars
}

// Screen identifies one of the session's views.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenLevels
	ScreenScores
	ScreenGame
)

// Start picks the first screen of a session. LevelID focuses the level
// list or scoreboard, or chooses the level to play.
type Start struct {
	Screen  Screen
	LevelID string
}

// AppModel manages a whole session: menu, level picker, scoreboard and
// game, switching between them without leaving the program.
type AppModel struct {
	deps     Deps
	config   core.RuntimeConfig
	screen   Screen
	menu     MenuModel
	levels   LevelsModel
	scores   ScoreboardModel
	game     *GameModel
	lastID   string
	quitting bool
}

// NewAppModel creates a session model opening on start.
func NewAppModel(deps Deps, cfg core.RuntimeConfig, start Start) AppModel {
	if deps.Theme.Colors == nil {
		deps.Theme = ThemeByName(deps.Config.Theme.Name)
	}
	m := AppModel{deps: deps, config: cfg, lastID: start.LevelID}
	switch start.Screen {
	case ScreenLevels:
		m.openLevels()
	case ScreenScores:
		m.openScores()
	case ScreenGame:
		m.openGame(start.LevelID)
	default:
		m.openMenu()
	}
	return m
}

// Init initializes the active screen.
func (m AppModel) Init() tea.Cmd {
	if m.screen == ScreenGame && m.game != nil {
		return m.game.Init()
	}
	return nil
}

// Update routes messages to the active screen and follows its outcome.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case ScreenGame:
		return m.updateGame(msg)
	case ScreenLevels:
		return m.updateLevels(msg)
	case ScreenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	switch m.menu.Choice() {
	case ChoicePlay:
		m.openGame(m.deps.ContinueLevel())
		return m, m.game.Init()
	case ChoiceLevels:
		m.openLevels()
	case ChoiceScores:
		m.openScores()
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m AppModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.levels, cmd = m.levels.Update(msg)

	switch {
	case m.levels.WantsBack():
		m.openMenu()
	case m.levels.Picked() != "":
		m.openGame(m.levels.Picked())
		return m, m.game.Init()
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.scores, cmd = m.scores.Update(msg)

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		m.openMenu()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		if id := m.game.State().Level; id != "" {
			m.lastID = id
		}
		m.game = nil
		m.openLevels()
		return m, nil
	}
	return m, cmd
}

func (m *AppModel) openMenu() {
	m.screen = ScreenMenu
	m.menu = NewMenuModel(m.deps.Theme, m.summary(), m.config.ScreenW, m.config.ScreenH)
}

func (m *AppModel) openLevels() {
	m.screen = ScreenLevels
	m.levels = NewLevelsModel(m.deps.Catalogue, m.deps.starMap(), m.deps.Theme, m.lastID, m.config.ScreenW, m.config.ScreenH)
}

func (m *AppModel) openScores() {
	m.screen = ScreenScores
	m.scores = NewScoreboardModel(m.deps.Store, m.deps.Catalogue, m.deps.starMap(), m.deps.Theme, m.lastID, m.config.ScreenW, m.config.ScreenH)
}

func (m *AppModel) openGame(levelID string) {
	game := tilechain.New(m.deps.Catalogue, m.deps.Config)
	game.StartAt(levelID)
	gm := NewGameModel(game, m.deps, m.config)
	m.game = &gm
	m.screen = ScreenGame
}

// ContinueLevel is the first level short of a full rating, or the last
// level once every level has all its stars. It is empty only for an
// empty catalogue.
func (d Deps) ContinueLevel() string {
	stars := d.starMap()
	for _, lvl := range d.Catalogue {
		if stars[lvl.ID] < tc.MaxStars {
			return lvl.ID
		}
	}
	if n := len(d.Catalogue); n > 0 {
		return d.Catalogue[n-1].ID
	}
	return ""
}

// summary reports collected stars for the main menu.
func (m AppModel) summary() string {
	if len(m.deps.Catalogue) == 0 {
		return "No levels found"
	}
	total := 0
	for _, n := range m.deps.starMap() {
		total += n
	}
	return fmt.Sprintf("★ %d / %d", total, len(m.deps.Catalogue)*tc.MaxStars)
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case ScreenGame:
		if m.game != nil {
			return m.game.View()
		}
	case ScreenLevels:
		return m.levels.View()
	case ScreenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// ActiveScreen returns the screen being shown.
func (m AppModel) ActiveScreen() Screen {
	return m.screen
}

// Run starts a local session in the alternate screen.
func Run(deps Deps, cfg core.RuntimeConfig, start Start) error {
	p := tea.NewProgram(
		NewAppModel(deps, cfg, start),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
