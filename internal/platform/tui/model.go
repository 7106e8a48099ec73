package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilechain/internal/config"
	"github.com/vovakirdan/tilechain/internal/core"
	tc "github.com/vovakirdan/tilechain/internal/games/tilechain/core"
	"github.com/vovakirdan/tilechain/internal/storage"
)

// resizer is implemented by games that can relayout without a restart.
type resizer interface {
	Resize(w, h int)
}

// GameModel is the Bubble Tea model that ticks a game and records its
// results.
type GameModel struct {
	game       core.Game
	screen     *core.Screen
	store      *storage.Store
	progress   *tc.Progress
	logger     *log.Logger
	theme      Theme
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	saved      bool // result of the current win already recorded
}

// NewGameModel creates a model for game. store and progress may be nil.
func NewGameModel(game core.Game, deps Deps, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      deps.Store,
		progress:   deps.Progress,
		logger:     deps.logger(),
		theme:      deps.Theme,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if r, ok := m.game.(resizer); ok {
			r.Resize(msg.Width, msg.Height)
		} else if !m.gameState.GameOver {
			m.game.Reset(m.config)
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.saved = false
	} else if !m.saved {
		m.recordResult()
		m.saved = true
	}

	if m.gameState.Back {
		m.backToMenu = true
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// recordResult stores the score and the star rating of a won level.
// Failures are logged; play goes on.
func (m *GameModel) recordResult() {
	st := m.gameState
	if !st.Won || st.Level == "" {
		return
	}
	if m.store != nil {
		if _, err := m.store.SaveScore(st.Level, st.Score, st.Stars); err != nil {
			m.logger.Warn("could not save score", "level", st.Level, "error", err)
		}
	}
	if m.progress != nil {
		improved, err := m.progress.Record(st.Level, st.Stars)
		switch {
		case err != nil:
			m.logger.Warn("could not save stars", "level", st.Level, "error", err)
		case improved:
			m.logger.Debug("new best rating", "level", st.Level, "stars", st.Stars)
		}
	}
}

// saveScreenshot writes the current frame as plain text under the
// tilechain home directory.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := filepath.Join(config.HomeDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.gameState.Level, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current frame.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.theme)
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
