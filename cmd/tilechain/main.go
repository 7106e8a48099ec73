// tilechain is a chain-clearing tile puzzle for the terminal.
//
// Usage:
//
//	tilechain menu                 - Start the interactive menu
//	tilechain play [level-id]      - Play a level directly
//	tilechain levels               - List the level catalogue
//	tilechain scores [level-id]    - Show best runs
//	tilechain serve                - Serve sessions over SSH
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.tilechain/scores.db)
//	--config <path>     - Use a specific settings file
//	--pace <preset>     - relaxed, normal, brisk or instant
//	--levels <dir>      - Extra level directory
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilechain/internal/config"
	"github.com/vovakirdan/tilechain/internal/core"
	tc "github.com/vovakirdan/tilechain/internal/games/tilechain/core"
	"github.com/vovakirdan/tilechain/internal/games/tilechain/levels"
	"github.com/vovakirdan/tilechain/internal/platform/tui"
	"github.com/vovakirdan/tilechain/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagPace      string
	flagLevelsDir string
	flagTheme     string
	flagLogLevel  string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "tilechain",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilechain",
	Short: "TileChain - link same-colored tiles in your terminal",
	Long: `TileChain is a puzzle game: pick a chain of touching tiles of one
color, clear it, and watch the columns refill. Reach each level's target
score within its move budget to earn all three stars.

Available commands:
  menu     - Interactive menu (default)
  play     - Play a level directly
  levels   - List the level catalogue
  scores   - View best runs
  serve    - Start SSH server for remote play

Examples:
  tilechain
  tilechain play 01-first-steps
  tilechain play --pace brisk
  tilechain scores 01-first-steps
  tilechain serve --ssh :2222`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", filepath.Join("~", ".tilechain", "scores.db"), "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to settings YAML")
	pf.StringVar(&flagPace, "pace", "", "Pacing preset: relaxed, normal, brisk, instant")
	pf.StringVar(&flagLevelsDir, "levels", "", "Extra directory of level files")
	pf.StringVar(&flagTheme, "theme", "", "Color theme: classic, neon, pastel, mono")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// env is everything a command needs, built from the global flags.
type env struct {
	cfg       config.TileChainConfig
	catalogue []levels.Level
	loader    *levels.Loader
	store     *storage.Store
	progress  *tc.Progress
}

// loadSettings reads the settings file and applies flag overrides.
func loadSettings() (config.TileChainConfig, error) {
	cfg, err := config.LoadTileChain(flagConfig)
	if err != nil {
		return cfg, err
	}
	pace, err := config.ParsePace(flagPace)
	if err != nil {
		return cfg, err
	}
	config.ApplyPace(&cfg, pace)
	if flagLevelsDir != "" {
		cfg.LevelsDir = config.ExpandHome(flagLevelsDir)
	}
	if flagTheme != "" {
		cfg.Theme.Name = flagTheme
	}
	return cfg, nil
}

// newLoader reads the built-in levels, then ~/.tilechain/levels, then
// the configured directory.
func newLoader(cfg config.TileChainConfig) *levels.Loader {
	var userDir string
	if home := config.HomeDir(); home != "" {
		userDir = filepath.Join(home, "levels")
	}
	return levels.NewLoader(userDir, cfg.LevelsDir)
}

// loadCatalogue loads every level, logging the files that were skipped.
func loadCatalogue(loader *levels.Loader) ([]levels.Level, error) {
	all, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, s := range loader.Skipped {
		logger.Warn("skipped level file", "path", s.Path, "error", s.Err)
	}
	logger.Debug("levels loaded", "count", len(all))
	return all, nil
}

// completeLevelIDs offers catalogue IDs for the first argument.
func completeLevelIDs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := loadSettings()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	ids, err := newLoader(cfg).ListIDs()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// setup builds the environment. A store that fails to open is logged and
// replaced by in-memory progress so play can go on.
func setup() (*env, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}
	loader := newLoader(cfg)
	catalogue, err := loadCatalogue(loader)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, catalogue: catalogue, loader: loader}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, progress will not be saved", "error", err)
		e.progress = tc.NewProgress(tc.NewMemoryStars())
		return e, nil
	}
	e.store = store
	e.progress = tc.NewProgress(store)
	return e, nil
}

func (e *env) close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			logger.Warn("closing scores database", "error", err)
		}
	}
}

func (e *env) deps() tui.Deps {
	return tui.Deps{
		Store:     e.store,
		Progress:  e.progress,
		Catalogue: e.catalogue,
		Config:    e.cfg,
		Theme:     tui.ThemeByName(e.cfg.Theme.Name),
		Logger:    logger,
	}
}

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// levelByID finds id in the catalogue, with a hint on failure.
func (e *env) levelByID(id string) (levels.Level, error) {
	if i := levels.Index(e.catalogue, id); i >= 0 {
		return e.catalogue[i], nil
	}
	return levels.Level{}, fmt.Errorf("unknown level %q; run 'tilechain levels' to see the catalogue", id)
}
