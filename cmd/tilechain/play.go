package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilechain/internal/games/tilechain/levels"
	"github.com/vovakirdan/tilechain/internal/platform/tui"
)

var flagLevelFile string

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play a level",
	Long: `Start playing a level. Without a level ID, play resumes at the first
level that is short of three stars, or the last level once all are.

Controls:
  Arrows/WASD  - Move the cursor
  Space        - Pick or unpick the tile under the cursor
  Enter        - Clear the picked chain
  X            - Drop all picks
  N            - Next level (after completing one)
  R            - Restart the level with a new board
  P            - Pause
  Esc          - Back to the level list
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Pace options:
  relaxed, normal, brisk  - Delay between clear and refill steps
  instant                 - Play whole sequences in one frame

Examples:
  tilechain play
  tilechain play 01-first-steps
  tilechain play 04-long-chains --pace brisk
  tilechain play 01-first-steps --seed 42
  tilechain play --file ./my-level.yaml`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeLevelIDs,
	RunE:              runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevelFile, "file", "", "Play a level file that is not in the catalogue")
}

func runPlay(_ *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	start := tui.Start{Screen: tui.ScreenGame}
	switch {
	case flagLevelFile != "":
		if len(args) == 1 {
			return errors.New("give either a level ID or --file, not both")
		}
		lvl, err := levels.LoadFile(flagLevelFile)
		if err != nil {
			return err
		}
		e.catalogue = levels.Upsert(e.catalogue, lvl)
		start.LevelID = lvl.ID
	case len(args) == 1:
		lvl, err := e.levelByID(args[0])
		if err != nil {
			return err
		}
		start.LevelID = lvl.ID
	default:
		start.LevelID = e.deps().ContinueLevel()
	}

	logger.Debug("starting level", "level", start.LevelID, "pace", e.cfg.Pace)
	return tui.Run(e.deps(), runtimeConfig(), start)
}
