package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilechain/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start TileChain in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Leaving a level returns to the level list.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select
  L            - Level list
  Tab          - High scores
  Q            - Quit

Examples:
  tilechain menu
  tilechain menu --fps 30
  tilechain menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	return tui.Run(e.deps(), runtimeConfig(), tui.Start{Screen: tui.ScreenMenu})
}
