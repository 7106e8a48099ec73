package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilechain/internal/games/tilechain"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [level-id]",
	Short: "List the level catalogue",
	Long: `Shows every level that can be played: the built-in set, then any
files from ~/.tilechain/levels and --levels. Files that fail to parse are
reported as warnings. With a level ID, shows that level in detail.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeLevelIDs,
	RunE:              runLevels,
}

func runLevels(_ *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	if len(args) == 1 {
		return showLevel(e, args[0])
	}

	if len(e.catalogue) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	maxIDLen := len("ID")
	for _, lvl := range e.catalogue {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-*s  %-22s  %-5s  %6s  %5s  %5s  %s\n", maxIDLen, "ID", "Name", "Size", "Target", "Moves", "Chain", "Stars")
	fmt.Printf("  %-*s  %-22s  %-5s  %6s  %5s  %5s  %s\n", maxIDLen, "--", "----", "----", "------", "-----", "-----", "-----")
	for _, lvl := range e.catalogue {
		stars, err := e.progress.Best(lvl.ID)
		if err != nil {
			logger.Warn("could not read stars", "level", lvl.ID, "error", err)
		}
		fmt.Printf("  %-*s  %-22s  %-5s  %6d  %5d  %5d  %s\n",
			maxIDLen, lvl.ID, lvl.Name,
			fmt.Sprintf("%dx%d", lvl.Rows, lvl.Cols),
			lvl.Target, lvl.Moves, lvl.MinMatch,
			tilechain.StarString(stars))
	}
	fmt.Println()
	fmt.Println("Play one with: tilechain play <id>")
	return nil
}

// showLevel prints one level with its palette and authored layout.
func showLevel(e *env, id string) error {
	lvl, err := e.loader.LoadByID(id)
	if err != nil {
		return fmt.Errorf("%w; run 'tilechain levels' to see the catalogue", err)
	}
	stars, err := e.progress.Best(lvl.ID)
	if err != nil {
		logger.Warn("could not read stars", "level", lvl.ID, "error", err)
	}

	fmt.Printf("%s (%s)\n", lvl.Name, lvl.ID)
	fmt.Printf("  File:   %s\n", lvl.Source)
	fmt.Printf("  Size:   %dx%d\n", lvl.Rows, lvl.Cols)
	fmt.Printf("  Target: %d in %d moves, chains of %d+\n", lvl.Target, lvl.Moves, lvl.MinMatch)
	fmt.Printf("  Best:   %s\n", tilechain.StarString(stars))
	fmt.Println("  Palette:")
	for _, sw := range lvl.Palette {
		fmt.Printf("    %c %-7s %d pts\n", sw.Color.Char(), sw.Color, sw.Points)
	}
	if len(lvl.Layout) > 0 {
		fmt.Println("  Layout:")
		for _, line := range lvl.Layout {
			fmt.Printf("    %s\n", line)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(lvl.Metadata)) {
		fmt.Printf("  %s: %s\n", k, lvl.Metadata[k])
	}
	return nil
}
