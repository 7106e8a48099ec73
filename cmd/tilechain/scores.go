package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilechain/internal/games/tilechain"
	"github.com/vovakirdan/tilechain/internal/platform/tui"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level-id]",
	Short: "Show best runs",
	Long: `Without a level ID, prints a summary of every level played.
With one, prints the best runs of that level.

Examples:
  tilechain scores
  tilechain scores 01-first-steps
  tilechain scores 01-first-steps --limit 20
  tilechain scores 01-first-steps --clear
  tilechain scores --tui`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeLevelIDs,
	RunE:              runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete stored runs and stars (all levels when no ID is given)")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()
	if e.store == nil {
		return errors.New("scores database is unavailable")
	}

	levelID := ""
	if len(args) == 1 {
		lvl, err := e.levelByID(args[0])
		if err != nil {
			return err
		}
		levelID = lvl.ID
	}

	switch {
	case flagScoresClear:
		if err := e.store.ClearScores(levelID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	case flagScoresTUI:
		return tui.Run(e.deps(), runtimeConfig(), tui.Start{Screen: tui.ScreenScores, LevelID: levelID})
	case levelID == "":
		return printSummary(e)
	}
	return printLevelScores(e, levelID)
}

func printLevelScores(e *env, levelID string) error {
	lvl, _ := e.levelByID(levelID)
	scores, err := e.store.TopScores(levelID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", lvl.Name)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tilechain play %s' to set the first one!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "Rank", "Score", "Stars", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %-5s  %s\n", i+1, entry.Score,
			tilechain.StarString(entry.Stars), entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := e.progress.Best(levelID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best rating: %s  (target %d)\n", tilechain.StarString(best), lvl.Target)
	return nil
}

func printSummary(e *env) error {
	stats, err := e.store.AllLevelStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Println("Progress")
	fmt.Println()
	fmt.Printf("  %-22s  %-5s  %5s  %8s  %8s  %s\n", "Level", "Stars", "Runs", "Best", "Average", "Last played")
	fmt.Printf("  %-22s  %-5s  %5s  %8s  %8s  %s\n", "-----", "-----", "----", "----", "-------", "-----------")
	total := 0
	for _, lvl := range e.catalogue {
		st, ok := stats[lvl.ID]
		if !ok {
			continue
		}
		total += st.BestStars
		last := "-"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-22s  %-5s  %5d  %8d  %8.1f  %s\n",
			lvl.Name, tilechain.StarString(st.BestStars), st.Runs, st.HighScore, st.AvgScore, last)
	}
	fmt.Println()
	fmt.Printf("Stars collected: %d\n", total)
	return nil
}
