package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crazy-tower/internal/registry"
	"github.com/vovakirdan/crazy-tower/internal/storage"
)

var (
	flagScoresAll   bool
	flagScoresClear bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the best runs",
	Long: `Display the best runs recorded for a variant (default: tower).

Examples:
  tower scores
  tower scores tower_powerup --limit 20
  tower scores --limit 0
  tower scores --all
  tower scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show a summary for every variant")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the history and best score of the variant")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show, 0 for all")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := defaultVariant
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q; run 'tower list' to see them", gameID)
	}

	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.Close()

	if flagScoresClear {
		var errs []error
		if st.db != nil {
			errs = append(errs, st.db.ClearScores(gameID))
		}
		errs = append(errs, st.deleteHighScore(gameID))
		if err := errors.Join(errs...); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return nil
	}

	if st.db == nil {
		return errors.New("scores database is unavailable")
	}

	if flagScoresAll {
		return printAllStats(st)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	scores, err := loadScores(st, gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tower play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Score", "Height", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "-----", "------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %-8d  %s\n", i+1, entry.Score, entry.Height, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := st.db.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Highest: %d  Runs: %d  Average: %.0f\n",
			stats.HighScore, stats.BestHeight, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

// loadScores returns the best limit runs, or every run when limit is not
// positive.
func loadScores(st *stores, gameID string, limit int) ([]storage.ScoreEntry, error) {
	if limit <= 0 {
		return st.db.AllScores(gameID)
	}
	return st.db.TopScores(gameID, limit)
}

func printAllStats(st *stores) error {
	all, err := st.db.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Printf("  %-14s  %-6s  %-6s  %-7s  %s\n", "Variant", "Runs", "Best", "Highest", "Last played")
	fmt.Printf("  %-14s  %-6s  %-6s  %-7s  %s\n", "-------", "----", "----", "-------", "-----------")
	for _, info := range registry.List() {
		stats, ok := all[info.ID]
		if !ok {
			fmt.Printf("  %-14s  %-6d  %-6s  %-7s  %s\n", info.ID, 0, "-", "-", "never")
			continue
		}
		fmt.Printf("  %-14s  %-6d  %-6d  %-7d  %s\n", info.ID, stats.GamesCount, stats.HighScore,
			stats.BestHeight, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
