package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/creature-match/internal/registry"
	"github.com/vovakirdan/creature-match/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and results",
	Long: `Display the top 10 scores, win/loss statistics and the most recent
games for a mode. Without an argument every mode is shown.

Modes:
  match3           - Classic
  match3_campaign  - Campaign

Examples:
  match3 scores
  match3 scores match3_campaign --recent 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent games to list")
}

func runScores(_ *cobra.Command, args []string) error {
	games := registry.List()
	if len(args) == 1 {
		g, err := registry.Create(args[0])
		if err != nil {
			return fmt.Errorf("%w (run 'match3 scores' to see all modes)", err)
		}
		games = []registry.GameInfo{{ID: g.ID(), Title: g.Title()}}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer closeStore(store)

	for i, g := range games {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, g); err != nil {
			return err
		}
	}
	return nil
}

func printScores(store *storage.Store, g registry.GameInfo) error {
	scores, err := store.TopScores(g.ID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", g.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(g.ID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Average: %.0f  Games: %d\n", stats.HighScore, stats.AvgScore, stats.GamesCount)
	fmt.Printf("Won: %d  Lost: %d  Win rate: %.0f%%  Longest chain: %d\n",
		stats.Wins, stats.Losses, stats.WinRate()*100, stats.BestCascade)

	if flagRecent <= 0 {
		return nil
	}
	results, err := store.RecentResults(g.ID, flagRecent)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-16s  %-6s  %-6s  %-5s  %-5s  %s\n", "Date", "Result", "Score", "Moves", "Chain", "Level")
	for _, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		level := "-"
		if r.Level > 0 {
			level = fmt.Sprint(r.Level)
		}
		fmt.Printf("  %-16s  %-6s  %-6d  %-5d  %-5d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), outcome, r.Score, r.MovesUsed, r.LongestCascade, level)
	}
	return nil
}
