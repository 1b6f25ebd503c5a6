package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/creature-match/internal/config"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Long: `Shows the campaign levels with their board size, moves and goals.
Uses --levels when given, otherwise ~/.arcade/configs/levels.yaml,
./configs/levels.yaml or the built-in campaign.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	levels, err := config.LoadLevels(flagLevels)
	if err != nil {
		return err
	}

	fmt.Println("Campaign levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-18s  %-5s  %-5s  %s\n", "#", "Name", "Board", "Moves", "Goals")
	fmt.Printf("  %-3s  %-18s  %-5s  %-5s  %s\n", "-", "----", "-----", "-----", "-----")

	for i, lvl := range levels {
		goals, err := lvl.EngineGoals()
		if err != nil {
			return fmt.Errorf("level %d: %w", i+1, err)
		}
		parts := make([]string, len(goals))
		for j, g := range goals {
			parts[j] = fmt.Sprintf("%v x%d", g.Kind, g.Required)
		}
		board := fmt.Sprintf("%dx%d", lvl.Rows, lvl.Cols)
		fmt.Printf("  %-3d  %-18s  %-5s  %-5d  %s\n", i+1, lvl.Name, board, lvl.Moves, strings.Join(parts, ", "))
	}

	fmt.Println()
	fmt.Println("Run 'match3 play --campaign --level <n>' to start from a level.")
	return nil
}
