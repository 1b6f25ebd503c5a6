package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/creature-match/internal/core"
	"github.com/vovakirdan/creature-match/internal/games/match3"
	"github.com/vovakirdan/creature-match/internal/platform/tui"
	"github.com/vovakirdan/creature-match/internal/registry"
	"github.com/vovakirdan/creature-match/internal/storage"
)

var (
	flagCampaign bool
	flagLevel    int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Creature Match.

Classic mode deals a 5x5 board with 15 moves and one to three random
goals. The campaign plays the levels from levels.yaml in order.

Controls:
  Arrows/WASD  - Move cursor
  Space/Enter  - Select, then pick a neighbour to swap
  Mouse        - Click two neighbouring tiles
  H            - Hint
  X            - Drop selection
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options (classic only):
  easy   - More moves, smaller goals
  normal - As configured
  hard   - Fewer moves, larger goals

Examples:
  match3 play
  match3 play --difficulty hard
  match3 play --campaign
  match3 play --campaign --level 7
  match3 play --config ./my-match3.yaml --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagCampaign, "campaign", false, "Play the campaign instead of a classic board")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start from (1-based)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameID := match3.IDClassic
	if flagCampaign || flagLevel > 0 {
		gameID = match3.IDCampaign
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if flagLevel > 0 {
		if ls, ok := game.(registry.LevelSelector); ok {
			ls.SetStartLevel(flagLevel)
		}
	}

	store := openStore()
	defer closeStore(store)

	_, err = tui.Run(game, store, terminalConfig(), logger)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// terminalConfig builds the runtime config from the flags and the terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// openStore opens the score database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("closing scores database", "error", err)
	}
}
