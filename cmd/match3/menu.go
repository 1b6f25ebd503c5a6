package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/creature-match/internal/config"
	"github.com/vovakirdan/creature-match/internal/platform/tui"
	"github.com/vovakirdan/creature-match/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode and level picker",
	Long: `Start Creature Match in interactive menu mode.

Pick classic, campaign, or a campaign level to start from. After a game
you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Esc/B        - Back
  Q            - Quit

Examples:
  match3 menu
  match3 menu --fps 60
  match3 menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	defer closeStore(store)

	levels, err := config.LoadLevels(flagLevels)
	if err != nil {
		logger.Warn("level select disabled", "error", err)
	}

	cfg := terminalConfig()
	for {
		res, err := tui.RunMenu(cfg, levels)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit || (res.GameID == "" && !res.WantsScoreboard):
			return nil

		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(res.GameID)
		if err != nil {
			return err
		}
		if ls, ok := game.(registry.LevelSelector); ok && res.Level > 0 {
			ls.SetStartLevel(res.Level)
		}

		// Fresh board each round unless a seed was pinned.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		backToMenu, err := tui.Run(game, store, cfg, logger)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !backToMenu {
			return nil
		}
	}
}
