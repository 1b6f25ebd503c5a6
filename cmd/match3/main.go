// match3 is Creature Match, a match-3 puzzle for the terminal.
//
// Usage:
//
//	match3 play              - Play a classic game
//	match3 play --campaign   - Play the campaign
//	match3 menu              - Pick a mode interactively
//	match3 serve             - Start SSH server for remote play
//	match3 scores            - Show high scores and results
//	match3 levels            - List campaign levels
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--config <path>     - Custom match3.yaml
//	--levels <path>     - Custom levels.yaml
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log destination (default: ~/.arcade/match3.log)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/creature-match/internal/config"
	"github.com/vovakirdan/creature-match/internal/games/match3"
	"github.com/vovakirdan/creature-match/internal/logging"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logger is built before every command; logCloser releases its file.
var (
	logger    = logging.Discard()
	logCloser io.Closer
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Creature Match - a match-3 puzzle in your terminal",
	Long: `Creature Match is a match-3 puzzle. Swap neighbouring creatures to line
up three or more of a kind; cleared tiles fall and refill, and new lines
cascade for free. Catch the creatures your goals ask for before the moves
run out.

Available commands:
  play     - Play a game directly
  menu     - Interactive mode and level picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent results
  levels   - List campaign levels

Examples:
  match3 play
  match3 play --difficulty easy
  match3 play --campaign --level 4
  match3 menu
  match3 serve --ssh :2222
  match3 scores`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom match3.yaml")
	pf.StringVar(&flagLevels, "levels", "", "Path to custom levels.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Classic difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", logging.DefaultFile, "Log file (- for stderr)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}

// setup validates the shared flags, builds the logger and configures the game package.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	preset := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && preset == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}

	// serve builds its own stderr logger.
	if cmd != serveCmd {
		l, closer, err := logging.New(logging.Options{Level: flagLogLevel, File: flagLogFile})
		if err != nil {
			return err
		}
		logger, logCloser = l, closer
	}

	match3.SetLogger(logger)
	match3.SetConfigPath(flagConfig)
	match3.SetLevelsPath(flagLevels)
	match3.SetDifficultyPreset(preset)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// useLogger swaps the active logger for commands that build their own.
func useLogger(l *log.Logger) {
	logger = l
	match3.SetLogger(l)
}
