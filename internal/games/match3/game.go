// Package match3 wires the match-3 engine into the arcade runtime: it turns
// input frames into cell clicks, paces cascades by animation ticks and
// draws the board.
package match3

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/creature-match/internal/config"
	"github.com/vovakirdan/creature-match/internal/core"
	"github.com/vovakirdan/creature-match/internal/games/match3/engine"
	"github.com/vovakirdan/creature-match/internal/logging"
	"github.com/vovakirdan/creature-match/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeCampaign Mode = "campaign"
)

// Registry IDs.
const (
	IDClassic  = "match3"
	IDCampaign = "match3_campaign"
)

// Game is one match-3 run in either mode.
type Game struct {
	mode     Mode
	rng      *rand.Rand
	tick     uint64
	tickRate int
	session  string

	cfg        config.Match3Config
	levels     []config.Level
	levelIndex int
	startLevel int

	engine *engine.Session
	view   *presenter

	cursor       engine.Coord
	hinting      bool
	hintA, hintB engine.Coord
	waitTicks    int // ticks left before the next engine step
	lastStats    engine.Stats

	// Totals banked from cleared campaign levels.
	bankedScore   int
	bankedMoves   int
	bankedCleared int
	bestCascade   int

	screenW int
	screenH int

	gameOver        bool
	won             bool
	paused          bool
	tooSmall        bool
	levelCleared    bool
	levelClearTicks int
}

// Package-level variables for config
var (
	configPath       string
	levelsPath       string
	difficultyPreset config.DifficultyPreset
	logger           = logging.Discard()
)

// SetConfigPath sets a custom config file path for the next game.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsPath sets a custom campaign file path.
func SetLevelsPath(path string) {
	levelsPath = path
}

// SetDifficultyPreset sets the difficulty preset for classic games.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger sets the logger used by all games. nil discards output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	logger = l
}

// New creates a classic game: one board, random goals.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewCampaign creates a campaign game that plays the configured levels in order.
func NewCampaign() *Game {
	return &Game{mode: ModeCampaign}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDCampaign, func() registry.Game {
		return NewCampaign()
	})
}

// SetStartLevel sets the campaign starting level (1-based) for this game and its
// restarts. 0 means the first level; out-of-range values are ignored.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeCampaign {
		return IDCampaign
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeCampaign {
		return "Creature Match (Campaign)"
	}
	return "Creature Match"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.session = cfg.Session
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.gameOver = false
	g.won = false
	g.paused = false
	g.levelCleared = false
	g.levelClearTicks = 0
	g.bankedScore, g.bankedMoves, g.bankedCleared, g.bestCascade = 0, 0, 0, 0

	mcfg, err := config.LoadMatch3(configPath)
	if err != nil {
		logger.Warn("using default config", "error", err)
	}
	if g.mode == ModeClassic && difficultyPreset != "" {
		config.ApplyMatch3Preset(&mcfg, difficultyPreset)
	}
	g.cfg = mcfg

	g.levelIndex = 0
	if g.mode == ModeCampaign {
		g.levels = loadLevels()
		if g.startLevel > 0 && g.startLevel <= len(g.levels) {
			g.levelIndex = g.startLevel - 1
		}
	}

	g.loadLevel()
}

// loadLevels returns the campaign, falling back to the embedded levels.
func loadLevels() []config.Level {
	levels, err := config.LoadLevels(levelsPath)
	if err == nil {
		return levels
	}
	logger.Warn("using default levels", "error", err)
	levels, err = config.ParseLevels(config.GetDefaultYAML("levels.yaml"))
	if err != nil {
		// The embedded campaign is validated by tests; reaching this is a build defect.
		panic(err)
	}
	return levels
}

// loadLevel starts a session for the current mode and level.
func (g *Game) loadLevel() {
	opts := g.cfg.Options()
	if g.mode == ModeCampaign {
		lvl := g.levels[g.levelIndex]
		lopts, err := lvl.Options(g.cfg)
		if err != nil {
			logger.Error("invalid level, using classic rules", "level", g.levelIndex+1, "error", err)
		} else {
			opts = lopts
		}
	}

	if err := g.startSession(opts); err != nil {
		logger.Error("cannot start session, using defaults", "error", err)
		if err := g.startSession(engine.DefaultOptions()); err != nil {
			panic(err)
		}
	}
}

// startSession replaces the engine session and resets per-board UI state.
func (g *Game) startSession(opts engine.Options) error {
	view := newPresenter(g.cfg.Animation)
	s, err := engine.NewSession(opts, g.rng, view, view)
	if err != nil {
		return err
	}

	g.engine = s
	g.view = view
	g.cursor = engine.C(s.Rows()/2, s.Cols()/2)
	g.hinting = false
	g.waitTicks = 0
	g.lastStats = s.Stats()
	g.checkScreenSize()

	logger.Debug("board ready",
		"session", g.session,
		"mode", string(g.mode),
		"level", g.Level(),
		"rows", s.Rows(),
		"cols", s.Cols(),
		"moves", opts.Moves,
	)
	return nil
}

// Level returns the 1-based campaign level, or 0 in classic mode.
func (g *Game) Level() int {
	if g.mode != ModeCampaign {
		return 0
	}
	return g.levelIndex + 1
}

// checkScreenSize checks if the screen can hold the HUD, board and footer.
func (g *Game) checkScreenSize() {
	boardW, boardH := g.boardSize()
	minW := max(boardW+2, 40)
	minH := hudHeight + boardH + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		// Restart is handled by the platform
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		if in.Has(core.ActionConfirm) || in.Has(core.ActionSelect) || g.levelClearTicks >= 2*g.tickRate {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.engine.Busy() {
		g.drive()
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return core.StepResult{State: g.State()}
}

// handleInput applies cursor, hint and selection input while the board is idle.
func (g *Game) handleInput(in core.InputFrame) {
	rows, cols := g.engine.Rows(), g.engine.Cols()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, rows-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, rows-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, cols-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, cols-1)
	}

	if in.Has(core.ActionDeselect) {
		g.engine.Deselect()
	}
	if in.Has(core.ActionHint) {
		g.hintA, g.hintB, g.hinting = g.engine.Hint()
	}

	if in.Has(core.ActionSelect) {
		g.click(g.cursor)
	}
	for _, p := range in.Clicks {
		if g.engine.Busy() {
			break
		}
		if c, ok := g.cellAt(p.X, p.Y); ok {
			g.cursor = c
			g.click(c)
		}
	}
}

// click forwards a cell click to the engine.
func (g *Game) click(c engine.Coord) {
	if g.engine.Click(c.Row, c.Col) != engine.ClickSwapped {
		return
	}
	g.hinting = false
	g.waitTicks = g.ticksFor(g.view.lastWait)
}

// drive runs engine steps, honouring the requested animation waits.
// Zero-length steps run back to back within one tick.
func (g *Game) drive() {
	if g.waitTicks > 0 {
		g.waitTicks--
		return
	}
	for {
		wait, more := g.engine.Advance()
		if !more {
			g.settled()
			return
		}
		if g.waitTicks = g.ticksFor(wait); g.waitTicks > 0 {
			return
		}
	}
}

// ticksFor converts a requested wait into ticks, capped by the max wait.
func (g *Game) ticksFor(d time.Duration) int {
	d = min(d, g.cfg.Animation.MaxWait())
	if d <= 0 {
		return 0
	}
	n := d.Milliseconds() * int64(g.tickRate)
	return int((n + 999) / 1000)
}

// settled runs once the engine is idle again after a swap.
func (g *Game) settled() {
	g.view.idle()

	st := g.engine.Stats()
	if st.SwapsRejected > g.lastStats.SwapsRejected {
		logger.Debug("swap rejected", "session", g.session, "moves", g.engine.Status().MovesLeft)
	}
	if st.SwapsAccepted > g.lastStats.SwapsAccepted {
		res := g.engine.LastResolution()
		logger.Debug("swap accepted",
			"session", g.session,
			"depth", res.Depth(),
			"cleared", res.CellsCleared,
			"score", g.score(),
			"moves", g.engine.Status().MovesLeft,
		)
	}
	if st.Reshuffles > g.lastStats.Reshuffles {
		logger.Debug("board reshuffled", "session", g.session)
	}
	g.lastStats = st

	switch g.engine.Outcome() {
	case engine.OutcomeWin:
		if g.mode == ModeCampaign && g.levelIndex < len(g.levels)-1 {
			g.levelCleared = true
			g.levelClearTicks = 0
			logger.Info("level cleared", "session", g.session, "level", g.Level(), "score", g.score())
			return
		}
		g.finish(true)
	case engine.OutcomeLoss:
		g.finish(false)
	}
}

// advanceLevel banks the cleared level and starts the next one.
func (g *Game) advanceLevel() {
	status := g.engine.Status()
	stats := g.engine.Stats()
	g.bankedScore += status.Score
	g.bankedMoves += status.MovesUsed
	g.bankedCleared += stats.CellsCleared
	g.bestCascade = max(g.bestCascade, stats.LongestCascade)

	g.levelCleared = false
	g.levelClearTicks = 0
	g.levelIndex++
	g.loadLevel()
}

func (g *Game) finish(won bool) {
	g.gameOver = true
	g.won = won
	logger.Info("game over",
		"session", g.session,
		"mode", string(g.mode),
		"level", g.Level(),
		"won", won,
		"score", g.score(),
		"moves", g.bankedMoves+g.engine.Status().MovesUsed,
	)
}

// score is the banked campaign score plus the current board's.
func (g *Game) score() int {
	return g.bankedScore + g.engine.Status().Score
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score(),
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Result summarises the run for the leaderboard.
func (g *Game) Result() core.GameResult {
	status := g.engine.Status()
	stats := g.engine.Stats()

	secs := 0
	if g.tickRate > 0 {
		secs = int(g.tick / uint64(g.tickRate))
	}
	return core.GameResult{
		GameID:         g.ID(),
		Mode:           string(g.mode),
		Level:          g.Level(),
		Won:            g.won,
		Score:          g.score(),
		MovesUsed:      g.bankedMoves + status.MovesUsed,
		LongestCascade: max(g.bestCascade, stats.LongestCascade),
		Cleared:        g.bankedCleared + stats.CellsCleared,
		DurationSecs:   secs,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space/Click: Select | H: Hint | X: Deselect | P: Pause | R: Restart | Q: Quit"
}
