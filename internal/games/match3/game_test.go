package match3

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/creature-match/internal/config"
	"github.com/vovakirdan/creature-match/internal/core"
	"github.com/vovakirdan/creature-match/internal/games/match3/engine"
	"github.com/vovakirdan/creature-match/internal/registry"
)

var (
	// Swapping (0,2)-(1,2) makes five Zouwu in row 0.
	winBoard = []string{"ZZSZZ", "PKZKP", "KPAPK", "AKPKA", "PAKAP"}
	// Swapping (4,2)-(4,3) clears three Zouwu and chains into three Kelpie.
	cascadeBoard = []string{"PASAP", "KPZPS", "AZAZP", "SKKAZ", "ZZKZA"}
	// No runs and no matching swap.
	latinBoard = []string{"ZSAPK", "APKZS", "KZSAP", "SAPKZ", "PKZSA"}
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 42, Session: "test"}
}

func newGame(t *testing.T, mode Mode) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := &Game{mode: mode}
	g.Reset(testConfig())
	return g
}

// useBoard replaces the random board with a fixed one.
func useBoard(t *testing.T, g *Game, board []string, goals []engine.Goal, moves int) {
	t.Helper()
	grid, err := engine.ParseGrid(board...)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	opts := g.cfg.Options()
	opts.Board = grid
	opts.Goals = goals
	opts.Moves = moves
	opts.StableStart = false
	if err := g.startSession(opts); err != nil {
		t.Fatalf("startSession: %v", err)
	}
}

func press(g *Game, actions ...core.Action) core.StepResult {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return g.Step(f)
}

func clickCell(g *Game, c engine.Coord) core.StepResult {
	x, y := g.cellOrigin(c)
	f := core.NewInputFrame()
	f.Click(x+1, y)
	return g.Step(f)
}

// settle steps until the engine is idle.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 1000 && g.engine.Busy(); i++ {
		g.Step(core.NewInputFrame())
	}
	if g.engine.Busy() {
		t.Fatal("engine still busy after 1000 ticks")
	}
}

var zouwu5 = []engine.Goal{{Kind: engine.Zouwu, Required: 5}}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDClassic, IDCampaign} {
		if !registry.Exists(id) {
			t.Errorf("%s not registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %s, want %s", g.ID(), id)
		}
		if _, ok := g.(registry.ResultReporter); !ok {
			t.Errorf("%s does not report results", id)
		}
		if _, ok := g.(registry.Resizer); !ok {
			t.Errorf("%s does not handle resize", id)
		}
		if _, ok := g.(registry.LevelSelector); !ok {
			t.Errorf("%s has no level selection", id)
		}
	}
}

func TestClassicDefaults(t *testing.T) {
	g := newGame(t, ModeClassic)

	if g.engine.Rows() != 5 || g.engine.Cols() != 5 {
		t.Errorf("board = %dx%d, want 5x5", g.engine.Rows(), g.engine.Cols())
	}
	status := g.engine.Status()
	if status.MovesLeft != 15 {
		t.Errorf("MovesLeft = %d, want 15", status.MovesLeft)
	}
	if n := len(status.Goals); n < 1 || n > 3 {
		t.Errorf("got %d goals, want 1-3", n)
	}
	if g.cfg.Rules.StableStart {
		t.Error("classic mode should draw the opening board uniformly")
	}
	if _, _, ok := engine.FindSwap(g.engine.Grid()); !ok {
		t.Error("opening board offers no swap")
	}
	if g.Level() != 0 {
		t.Errorf("Level() = %d, want 0", g.Level())
	}
	if g.State().Paused {
		t.Error("game should not start paused")
	}
}

func TestDeterminism(t *testing.T) {
	script := func(g *Game) []Snapshot {
		var snaps []Snapshot
		frames := [][]core.Action{
			{core.ActionUp}, {core.ActionSelect}, {core.ActionRight}, {core.ActionSelect},
			{core.ActionHint}, {core.ActionDown}, {core.ActionSelect}, {core.ActionLeft}, {core.ActionSelect},
		}
		for _, f := range frames {
			press(g, f...)
			snaps = append(snaps, g.Snapshot())
			for i := 0; i < 10; i++ {
				g.Step(core.NewInputFrame())
				snaps = append(snaps, g.Snapshot())
			}
		}
		return snaps
	}

	a := script(newGame(t, ModeClassic))
	b := script(newGame(t, ModeClassic))
	if len(a) != len(b) {
		t.Fatalf("snapshot counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("snapshot %d differs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestWinWithCursor(t *testing.T) {
	g := newGame(t, ModeClassic)
	useBoard(t, g, winBoard, zouwu5, 15)

	// Cursor starts at the centre (2,2).
	press(g, core.ActionUp)
	press(g, core.ActionUp)
	press(g, core.ActionSelect)
	if sel, ok := g.engine.Selected(); !ok || sel != engine.C(0, 2) {
		t.Fatalf("selection = %v %v, want (0,2)", sel, ok)
	}
	press(g, core.ActionDown)
	press(g, core.ActionSelect)
	if !g.engine.Busy() {
		t.Fatal("swap did not start")
	}
	settle(t, g)

	state := g.State()
	if !state.GameOver || !state.Won {
		t.Fatalf("state = %+v, want won", state)
	}
	res := g.Result()
	if res.GameID != IDClassic || !res.Won {
		t.Errorf("result = %+v", res)
	}
	if res.MovesUsed != 1 {
		t.Errorf("MovesUsed = %d, want 1", res.MovesUsed)
	}
	if res.Cleared < 5 || res.Score < 50 {
		t.Errorf("Cleared = %d, Score = %d, want at least 5 and 50", res.Cleared, res.Score)
	}
}

func TestWinWithMouse(t *testing.T) {
	g := newGame(t, ModeClassic)
	useBoard(t, g, winBoard, zouwu5, 15)

	clickCell(g, engine.C(0, 2))
	clickCell(g, engine.C(1, 2))
	settle(t, g)

	if !g.State().Won {
		t.Fatalf("state = %+v, want won", g.State())
	}
	if g.cursor != engine.C(1, 2) {
		t.Errorf("cursor = %v, want it to follow the click", g.cursor)
	}
}

func TestInputIgnoredAfterGameOver(t *testing.T) {
	g := newGame(t, ModeClassic)
	useBoard(t, g, winBoard, zouwu5, 15)
	clickCell(g, engine.C(0, 2))
	clickCell(g, engine.C(1, 2))
	settle(t, g)

	before := g.Snapshot()
	clickCell(g, engine.C(3, 3))
	press(g, core.ActionUp)
	after := g.Snapshot()
	if after.Board != before.Board || after.Cursor != before.Cursor {
		t.Error("input changed a finished game")
	}
	if _, ok := g.engine.Selected(); ok {
		t.Error("selection accepted after game over")
	}
}

func TestRejectedSwapKeepsMoves(t *testing.T) {
	g := newGame(t, ModeClassic)
	useBoard(t, g, latinBoard, zouwu5, 15)
	before := g.engine.Grid()

	clickCell(g, engine.C(0, 0))
	clickCell(g, engine.C(0, 1))
	settle(t, g)

	if !g.engine.Grid().Equal(before) {
		t.Errorf("board changed:\n%s", g.engine.Grid())
	}
	if got := g.engine.Status().MovesLeft; got != 15 {
		t.Errorf("MovesLeft = %d, want 15", got)
	}
	if g.lastStats.SwapsRejected != 1 {
		t.Errorf("SwapsRejected = %d, want 1", g.lastStats.SwapsRejected)
	}
	if g.State().GameOver {
		t.Error("rejected swap ended the game")
	}
}

func TestLossWhenMovesRunOut(t *testing.T) {
	g := newGame(t, ModeClassic)
	useBoard(t, g, winBoard, []engine.Goal{{Kind: engine.Zouwu, Required: 1000}}, 1)

	clickCell(g, engine.C(0, 2))
	clickCell(g, engine.C(1, 2))
	settle(t, g)

	state := g.State()
	if !state.GameOver || state.Won {
		t.Fatalf("state = %+v, want lost", state)
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "OUT OF MOVES") {
		t.Error("loss overlay missing")
	}
	for y := 0; y < screen.Height()-1; y++ {
		if strings.Contains(screen.Row(y), "OUT OF MOVES") {
			if !strings.Contains(screen.Row(y+1), "---") {
				t.Errorf("overlay headline not ruled off:\n%s", screen)
			}
			break
		}
	}
}

func TestPause(t *testing.T) {
	g := newGame(t, ModeClassic)
	cursor := g.cursor

	if !press(g, core.ActionPause).State.Paused {
		t.Fatal("expected paused")
	}
	press(g, core.ActionUp)
	if g.cursor != cursor {
		t.Error("cursor moved while paused")
	}
	if press(g, core.ActionPause).State.Paused {
		t.Error("expected unpaused")
	}
}

func TestHintAndDeselect(t *testing.T) {
	g := newGame(t, ModeClassic)
	useBoard(t, g, winBoard, zouwu5, 15)

	press(g, core.ActionHint)
	if !g.hinting || !g.hintA.Adjacent(g.hintB) {
		t.Fatalf("hint = %v %v-%v, want an adjacent pair", g.hinting, g.hintA, g.hintB)
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Hint: swap") {
		t.Error("hint footer missing")
	}

	press(g, core.ActionSelect)
	if _, ok := g.engine.Selected(); !ok {
		t.Fatal("select did not pick the cursor cell")
	}
	press(g, core.ActionDeselect)
	if _, ok := g.engine.Selected(); ok {
		t.Error("deselect kept the selection")
	}
}

func TestCampaignAdvancesLevel(t *testing.T) {
	g := newGame(t, ModeCampaign)
	if g.Level() != 1 {
		t.Fatalf("Level() = %d, want 1", g.Level())
	}
	if g.engine.Rows() != g.levels[0].Rows || g.engine.Cols() != g.levels[0].Cols {
		t.Errorf("board = %dx%d, want level 1 size", g.engine.Rows(), g.engine.Cols())
	}

	useBoard(t, g, winBoard, zouwu5, 15)
	clickCell(g, engine.C(0, 2))
	clickCell(g, engine.C(1, 2))
	settle(t, g)

	if !g.levelCleared {
		t.Fatal("level not cleared")
	}
	if st := g.State(); !st.Paused || st.GameOver {
		t.Errorf("banner state = %+v", st)
	}
	score := g.score()

	press(g, core.ActionConfirm)
	if g.levelCleared || g.Level() != 2 {
		t.Fatalf("levelCleared = %v, Level() = %d, want level 2", g.levelCleared, g.Level())
	}
	if g.bankedScore != score || g.score() != score {
		t.Errorf("banked %d, score %d, want %d", g.bankedScore, g.score(), score)
	}
	if g.engine.Rows() != g.levels[1].Rows {
		t.Errorf("rows = %d, want %d", g.engine.Rows(), g.levels[1].Rows)
	}
	res := g.Result()
	if res.Level != 2 || res.MovesUsed != 1 || res.Mode != string(ModeCampaign) {
		t.Errorf("result = %+v", res)
	}
}

func TestCampaignBannerTimesOut(t *testing.T) {
	g := newGame(t, ModeCampaign)
	useBoard(t, g, winBoard, zouwu5, 15)
	clickCell(g, engine.C(0, 2))
	clickCell(g, engine.C(1, 2))
	settle(t, g)

	for i := 0; i < 2*g.tickRate; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.levelCleared || g.Level() != 2 {
		t.Errorf("banner did not advance: Level() = %d", g.Level())
	}
}

func TestCampaignFinalLevelWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	levels, err := config.LoadLevels("")
	if err != nil {
		t.Fatalf("LoadLevels: %v", err)
	}

	g := NewCampaign()
	g.SetStartLevel(len(levels))
	g.Reset(testConfig())
	if g.Level() != len(levels) {
		t.Fatalf("Level() = %d, want %d", g.Level(), len(levels))
	}

	useBoard(t, g, winBoard, zouwu5, 15)
	clickCell(g, engine.C(0, 2))
	clickCell(g, engine.C(1, 2))
	settle(t, g)

	if g.levelCleared || !g.State().Won {
		t.Fatalf("state = %+v, levelCleared = %v, want campaign won", g.State(), g.levelCleared)
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "CAMPAIGN COMPLETE!") {
		t.Error("campaign overlay missing")
	}
}

func TestStartLevelSurvivesRestart(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := NewCampaign()
	g.SetStartLevel(3)
	g.Reset(testConfig())
	if g.Level() != 3 {
		t.Fatalf("Level() = %d, want 3", g.Level())
	}
	g.Reset(testConfig())
	if g.Level() != 3 {
		t.Errorf("Level() after restart = %d, want 3", g.Level())
	}

	g.SetStartLevel(99)
	g.Reset(testConfig())
	if g.Level() != 1 {
		t.Errorf("out-of-range start level gave %d, want 1", g.Level())
	}
}

func TestDifficultyPreset(t *testing.T) {
	SetDifficultyPreset(config.DifficultyEasy)
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := newGame(t, ModeClassic)
	if got := g.engine.Status().MovesLeft; got != 20 {
		t.Errorf("MovesLeft = %d, want 20 on easy", got)
	}
}

func TestTicksForClampsToMaxWait(t *testing.T) {
	g := newGame(t, ModeClassic)
	g.cfg.Animation = config.AnimationConfig{SwapMS: 5000, MaxWaitMS: 100}

	tests := []struct {
		name string
		ms   int
		want int
	}{
		{"zero", 0, 0},
		{"short", 50, 2},
		{"at cap", 100, 3},
		{"clamped", 5000, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.ticksFor(config.AnimationConfig{SwapMS: tt.ms}.Swap()); got != tt.want {
				t.Errorf("ticksFor(%dms) = %d, want %d", tt.ms, got, tt.want)
			}
		})
	}

	g.cfg.Animation.MaxWaitMS = 0
	if got := g.ticksFor(g.cfg.Animation.Swap()); got != 0 {
		t.Errorf("ticksFor with no max wait = %d, want 0", got)
	}
}

func TestPresenterMirrorsEngine(t *testing.T) {
	g := newGame(t, ModeClassic)
	useBoard(t, g, cascadeBoard, []engine.Goal{{Kind: engine.Zouwu, Required: 1000}}, 15)

	if err := g.engine.AttemptSwap(engine.C(4, 2), engine.C(4, 3)); err != nil {
		t.Fatalf("AttemptSwap: %v", err)
	}
	if !reflect.DeepEqual(g.view.board, g.engine.Grid().Snapshot()) {
		t.Fatal("mirror differs after swap")
	}
	for step := 0; g.engine.Busy(); step++ {
		g.engine.Advance()
		if !reflect.DeepEqual(g.view.board, g.engine.Grid().Snapshot()) {
			t.Fatalf("mirror differs after step %d (%s):\n%s", step, g.engine.Phase(), g.engine.Grid())
		}
	}
	if d := g.engine.LastResolution().Depth(); d < 2 {
		t.Errorf("cascade depth = %d, want at least 2", d)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, ModeClassic)
	useBoard(t, g, winBoard, zouwu5, 15)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Creature Match", "Score: 0", "Moves: 15", "Z 0/5"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	x, y := g.cellOrigin(engine.C(0, 0))
	if got := screen.Get(x+1, y); got != 'Z' {
		t.Errorf("cell (0,0) = %q, want 'Z'", got)
	}
	if got := screen.GetCell(x+1, y).Color; got != core.ColorOrange {
		t.Errorf("Zouwu color = %v, want orange", got)
	}
	x, y = g.cellOrigin(g.cursor)
	if screen.Get(x, y) != '[' || screen.Get(x+2, y) != ']' {
		t.Error("cursor markers missing")
	}
}

func TestCellAt(t *testing.T) {
	g := newGame(t, ModeClassic)

	for _, c := range []engine.Coord{engine.C(0, 0), engine.C(2, 3), engine.C(4, 4)} {
		x, y := g.cellOrigin(c)
		got, ok := g.cellAt(x+1, y)
		if !ok || got != c {
			t.Errorf("cellAt(origin of %v) = %v %v", c, got, ok)
		}
	}
	if _, ok := g.cellAt(0, 0); ok {
		t.Error("(0,0) should be outside the board")
	}
	bx, by := g.boardOrigin()
	w, h := g.boardSize()
	if _, ok := g.cellAt(bx+w, by+h); ok {
		t.Error("point past the board should miss")
	}
	if _, ok := g.cellAt(bx+2, by); ok {
		t.Error("top border should miss")
	}
	if _, ok := g.cellAt(bx, by+1); ok {
		t.Error("left border should miss")
	}
	if got := g.boardRect().Bottom(); got != by+h {
		t.Errorf("board bottom = %d, want %d", got, by+h)
	}
}

func TestTooSmallAndResize(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := New()
	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 20, 10
	g.Reset(cfg)

	if !g.State().Paused {
		t.Error("small window should pause")
	}
	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small message missing")
	}
	if screen.Get(0, 0) != '┌' || screen.Get(19, 9) != '┘' {
		t.Errorf("too-small frame missing:\n%s", screen)
	}

	board := g.engine.Grid()
	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("still paused after resize")
	}
	if !g.engine.Grid().Equal(board) {
		t.Error("resize replaced the board")
	}
}
