package match3

import (
	"fmt"

	"github.com/vovakirdan/creature-match/internal/core"
	"github.com/vovakirdan/creature-match/internal/games/match3/engine"
)

const (
	cellWidth    = 4 // marker, glyph, marker, gap
	cellHeight   = 2 // glyph row plus spacer
	hudHeight    = 4
	footerHeight = 2
)

var tokenColors = map[engine.Token]core.Color{
	engine.Zouwu:      core.ColorOrange,
	engine.Swooping:   core.ColorBlue,
	engine.Salamander: core.ColorRed,
	engine.Puffskein:  core.ColorMagenta,
	engine.Kelpie:     core.ColorGreen,
}

// boardSize returns the outer size of the board box.
func (g *Game) boardSize() (w, h int) {
	if g.engine == nil {
		return 0, 0
	}
	return g.engine.Cols()*cellWidth + 1, g.engine.Rows()*cellHeight + 1
}

// boardOrigin returns the top-left corner of the board box.
func (g *Game) boardOrigin() (x, y int) {
	w, _ := g.boardSize()
	return (g.screenW - w) / 2, hudHeight
}

// cellOrigin returns the screen position of the left marker of cell c.
// The glyph sits one column to the right.
func (g *Game) cellOrigin(c engine.Coord) (x, y int) {
	bx, by := g.boardOrigin()
	return bx + 1 + c.Col*cellWidth, by + 1 + c.Row*cellHeight
}

// boardRect returns the board box.
func (g *Game) boardRect() core.Rect {
	x, y := g.boardOrigin()
	w, h := g.boardSize()
	return core.NewRect(x, y, w, h)
}

// cellAt maps a screen position to the board cell under it.
// Gaps between cells belong to the cell on their left or above.
func (g *Game) cellAt(x, y int) (engine.Coord, bool) {
	if g.engine == nil {
		return engine.Coord{}, false
	}
	box := g.boardRect()
	cells := core.NewRect(box.X+1, box.Y+1, g.engine.Cols()*cellWidth, g.engine.Rows()*cellHeight)
	if !cells.Contains(x, y) {
		return engine.Coord{}, false
	}
	return engine.C((y-cells.Y)/cellHeight, (x-cells.X)/cellWidth), true
}

// Resize updates the screen size without restarting the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := g.boardRect()

	g.renderHUD(dst, board.X, board.W)
	g.renderBoard(dst, board)
	g.renderFooter(dst, board.Bottom())
	g.renderOverlays(dst, board)
}

// renderTooSmall frames the screen and shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	frame := dst.Bounds()
	dst.DrawBox(frame)
	_, y := frame.Center()
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.Title()
	if g.mode == ModeCampaign {
		title = fmt.Sprintf("Level %d/%d: %s", g.levelIndex+1, len(g.levels), g.levels[g.levelIndex].Name)
	}
	dst.DrawTextCenteredColor(0, title, core.ColorBrightWhite)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score()))

	moves := fmt.Sprintf("Moves: %d", g.view.moves)
	movesColor := core.ColorDefault
	if g.view.moves <= 3 {
		movesColor = core.ColorRed
	}
	dst.DrawTextColor(max(boardX+boardW-len(moves), boardX), 1, moves, movesColor)

	g.renderGoals(dst, 2)
}

// renderGoals draws one "Z 3/5" entry per goal, centered.
func (g *Game) renderGoals(dst *core.Screen, y int) {
	entries := make([]string, len(g.view.goals))
	width := 0
	for i, gv := range g.view.goals {
		entries[i] = fmt.Sprintf(" %d/%d", min(gv.collected, gv.target), gv.target)
		width += 1 + len(entries[i])
	}
	width += 2 * max(len(entries)-1, 0)

	x := (dst.Width() - width) / 2
	for i, gv := range g.view.goals {
		dst.SetColor(x, y, gv.kind.Glyph(), tokenColors[gv.kind])
		countColor := core.ColorDefault
		if gv.collected >= gv.target {
			countColor = core.ColorGreen
		}
		dst.DrawTextColor(x+1, y, entries[i], countColor)
		x += 1 + len(entries[i]) + 2
	}
}

func (g *Game) renderBoard(dst *core.Screen, board core.Rect) {
	dst.DrawBoxColor(board, core.ColorGray)

	selected, hasSelection := g.engine.Selected()
	showCursor := !g.gameOver && !g.engine.Busy()

	for r := 0; r < g.engine.Rows(); r++ {
		for c := 0; c < g.engine.Cols(); c++ {
			cell := engine.C(r, c)
			x, y := g.cellOrigin(cell)

			glyph, color := g.cellGlyph(cell)
			dst.SetColor(x+1, y, glyph, color)

			switch {
			case g.view.inSwap(cell):
				dst.SetColor(x, y, '(', core.ColorCyan)
				dst.SetColor(x+2, y, ')', core.ColorCyan)
			case hasSelection && cell == selected:
				dst.SetColor(x, y, '<', core.ColorHighlight)
				dst.SetColor(x+2, y, '>', core.ColorHighlight)
			case showCursor && cell == g.cursor:
				dst.SetColor(x, y, '[', core.ColorBrightWhite)
				dst.SetColor(x+2, y, ']', core.ColorBrightWhite)
			case g.hinting && (cell == g.hintA || cell == g.hintB):
				dst.SetColor(x, y, '{', core.ColorYellow)
				dst.SetColor(x+2, y, '}', core.ColorYellow)
			}
		}
	}
}

// cellGlyph picks what to draw for a cell from the presenter's mirror.
func (g *Game) cellGlyph(c engine.Coord) (rune, core.Color) {
	if g.view.cleared[c] {
		return '*', core.ColorYellow
	}
	t := g.view.at(c)
	if !t.Valid() {
		return '.', core.ColorGray
	}
	if g.view.spawned[c] {
		return t.Glyph(), core.ColorBrightWhite
	}
	return t.Glyph(), tokenColors[t]
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	var msg string
	switch {
	case g.gameOver || g.levelCleared:
		return
	case g.engine.Busy():
		msg = "..."
	case g.hinting:
		msg = fmt.Sprintf("Hint: swap %v with %v", g.hintA, g.hintB)
	default:
		if _, ok := g.engine.Selected(); ok {
			msg = "Pick a neighbour to swap"
		}
	}
	if msg != "" {
		dst.DrawTextCenteredColor(y, msg, core.ColorGray)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	centerX, centerY := board.Center()

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.levelCleared:
		next := g.levels[g.levelIndex+1]
		g.drawOverlay(dst, centerX, centerY,
			fmt.Sprintf("Level %d cleared!", g.levelIndex+1),
			fmt.Sprintf("Next: %s", next.Name),
			"Press Enter")
	case g.won && g.mode == ModeCampaign:
		g.drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", fmt.Sprintf("Score: %d", g.score()), "Press R to restart")
	case g.won:
		g.drawOverlay(dst, centerX, centerY, "ALL CAUGHT!", fmt.Sprintf("Score: %d", g.score()), "Press R to restart")
	case g.gameOver:
		g.drawOverlay(dst, centerX, centerY, "OUT OF MOVES", fmt.Sprintf("Score: %d", g.score()), "Press R to restart")
	}
}

// drawOverlay draws a boxed block of centered lines over the board.
// The first line is a headline, ruled off from the rest.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, headline string, lines ...string) {
	maxLen := len(headline)
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.NewRect(centerX, centerY, 0, 0).Centered(maxLen+4, len(lines)+4)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, core.ColorHighlight)

	dst.DrawTextColor(centerX-len(headline)/2, box.Y+1, headline, core.ColorBrightWhite)
	dst.DrawHLine(box.X+2, box.Y+2, box.W-4, '-')
	for i, line := range lines {
		dst.DrawTextColor(centerX-len(line)/2, box.Y+3+i, line, core.ColorBrightWhite)
	}
}
