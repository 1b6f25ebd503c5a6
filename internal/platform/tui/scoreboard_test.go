package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/creature-match/internal/core"
	"github.com/vovakirdan/creature-match/internal/storage"
)

func scoreboardUpdate(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestScoreboardShowsScoresAndResults(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore("fake", 120); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}
	res := storage.ResultFromGame("sess-1", core.GameResult{
		GameID: "fake", Mode: "classic", Won: true, Score: 120, MovesUsed: 4, LongestCascade: 3,
	})
	if _, err := store.SaveResult(res); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.scores) != 1 {
		t.Fatalf("scores = %+v", m.scores)
	}
	view := m.View()
	for _, want := range []string{"HIGH SCORES", "120", "won 1 lost 0", "longest chain 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = scoreboardUpdate(t, m, runes("v"))
	if !m.recent || len(m.results) != 1 {
		t.Fatalf("recent = %v, results = %+v", m.recent, m.results)
	}
	if !strings.Contains(m.View(), "RECENT GAMES") {
		t.Error("recent view title missing")
	}

	m = scoreboardUpdate(t, m, runes("b"))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty message missing")
	}
	if !strings.Contains(m.View(), "no statistics") {
		t.Error("stats placeholder missing")
	}

	m = scoreboardUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.gameCursor != 0 {
		t.Errorf("gameCursor = %d, want wrap to 0 with one game", m.gameCursor)
	}

	m = scoreboardUpdate(t, m, runes("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit")
	}
}
