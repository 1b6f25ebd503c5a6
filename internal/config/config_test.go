package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/creature-match/internal/games/match3/engine"
)

// isolate points the user config directory at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	isolate(t)

	cfg, err := LoadMatch3("")
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg != DefaultMatch3Config() {
		t.Errorf("embedded config %+v differs from DefaultMatch3Config %+v", cfg, DefaultMatch3Config())
	}
	if GetDefaultYAML("match3") == nil || GetDefaultYAML("levels") == nil || GetDefaultYAML("pong") != nil {
		t.Error("GetDefaultYAML returned unexpected values")
	}
}

func TestLoadMatch3CustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "board:\n  rows: 7\n  cols: 6\nrules:\n  moves: 20\n")

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg.Board.Rows != 7 || cfg.Board.Cols != 6 || cfg.Rules.Moves != 20 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Untouched sections keep their defaults.
	if cfg.Rules.RewardPerCell != 10 || cfg.Targets != DefaultMatch3Config().Targets {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMatch3UserDir(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".arcade", "configs", "match3.yaml"), "rules:\n  moves: 9\n")

	cfg, err := LoadMatch3("")
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg.Rules.Moves != 9 {
		t.Errorf("Moves = %d, expected 9 from user config", cfg.Rules.Moves)
	}
}

func TestLoadMatch3Errors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"tiny board", "board:\n  rows: 2\n", engine.ErrGridTooSmall},
		{"no moves", "rules:\n  moves: 0\n", engine.ErrInvalidConfig},
		{"bad targets", "targets:\n  min_kinds: 4\n  max_kinds: 2\n", engine.ErrInvalidConfig},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			writeFile(t, path, tc.content)

			cfg, err := LoadMatch3(path)
			if !errors.Is(err, tc.want) {
				t.Errorf("LoadMatch3() error = %v, expected %v", err, tc.want)
			}
			if cfg != DefaultMatch3Config() {
				t.Error("failed load should return defaults")
			}
		})
	}

	if _, err := LoadMatch3(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "board: [1, 2\n")
	if _, err := LoadMatch3(bad); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestApplyMatch3Preset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		moves    int
		maxKinds int
		minCount int
		maxCount int
	}{
		{DifficultyEasy, 20, 2, 5, 10},
		{DifficultyNormal, 15, 3, 5, 10},
		{DifficultyHard, 10, 3, 8, 15},
		{"", 15, 3, 5, 10},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultMatch3Config()
			ApplyMatch3Preset(&cfg, tc.preset)

			if cfg.Rules.Moves != tc.moves || cfg.Targets.MaxKinds != tc.maxKinds ||
				cfg.Targets.MinCount != tc.minCount || cfg.Targets.MaxCount != tc.maxCount {
				t.Errorf("preset %q gave %+v", tc.preset, cfg)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %q is invalid: %v", tc.preset, err)
			}
		})
	}

	if ParsePreset("hard") != DifficultyHard || ParsePreset("fixed") != "" {
		t.Error("ParsePreset mismatch")
	}
}

func TestAnimationDurations(t *testing.T) {
	a := DefaultMatch3Config().Animation
	if a.Swap() != 150*time.Millisecond || a.MaxWait() != 400*time.Millisecond {
		t.Errorf("durations: swap %v max %v", a.Swap(), a.MaxWait())
	}
}

func TestLoadLevelsEmbedded(t *testing.T) {
	isolate(t)

	levels, err := LoadLevels("")
	if err != nil {
		t.Fatalf("LoadLevels() failed: %v", err)
	}
	if len(levels) != 10 {
		t.Fatalf("expected 10 campaign levels, got %d", len(levels))
	}

	base := DefaultMatch3Config()
	for i, lvl := range levels {
		opts, err := lvl.Options(base)
		if err != nil {
			t.Errorf("level %d (%s): %v", i+1, lvl.Name, err)
			continue
		}
		if opts.RewardPerCell != base.Rules.RewardPerCell || len(opts.Goals) == 0 {
			t.Errorf("level %d options = %+v", i+1, opts)
		}
	}

	first, _ := levels[0].EngineGoals()
	if len(first) != 1 || first[0] != (engine.Goal{Kind: engine.Zouwu, Required: 5}) {
		t.Errorf("level 1 goals = %+v", first)
	}
}

func TestParseLevelsErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "levels: []\n", ErrNoLevels},
		{"unknown kind", "levels:\n  - {name: x, rows: 5, cols: 5, moves: 5, goals: [{kind: dragon, count: 3}]}\n", engine.ErrUnknownToken},
		{"no goals", "levels:\n  - {name: x, rows: 5, cols: 5, moves: 5}\n", engine.ErrInvalidConfig},
		{"small grid", "levels:\n  - {name: x, rows: 2, cols: 5, moves: 5, goals: [{kind: zouwu, count: 3}]}\n", engine.ErrGridTooSmall},
		{"duplicate kind", "levels:\n  - {name: x, rows: 5, cols: 5, moves: 5, goals: [{kind: zouwu, count: 3}, {kind: Z, count: 2}]}\n", engine.ErrInvalidConfig},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLevels([]byte(tc.doc)); !errors.Is(err, tc.want) {
				t.Errorf("ParseLevels() error = %v, expected %v", err, tc.want)
			}
		})
	}
}
