// Package config provides YAML-based game configuration loading and
// difficulty presets for Creature Match.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/creature-match/internal/games/match3/engine"
)

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board     BoardConfig     `yaml:"board"`
	Rules     RulesConfig     `yaml:"rules"`
	Targets   TargetsConfig   `yaml:"targets"`
	Animation AnimationConfig `yaml:"animation"`
}

// BoardConfig defines the grid size.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// RulesConfig defines the move budget and scoring.
type RulesConfig struct {
	Moves         int  `yaml:"moves"`
	RewardPerCell int  `yaml:"reward_per_cell"`
	StableStart   bool `yaml:"stable_start"`
}

// TargetsConfig bounds random goal generation in classic mode.
type TargetsConfig struct {
	MinKinds int `yaml:"min_kinds"`
	MaxKinds int `yaml:"max_kinds"`
	MinCount int `yaml:"min_count"`
	MaxCount int `yaml:"max_count"`
}

// AnimationConfig holds requested animation lengths in milliseconds.
type AnimationConfig struct {
	SwapMS    int `yaml:"swap_ms"`
	ClearMS   int `yaml:"clear_ms"`
	RefillMS  int `yaml:"refill_ms"`
	MaxWaitMS int `yaml:"max_wait_ms"`
}

// Swap returns the swap animation length.
func (a AnimationConfig) Swap() time.Duration { return ms(a.SwapMS) }

// Clear returns the clear animation length.
func (a AnimationConfig) Clear() time.Duration { return ms(a.ClearMS) }

// Refill returns the refill animation length.
func (a AnimationConfig) Refill() time.Duration { return ms(a.RefillMS) }

// MaxWait returns the upper bound the driver waits between engine steps.
func (a AnimationConfig) MaxWait() time.Duration { return ms(a.MaxWaitMS) }

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Range converts the section to the engine's goal range.
func (t TargetsConfig) Range() engine.TargetRange {
	return engine.TargetRange{
		MinKinds: t.MinKinds,
		MaxKinds: t.MaxKinds,
		MinCount: t.MinCount,
		MaxCount: t.MaxCount,
	}
}

// Options converts the config to classic-mode session options.
func (c Match3Config) Options() engine.Options {
	return engine.Options{
		Rows:          c.Board.Rows,
		Cols:          c.Board.Cols,
		Moves:         c.Rules.Moves,
		RewardPerCell: c.Rules.RewardPerCell,
		Targets:       c.Targets.Range(),
		StableStart:   c.Rules.StableStart,
	}
}

// Validate rejects configurations that cannot produce a playable game.
func (c Match3Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a := c.Animation
	if a.SwapMS < 0 || a.ClearMS < 0 || a.RefillMS < 0 || a.MaxWaitMS < 0 {
		return fmt.Errorf("config: negative animation length")
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI flag value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p
	default:
		return ""
	}
}

// ApplyMatch3Preset adjusts moves and goal counts for a difficulty preset.
// Normal leaves the loaded config untouched.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.Moves += 5
		cfg.Targets.MaxKinds = min(cfg.Targets.MaxKinds, 2)
		cfg.Targets.MinKinds = min(cfg.Targets.MinKinds, cfg.Targets.MaxKinds)
	case DifficultyHard:
		cfg.Rules.Moves = max(cfg.Rules.Moves-5, 5)
		cfg.Targets.MinCount += 3
		cfg.Targets.MaxCount += 5
	}
}
