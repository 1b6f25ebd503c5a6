package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/creature-match/internal/games/match3/engine"
)

// ErrNoLevels is returned when a campaign file defines no levels.
var ErrNoLevels = errors.New("config: no levels defined")

// Level is one campaign stage with fixed goals.
type Level struct {
	Name  string      `yaml:"name"`
	Rows  int         `yaml:"rows"`
	Cols  int         `yaml:"cols"`
	Moves int         `yaml:"moves"`
	Goals []LevelGoal `yaml:"goals"`
}

// LevelGoal asks for Count tokens of Kind, named as in "zouwu" or "kelpie".
type LevelGoal struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`
}

type levelsFile struct {
	Levels []Level `yaml:"levels"`
}

// ParseLevels decodes and validates a campaign document.
func ParseLevels(data []byte) ([]Level, error) {
	var f levelsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: cannot parse levels: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, ErrNoLevels
	}
	for i, lvl := range f.Levels {
		if _, err := lvl.Options(DefaultMatch3Config()); err != nil {
			return nil, fmt.Errorf("config: level %d (%s): %w", i+1, lvl.Name, err)
		}
	}
	return f.Levels, nil
}

// EngineGoals converts the goal list to engine goals.
func (l Level) EngineGoals() ([]engine.Goal, error) {
	if len(l.Goals) == 0 {
		return nil, fmt.Errorf("%w: level has no goals", engine.ErrInvalidConfig)
	}
	goals := make([]engine.Goal, 0, len(l.Goals))
	for _, g := range l.Goals {
		kind, err := engine.ParseToken(g.Kind)
		if err != nil {
			return nil, err
		}
		goals = append(goals, engine.Goal{Kind: kind, Required: g.Count})
	}
	return goals, nil
}

// Options builds session options for the level. Scoring and animation rules come from base.
func (l Level) Options(base Match3Config) (engine.Options, error) {
	goals, err := l.EngineGoals()
	if err != nil {
		return engine.Options{}, err
	}
	opts := base.Options()
	opts.Rows, opts.Cols, opts.Moves = l.Rows, l.Cols, l.Moves
	opts.Goals = goals
	if err := opts.Validate(); err != nil {
		return engine.Options{}, err
	}
	return opts, nil
}
