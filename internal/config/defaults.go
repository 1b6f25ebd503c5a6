package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// DefaultMatch3Config returns the classic rules: 5x5 board, 15 moves,
// 1-3 goal kinds of 5-10 tokens each, 10 points per cleared cell.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Rows: 5,
			Cols: 5,
		},
		Rules: RulesConfig{
			Moves:         15,
			RewardPerCell: 10,
			StableStart:   false,
		},
		Targets: TargetsConfig{
			MinKinds: 1,
			MaxKinds: 3,
			MinCount: 5,
			MaxCount: 10,
		},
		Animation: AnimationConfig{
			SwapMS:    150,
			ClearMS:   250,
			RefillMS:  200,
			MaxWaitMS: 400,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML by file name
// ("match3" or "levels"), or nil.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "match3":
		return defaultMatch3YAML
	case "levels":
		return defaultLevelsYAML
	default:
		return nil
	}
}
