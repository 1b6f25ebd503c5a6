package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMatch3 loads the game configuration.
// Search order: customPath -> ~/.arcade/configs/match3.yaml -> ./configs/match3.yaml -> embedded default.
// Values missing from a file keep their defaults. The result is validated.
func LoadMatch3(customPath string) (Match3Config, error) {
	cfg := DefaultMatch3Config()

	data, src, err := find(customPath, "match3.yaml", defaultMatch3YAML)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultMatch3Config(), fmt.Errorf("config: cannot parse %s: %w", src, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultMatch3Config(), fmt.Errorf("%w (in %s)", err, src)
	}
	return cfg, nil
}

// LoadLevels loads the campaign.
// Search order: customPath -> ~/.arcade/configs/levels.yaml -> ./configs/levels.yaml -> embedded default.
func LoadLevels(customPath string) ([]Level, error) {
	data, src, err := find(customPath, "levels.yaml", defaultLevelsYAML)
	if err != nil {
		return nil, err
	}
	levels, err := ParseLevels(data)
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, src)
	}
	return levels, nil
}

// find returns the first readable config source and its name.
// A custom path that cannot be read is an error; other locations are optional.
func find(customPath, filename string, embedded []byte) ([]byte, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, customPath, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		return data, customPath, nil
	}

	candidates := []string{
		userConfigPath(filename),
		filepath.Join("configs", filename),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			return data, path, nil
		}
	}

	return embedded, "embedded " + filename, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
