package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/emoji-fusion/internal/engine"
)

// regularTile reports whether v is a value a combination may place.
func regularTile(v int) bool {
	return v > 0 && engine.ValidTile(v)
}

// LoadFusion loads the game configuration.
// Search order: customPath -> ~/.fusion/configs/fusion.yaml -> ./configs/fusion.yaml -> embedded default
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names.
func LoadFusion(customPath string) (FusionConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FusionConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseFusion(data)
		if err != nil {
			return FusionConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("fusion.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseFusion(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/fusion.yaml"); err == nil {
		if cfg, err := parseFusion(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseFusion(defaultFusionYAML)
	if err != nil {
		return DefaultFusionConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseFusion decodes YAML over the defaults and validates the result.
func parseFusion(data []byte) (FusionConfig, error) {
	cfg := DefaultFusionConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FusionConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return FusionConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fusion", "configs", filename)
}

// Validate checks that the configuration describes a playable game.
func (c FusionConfig) Validate() error {
	var errs []error

	total := 0.0
	for _, s := range c.Spawn {
		if _, err := ParseTile(s.Tile); err != nil {
			errs = append(errs, fmt.Errorf("spawn: %w", err))
		}
		if s.Weight < 0 {
			errs = append(errs, fmt.Errorf("spawn: negative weight for %q", s.Tile))
		}
		total += s.Weight
	}
	if total <= 0 {
		errs = append(errs, errors.New("spawn: weights must sum to more than zero"))
	}

	for _, cb := range c.Combos {
		if _, err := cb.key(); err != nil {
			errs = append(errs, err)
		}
		if len(cb.Pool) == 0 && cb.Fallback <= 0 {
			errs = append(errs, fmt.Errorf("combos: %v needs a fallback or a pool", cb.Pair))
		}
		if cb.Fallback != 0 && !regularTile(cb.Fallback) {
			errs = append(errs, fmt.Errorf("combos: %v fallback %d is not a power of two", cb.Pair, cb.Fallback))
		}
		for _, v := range cb.Pool {
			if !regularTile(v) {
				errs = append(errs, fmt.Errorf("combos: %v pool value %d is not a power of two", cb.Pair, v))
			}
		}
	}

	if c.Progression.ThresholdPerLevel <= 0 {
		errs = append(errs, errors.New("progression: threshold_per_level must be positive"))
	}
	if c.Progression.DebounceMillis < 0 {
		errs = append(errs, errors.New("progression: debounce_ms must not be negative"))
	}
	if c.Economy.ScorePerCoin <= 0 {
		errs = append(errs, errors.New("economy: score_per_coin must be positive"))
	}

	seen := make(map[string]bool)
	for _, th := range c.Themes {
		if th.ID == "" {
			errs = append(errs, errors.New("themes: entry without id"))
			continue
		}
		if seen[th.ID] {
			errs = append(errs, fmt.Errorf("themes: duplicate id %q", th.ID))
		}
		seen[th.ID] = true
	}
	if c.Economy.DefaultTheme != "" && !seen[c.Economy.DefaultTheme] {
		errs = append(errs, fmt.Errorf("economy: default_theme %q is not in the catalog", c.Economy.DefaultTheme))
	}

	return errors.Join(errs...)
}
