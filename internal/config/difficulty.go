package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset parses a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// specialWeightScale returns how much the special tile spawn weights are
// multiplied by for a preset.
func specialWeightScale(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 2.0
	case DifficultyHard:
		return 0.5
	default:
		return 1.0
	}
}

// ApplyFusionPreset modifies the config based on a difficulty preset.
// Easy doubles the chance of special tiles and lowers level thresholds;
// hard halves special tiles, spawns more 4s and raises thresholds.
func ApplyFusionPreset(cfg *FusionConfig, preset DifficultyPreset) {
	scale := specialWeightScale(preset)

	spawn := make([]SpawnEntry, len(cfg.Spawn))
	for i, s := range cfg.Spawn {
		if v, err := ParseTile(s.Tile); err == nil && v < 0 {
			s.Weight *= scale
		}
		if preset == DifficultyHard && s.Tile == "4" {
			s.Weight *= 1.5
		}
		spawn[i] = s
	}
	cfg.Spawn = spawn

	switch preset {
	case DifficultyEasy:
		cfg.Progression.ThresholdPerLevel = cfg.Progression.ThresholdPerLevel * 3 / 4
	case DifficultyHard:
		cfg.Progression.ThresholdPerLevel = cfg.Progression.ThresholdPerLevel * 3 / 2
	}
	if cfg.Progression.ThresholdPerLevel < 1 {
		cfg.Progression.ThresholdPerLevel = 1
	}
}
