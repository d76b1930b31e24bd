// Package config provides YAML-based tuning for Emoji Fusion: spawn table,
// special-tile combinations, level progression, the coin economy and the
// theme catalog.
package config

// FusionConfig contains all configuration for the game.
type FusionConfig struct {
	Spawn       []SpawnEntry      `yaml:"spawn"`
	Combos      []ComboEntry      `yaml:"combos"`
	Progression ProgressionConfig `yaml:"progression"`
	Economy     EconomyConfig     `yaml:"economy"`
	Themes      []ThemeEntry      `yaml:"themes"`
}

// SpawnEntry is one weighted outcome of a tile spawn.
// Tile is a power of two ("2", "4") or a special name ("coin", "reward",
// "bomb").
type SpawnEntry struct {
	Tile   string  `yaml:"tile"`
	Weight float64 `yaml:"weight"`
}

// ComboEntry defines what two special tiles merge into.
type ComboEntry struct {
	Pair     []string `yaml:"pair"`
	Rank     int      `yaml:"rank"`     // 0 = highest distinct tile on the board
	Fallback int      `yaml:"fallback"` // used when the board lacks that rank
	Pool     []int    `yaml:"pool"`     // if set, result is drawn uniformly from it
	Coins    int      `yaml:"coins"`    // coin bonus granted by the combination
}

// ProgressionConfig defines levels and input pacing.
type ProgressionConfig struct {
	ThresholdPerLevel int `yaml:"threshold_per_level"` // next level at per_level × level
	DebounceMillis    int `yaml:"debounce_ms"`         // minimum gap between accepted moves
}

// EconomyConfig defines coin and switcher income.
type EconomyConfig struct {
	ScorePerCoin      int    `yaml:"score_per_coin"`     // one coin per this many points
	MilestoneEvery    int    `yaml:"milestone_every"`    // one switcher per this many session points, 0 disables
	SwitchersPerKey   int    `yaml:"switchers_per_key"`  // switchers granted per reward combination
	StartingCoins     int    `yaml:"starting_coins"`     // balance of a fresh profile
	StartingSwitchers int    `yaml:"starting_switchers"` // switchers of a fresh profile
	DefaultTheme      string `yaml:"default_theme"`      // theme unlocked and selected for a fresh profile
}

// ThemeEntry is a theme catalog row.
type ThemeEntry struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Category      string `yaml:"category"`
	RequiredScore int    `yaml:"required_score"` // best score that unlocks it for free
	RequiredCoins int    `yaml:"required_coins"` // purchase price
}

// Threshold returns the cumulative progress needed to finish level.
func (p ProgressionConfig) Threshold(level int) int {
	if level < 1 {
		level = 1
	}
	return p.ThresholdPerLevel * level
}
