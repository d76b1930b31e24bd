package config

import (
	_ "embed"
)

//go:embed defaults/fusion.yaml
var defaultFusionYAML []byte

// DefaultFusionConfig returns the default game configuration.
func DefaultFusionConfig() FusionConfig {
	return FusionConfig{
		Spawn: []SpawnEntry{
			{Tile: "2", Weight: 0.85},
			{Tile: "4", Weight: 0.10},
			{Tile: "coin", Weight: 0.02},
			{Tile: "reward", Weight: 0.02},
			{Tile: "bomb", Weight: 0.01},
		},
		Combos: []ComboEntry{
			{Pair: []string{"coin", "coin"}, Rank: 2, Fallback: 16, Coins: 100},
			{Pair: []string{"reward", "reward"}, Rank: 0, Fallback: 64},
			{Pair: []string{"coin", "reward"}, Rank: 3, Fallback: 32},
			{Pair: []string{"bomb", "bomb"}, Rank: 0, Fallback: 128},
			{Pair: []string{"bomb", "coin"}, Pool: []int{32, 64, 128}, Coins: 50},
			{Pair: []string{"bomb", "reward"}, Pool: []int{128, 256, 512}},
		},
		Progression: ProgressionConfig{
			ThresholdPerLevel: 200,
			DebounceMillis:    100,
		},
		Economy: EconomyConfig{
			ScorePerCoin:    10,
			MilestoneEvery:  1000,
			SwitchersPerKey: 1,
			DefaultTheme:    "fruits",
		},
		Themes: []ThemeEntry{
			{ID: "fruits", Name: "Fruits", Category: "Nature"},
			{ID: "animals", Name: "Farm Animals", Category: "Animals", RequiredScore: 2500, RequiredCoins: 100},
			{ID: "wild_animals", Name: "Wild Animals", Category: "Animals", RequiredScore: 5000, RequiredCoins: 200},
			{ID: "ocean", Name: "Ocean Life", Category: "Nature", RequiredScore: 7500, RequiredCoins: 300},
			{ID: "faces", Name: "Emotions", Category: "Human", RequiredScore: 10000, RequiredCoins: 350},
			{ID: "professions", Name: "Professions", Category: "Human", RequiredScore: 12500, RequiredCoins: 500},
			{ID: "sports", Name: "Sports", Category: "Activities", RequiredScore: 15000, RequiredCoins: 300},
			{ID: "space", Name: "Space", Category: "Fantasy", RequiredScore: 17500, RequiredCoins: 300},
			{ID: "vehicles", Name: "Vehicles", Category: "Transport", RequiredScore: 20000, RequiredCoins: 350},
			{ID: "human", Name: "Human", Category: "Human", RequiredScore: 30000, RequiredCoins: 1500},
		},
	}
}
