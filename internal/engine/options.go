package engine

// SpawnWeight is one entry of the spawn table.
type SpawnWeight struct {
	Value  int
	Weight float64
}

// ComboRule describes the outcome of merging two special tiles.
// Rank selects the Rank-th highest distinct regular value on the board
// (0 = highest); Fallback is used when the board has fewer ranks. When Pool
// is non-empty the result is drawn uniformly from it instead.
type ComboRule struct {
	Rank     int
	Fallback int
	Pool     []int
	Coins    int // Coin bonus granted by this combination
}

// Options tunes the engine. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	Spawns []SpawnWeight
	Combos map[ComboKey]ComboRule
}

// DefaultSpawns is the stock spawn distribution.
func DefaultSpawns() []SpawnWeight {
	return []SpawnWeight{
		{Value: 2, Weight: 0.85},
		{Value: 4, Weight: 0.10},
		{Value: int(KindCoin), Weight: 0.02},
		{Value: int(KindReward), Weight: 0.02},
		{Value: int(KindBomb), Weight: 0.01},
	}
}

// DefaultCombos is the stock combination table.
func DefaultCombos() map[ComboKey]ComboRule {
	return map[ComboKey]ComboRule{
		Pair(KindCoin, KindCoin):     {Rank: 2, Fallback: 16, Coins: 100},
		Pair(KindReward, KindReward): {Rank: 0, Fallback: 64},
		Pair(KindCoin, KindReward):   {Rank: 3, Fallback: 32},
		Pair(KindBomb, KindBomb):     {Rank: 0, Fallback: 128},
		Pair(KindBomb, KindCoin):     {Pool: []int{32, 64, 128}, Coins: 50},
		Pair(KindBomb, KindReward):   {Pool: []int{128, 256, 512}},
	}
}

// DefaultOptions returns the stock engine tuning.
func DefaultOptions() Options {
	return Options{
		Spawns: DefaultSpawns(),
		Combos: DefaultCombos(),
	}
}
