package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/emoji-fusion/internal/engine"
)

// ParseTile converts a tile name from the config into a board value.
func ParseTile(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bomb":
		return int(engine.KindBomb), nil
	case "coin":
		return int(engine.KindCoin), nil
	case "reward", "key":
		return int(engine.KindReward), nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(name))
	if err != nil || v <= 0 || !engine.ValidTile(v) {
		return 0, fmt.Errorf("unknown tile %q", name)
	}
	return v, nil
}

func (cb ComboEntry) key() (engine.ComboKey, error) {
	if len(cb.Pair) != 2 {
		return engine.ComboKey{}, fmt.Errorf("combos: pair %v must have two tiles", cb.Pair)
	}
	a, errA := ParseTile(cb.Pair[0])
	b, errB := ParseTile(cb.Pair[1])
	if errA != nil || errB != nil || !engine.IsSpecial(a) || !engine.IsSpecial(b) {
		return engine.ComboKey{}, fmt.Errorf("combos: pair %v must name two special tiles", cb.Pair)
	}
	return engine.Pair(engine.Kind(a), engine.Kind(b)), nil
}

// EngineOptions converts the spawn and combination tables for the engine.
func (c FusionConfig) EngineOptions() (engine.Options, error) {
	opts := engine.Options{Combos: make(map[engine.ComboKey]engine.ComboRule)}

	for _, s := range c.Spawn {
		v, err := ParseTile(s.Tile)
		if err != nil {
			return engine.Options{}, fmt.Errorf("spawn: %w", err)
		}
		opts.Spawns = append(opts.Spawns, engine.SpawnWeight{Value: v, Weight: s.Weight})
	}

	for _, cb := range c.Combos {
		k, err := cb.key()
		if err != nil {
			return engine.Options{}, err
		}
		opts.Combos[k] = engine.ComboRule{
			Rank:     cb.Rank,
			Fallback: cb.Fallback,
			Pool:     append([]int(nil), cb.Pool...),
			Coins:    cb.Coins,
		}
	}

	return opts, nil
}

// Debounce returns the minimum gap between accepted moves.
func (p ProgressionConfig) Debounce() time.Duration {
	return time.Duration(p.DebounceMillis) * time.Millisecond
}
