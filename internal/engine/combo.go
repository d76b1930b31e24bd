package engine

// ComboKey is an unordered pair of special tile kinds.
type ComboKey struct {
	A TileKind
	B TileKind
}

// Pair builds the canonical key for two kinds regardless of order.
func Pair(a, b TileKind) ComboKey {
	if a < b {
		a, b = b, a
	}
	return ComboKey{A: a, B: b}
}

// Combination records a merge resolved through the combination table.
type Combination struct {
	A      TileKind
	B      TileKind
	Result int
	Coins  int
	Pos    Pos // post-move board coordinates of the resulting tile
}

// Involves reports whether either side of the combination is k.
func (c Combination) Involves(k TileKind) bool {
	return c.A == k || c.B == k
}

// resolve returns the tile produced by merging special values a and b, or
// ok=false when the pair has no rule (for example special + regular).
// highest is the board's distinct regular values, highest first.
func (e *Engine) resolve(a, b int, highest []int) (rule ComboRule, value int, ok bool) {
	if !IsSpecial(a) || !IsSpecial(b) {
		return ComboRule{}, 0, false
	}
	rule, ok = e.opts.Combos[Pair(Kind(a), Kind(b))]
	if !ok {
		return ComboRule{}, 0, false
	}
	if len(rule.Pool) > 0 {
		return rule, rule.Pool[e.rng.Intn(len(rule.Pool))], true
	}
	if rule.Rank >= 0 && rule.Rank < len(highest) {
		return rule, highest[rule.Rank], true
	}
	return rule, rule.Fallback, true
}
