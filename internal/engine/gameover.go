package engine

// mergeable reports whether two adjacent tiles would combine in a move.
func (e *Engine) mergeable(a, b int) bool {
	if a == 0 || b == 0 {
		return false
	}
	if a > 0 && a == b {
		return true
	}
	if IsSpecial(a) && IsSpecial(b) {
		_, ok := e.opts.Combos[Pair(Kind(a), Kind(b))]
		return ok
	}
	return false
}

// rowCanSlide reports whether compacting the row left would change it.
func (e *Engine) rowCanSlide(row [Size]int) bool {
	seenEmpty := false
	prev := 0
	for _, v := range row {
		if v == 0 {
			seenEmpty = true
			continue
		}
		if seenEmpty || e.mergeable(prev, v) {
			return true
		}
		prev = v
	}
	return false
}

// CanMoveIn reports whether a move in dir would change the board.
// It draws nothing from the random source.
func (e *Engine) CanMoveIn(b Board, dir Direction) bool {
	if !dir.Valid() || !b.Valid() {
		return false
	}
	frame := RotateN(b, dir.quarterTurns())
	for y := range Size {
		if e.rowCanSlide(frame[y]) {
			return true
		}
	}
	return false
}

// CanMove reports whether a move in any of the four directions changes
// the board.
func (e *Engine) CanMove(b Board) bool {
	for _, d := range Directions {
		if e.CanMoveIn(b, d) {
			return true
		}
	}
	return false
}

// IsGameOver returns true when the board is full and no direction moves.
func (e *Engine) IsGameOver(b Board) bool {
	return IsFull(b) && !e.CanMove(b)
}

// IsStuck applies the adjacency rule directly: the board is full, no two
// neighbours are equal regular tiles and no two neighbours are both special.
func IsStuck(b Board) bool {
	if !IsFull(b) {
		return false
	}
	for y := range Size {
		for x := range Size {
			v := b[y][x]
			if x < Size-1 && adjacentMergeable(v, b[y][x+1]) {
				return false
			}
			if y < Size-1 && adjacentMergeable(v, b[y+1][x]) {
				return false
			}
		}
	}
	return true
}

func adjacentMergeable(a, b int) bool {
	if IsSpecial(a) && IsSpecial(b) {
		return true
	}
	return a > 0 && a == b
}
