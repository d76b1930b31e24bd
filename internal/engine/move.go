package engine

// rowMerge is a combination found while compacting one row of the frame.
type rowMerge struct {
	combo Combination
	col   int
}

// compactRow slides a row to the left and merges adjacent tiles.
// Each tile merges at most once per move. highest is the distinct regular
// values of the whole board, used by the combination table.
func (e *Engine) compactRow(row [Size]int, highest []int) (result [Size]int, score int, merges []rowMerge) {
	tiles := make([]int, 0, Size)
	for _, v := range row {
		if v != 0 {
			tiles = append(tiles, v)
		}
	}

	writePos := 0
	for i := 0; i < len(tiles); i++ {
		cur := tiles[i]
		if i+1 < len(tiles) {
			next := tiles[i+1]

			if cur < 0 || next < 0 {
				if rule, value, ok := e.resolve(cur, next, highest); ok {
					result[writePos] = value
					score += value
					merges = append(merges, rowMerge{
						combo: Combination{
							A:      Kind(cur),
							B:      Kind(next),
							Result: value,
							Coins:  rule.Coins,
						},
						col: writePos,
					})
					writePos++
					i++
					continue
				}
			}

			if cur > 0 && cur == next {
				result[writePos] = cur * 2
				score += cur * 2
				writePos++
				i++
				continue
			}
		}

		result[writePos] = cur
		writePos++
	}

	return result, score, merges
}

// Move slides the board in dir, merges tiles and, if anything moved,
// spawns one new tile. An unknown direction or an invalid board yields the
// input board unchanged with no gain.
func (e *Engine) Move(b Board, dir Direction) MoveResult {
	res := MoveResult{Board: b}
	if !dir.Valid() || !b.Valid() {
		return res
	}

	turns := dir.quarterTurns()
	frame := RotateN(b, turns)
	highest := HighestDistinct(b)

	var slid Board
	for y := range Size {
		row, score, merges := e.compactRow(frame[y], highest)
		slid[y] = row
		res.ScoreGained += score

		for _, m := range merges {
			c := m.combo
			c.Pos = dir.FromFrame(Pos{Row: y, Col: m.col})
			res.Combinations = append(res.Combinations, c)
			res.CoinsGained += c.Coins
			res.SpawnEvents = append(res.SpawnEvents, spawnEventFor(c))
		}
	}

	moved := RotateN(slid, 4-turns)
	if moved != b {
		res.Changed = true
		res.Spawned = e.spawnTile(&moved)
	}
	res.Board = moved
	return res
}

// spawnEventFor picks the feedback shown for a combination.
func spawnEventFor(c Combination) SpawnEvent {
	switch {
	case c.Involves(KindReward):
		return SpawnEvent{Kind: SpawnKey, Amount: 1, Pos: c.Pos}
	case c.Involves(KindCoin):
		return SpawnEvent{Kind: SpawnCoin, Amount: c.Coins, Pos: c.Pos}
	default:
		return SpawnEvent{Kind: SpawnFire, Amount: c.Result, Pos: c.Pos}
	}
}
