package engine

import (
	"math/rand"
)

// SpawnKind classifies a transient UI notification produced by a move.
type SpawnKind string

const (
	SpawnKey  SpawnKind = "key"
	SpawnCoin SpawnKind = "coin"
	SpawnFire SpawnKind = "fire"
)

// SpawnEvent is a notification for floating feedback at a board position.
type SpawnEvent struct {
	Kind   SpawnKind
	Amount int
	Pos    Pos
}

// MoveResult is the outcome of a single move.
type MoveResult struct {
	Board        Board
	ScoreGained  int
	Combinations []Combination
	SpawnEvents  []SpawnEvent
	CoinsGained  int
	Changed      bool
	Spawned      *Pos // cell of the tile spawned after the move, if any
}

// Engine holds the random source and tuning used by the transforms.
// An Engine is not safe for concurrent use; each session owns one.
type Engine struct {
	rng  *rand.Rand
	opts Options
}

// New creates an engine. A nil rng is replaced by one seeded with 1.
func New(rng *rand.Rand, opts Options) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if len(opts.Spawns) == 0 {
		opts.Spawns = DefaultSpawns()
	}
	if opts.Combos == nil {
		opts.Combos = DefaultCombos()
	}
	return &Engine{rng: rng, opts: opts}
}

// InitBoard returns an empty board with two spawned tiles.
func (e *Engine) InitBoard() Board {
	var b Board
	e.spawnTile(&b)
	e.spawnTile(&b)
	return b
}

// spawnTile places a tile drawn from the spawn table in a random empty cell.
// Returns the chosen cell, or nil when the board is full.
func (e *Engine) spawnTile(b *Board) *Pos {
	empty := EmptyCells(*b)
	if len(empty) == 0 {
		return nil
	}
	cell := empty[e.rng.Intn(len(empty))]
	b[cell.Row][cell.Col] = e.drawSpawnValue()
	return &cell
}

// drawSpawnValue picks a value from the weighted spawn table.
func (e *Engine) drawSpawnValue() int {
	total := 0.0
	for _, s := range e.opts.Spawns {
		if s.Weight > 0 {
			total += s.Weight
		}
	}
	if total <= 0 {
		return 2
	}

	r := e.rng.Float64() * total
	for _, s := range e.opts.Spawns {
		if s.Weight <= 0 {
			continue
		}
		if r < s.Weight {
			return s.Value
		}
		r -= s.Weight
	}
	// Floating point leftovers land on the last positive entry.
	for i := len(e.opts.Spawns) - 1; i >= 0; i-- {
		if e.opts.Spawns[i].Weight > 0 {
			return e.opts.Spawns[i].Value
		}
	}
	return 2
}

// Spawn returns a copy of b with one extra tile and the cell it landed in.
func (e *Engine) Spawn(b Board) (Board, *Pos) {
	p := e.spawnTile(&b)
	return b, p
}

// Partition shuffles the occupied cells (Fisher-Yates), clears the first
// ceil(K/2) of them and resets the rest to 2. Returns the new board and the
// number of cells cleared.
func (e *Engine) Partition(b Board) (Board, int) {
	cells := OccupiedCells(b)
	e.rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	toClear := (len(cells) + 1) / 2
	for i, c := range cells {
		if i < toClear {
			b[c.Row][c.Col] = 0
		} else {
			b[c.Row][c.Col] = 2
		}
	}
	return b, toClear
}
