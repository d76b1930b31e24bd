// Package engine implements the board transforms of Emoji Fusion: spawning,
// directional moves, special-tile combinations and the game-over test.
// Every exported transform returns a new board and never mutates its input.
package engine

import (
	"errors"
	"fmt"
	"sort"
)

// Size is the board dimension.
const Size = 4

// Board is a Size×Size grid. 0 is empty, positive powers of two are regular
// tiles and the negative TileKind values are special tiles.
type Board [Size][Size]int

// TileKind identifies a special tile. Regular tiles have KindRegular.
type TileKind int

const (
	KindRegular TileKind = 0
	KindBomb    TileKind = -1
	KindCoin    TileKind = -2
	KindReward  TileKind = -3
)

// String returns the kind name.
func (k TileKind) String() string {
	switch k {
	case KindBomb:
		return "bomb"
	case KindCoin:
		return "coin"
	case KindReward:
		return "reward"
	default:
		return "regular"
	}
}

var (
	// ErrInvalidBoard is returned when a board has the wrong shape or holds
	// a value that cannot appear on a board.
	ErrInvalidBoard = errors.New("engine: invalid board")

	// ErrInvalidDirection is returned for an unknown direction name.
	ErrInvalidDirection = errors.New("engine: invalid direction")

	// ErrNoBomb is returned by Detonate when the target cell is not a Bomb.
	ErrNoBomb = errors.New("engine: no bomb at position")
)

// Pos is a cell coordinate.
type Pos struct {
	Row int
	Col int
}

// Kind returns the tile kind of a cell value.
func Kind(v int) TileKind {
	if v < 0 {
		return TileKind(v)
	}
	return KindRegular
}

// IsSpecial reports whether v is a special tile.
func IsSpecial(v int) bool {
	return v == int(KindBomb) || v == int(KindCoin) || v == int(KindReward)
}

// ValidTile reports whether v may appear on a board.
func ValidTile(v int) bool {
	if v == 0 || IsSpecial(v) {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}

// Valid reports whether every cell holds a legal value.
func (b Board) Valid() bool {
	for y := range Size {
		for x := range Size {
			if !ValidTile(b[y][x]) {
				return false
			}
		}
	}
	return true
}

// FromRows converts a decoded [][]int into a Board.
func FromRows(rows [][]int) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("%w: %d rows", ErrInvalidBoard, len(rows))
	}
	for y, row := range rows {
		if len(row) != Size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, y, len(row))
		}
		for x, v := range row {
			if !ValidTile(v) {
				return Board{}, fmt.Errorf("%w: value %d at (%d,%d)", ErrInvalidBoard, v, y, x)
			}
			b[y][x] = v
		}
	}
	return b, nil
}

// Rows returns the board as a slice of rows, suitable for encoding.
func (b Board) Rows() [][]int {
	rows := make([][]int, Size)
	for y := range Size {
		rows[y] = append([]int(nil), b[y][:]...)
	}
	return rows
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func EmptyCells(b Board) []Pos {
	var cells []Pos
	for y := range Size {
		for x := range Size {
			if b[y][x] == 0 {
				cells = append(cells, Pos{Row: y, Col: x})
			}
		}
	}
	return cells
}

// OccupiedCells returns the coordinates of all non-empty cells.
func OccupiedCells(b Board) []Pos {
	var cells []Pos
	for y := range Size {
		for x := range Size {
			if b[y][x] != 0 {
				cells = append(cells, Pos{Row: y, Col: x})
			}
		}
	}
	return cells
}

// IsFull reports whether the board has no empty cell.
func IsFull(b Board) bool {
	return len(EmptyCells(b)) == 0
}

// MaxTile returns the highest regular tile on the board, or 0.
func MaxTile(b Board) int {
	maxVal := 0
	for y := range Size {
		for x := range Size {
			if b[y][x] > maxVal {
				maxVal = b[y][x]
			}
		}
	}
	return maxVal
}

// HighestDistinct returns the distinct regular tile values on the board,
// highest first.
func HighestDistinct(b Board) []int {
	seen := make(map[int]bool)
	var values []int
	for y := range Size {
		for x := range Size {
			v := b[y][x]
			if v > 0 && !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	return values
}
