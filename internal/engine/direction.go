package engine

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every move direction.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection parses "up", "down", "left" or "right" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// quarterTurns is the number of Rotate calls that turn d into a leftward move.
func (d Direction) quarterTurns() int {
	switch d {
	case DirUp:
		return 1
	case DirRight:
		return 2
	case DirDown:
		return 3
	default:
		return 0
	}
}

// Rotate turns the board a quarter: new[i][j] = old[j][Size-1-i].
func Rotate(b Board) Board {
	var r Board
	for i := range Size {
		for j := range Size {
			r[i][j] = b[j][Size-1-i]
		}
	}
	return r
}

// RotateN applies Rotate n times (n taken modulo 4).
func RotateN(b Board, n int) Board {
	n = ((n % 4) + 4) % 4
	for range n {
		b = Rotate(b)
	}
	return b
}

// ToFrame maps a board position into the rotated frame used to move in d.
func (d Direction) ToFrame(p Pos) Pos {
	for range d.quarterTurns() {
		p = Pos{Row: Size - 1 - p.Col, Col: p.Row}
	}
	return p
}

// FromFrame maps a position in d's rotated frame back to board coordinates.
// Since the frame is rotated back after compaction, the result is also the
// post-move position of whatever landed there.
func (d Direction) FromFrame(p Pos) Pos {
	for range d.quarterTurns() {
		p = Pos{Row: p.Col, Col: Size - 1 - p.Row}
	}
	return p
}
