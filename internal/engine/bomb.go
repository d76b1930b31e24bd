package engine

import "fmt"

// Detonate fires the Bomb at p: the bomb and every regular tile in its 3×3
// neighbourhood are cleared. Special tiles around it survive.
// Returns the new board and the number of regular tiles destroyed.
func Detonate(b Board, p Pos) (Board, int, error) {
	if p.Row < 0 || p.Row >= Size || p.Col < 0 || p.Col >= Size {
		return b, 0, fmt.Errorf("%w: position (%d,%d) out of range", ErrInvalidBoard, p.Row, p.Col)
	}
	if b[p.Row][p.Col] != int(KindBomb) {
		return b, 0, fmt.Errorf("%w (%d,%d)", ErrNoBomb, p.Row, p.Col)
	}

	cleared := 0
	for y := max(0, p.Row-1); y <= min(Size-1, p.Row+1); y++ {
		for x := max(0, p.Col-1); x <= min(Size-1, p.Col+1); x++ {
			if b[y][x] > 0 {
				b[y][x] = 0
				cleared++
			}
		}
	}
	b[p.Row][p.Col] = 0
	return b, cleared, nil
}
