package engine

import "testing"

func TestGameOver(t *testing.T) {
	e := seeded(1)

	// Board with no empty cells and no possible merges
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}

	if !e.IsGameOver(board) {
		t.Error("Board with no moves should be game over")
	}
	if !IsStuck(board) {
		t.Error("IsStuck should agree with IsGameOver on a locked board")
	}

	// Same board with one cell matching its neighbour
	boardWithMerge := board
	boardWithMerge[0][1] = 2

	if e.IsGameOver(boardWithMerge) {
		t.Error("Board with possible merge should not be game over")
	}
	if IsStuck(boardWithMerge) {
		t.Error("IsStuck should see the 2-2 pair")
	}

	boardWithEmpty := board
	boardWithEmpty[2][2] = 0

	if e.IsGameOver(boardWithEmpty) {
		t.Error("Board with empty cell should not be game over")
	}
}

func TestAdjacentSpecialsAreNotGameOver(t *testing.T) {
	e := seeded(1)
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, -2, 4096},
		{8192, 16384, -1, 65536},
	}

	if e.IsGameOver(board) {
		t.Error("Vertically adjacent specials can still combine")
	}
	if IsStuck(board) {
		t.Error("IsStuck should treat adjacent specials as mergeable")
	}
}

func TestSpecialNextToRegularIsGameOver(t *testing.T) {
	e := seeded(1)
	board := Board{
		{2, 4, 8, 16},
		{32, -2, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, -3},
	}

	if !e.IsGameOver(board) {
		t.Error("Isolated specials cannot combine with regular tiles")
	}
}

func TestCanMoveInMatchesMove(t *testing.T) {
	e := seeded(11)
	board := Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{0, 0, 0, 0},
	}

	for _, dir := range Directions {
		want := e.Move(board, dir).Changed
		if got := e.CanMoveIn(board, dir); got != want {
			t.Errorf("CanMoveIn(%s) = %v, Move changed = %v", dir, got, want)
		}
	}

	// Only down can move here: rows are packed and alternate, columns are
	// packed against the top.
	if e.CanMoveIn(board, DirLeft) || e.CanMoveIn(board, DirRight) || e.CanMoveIn(board, DirUp) {
		t.Error("left, right and up should be blocked")
	}
	if !e.CanMove(board) {
		t.Error("CanMove should find the downward move")
	}
}

func TestEmptyBoardIsNotGameOver(t *testing.T) {
	if seeded(1).IsGameOver(Board{}) {
		t.Error("empty board is not game over")
	}
}

func TestDetonate(t *testing.T) {
	board := Board{
		{-2, 4, 8, 16},
		{32, -1, 128, 256},
		{2, 4, 2, 4},
		{8, 16, 32, 64},
	}

	got, cleared, err := Detonate(board, Pos{Row: 1, Col: 1})
	if err != nil {
		t.Fatalf("Detonate() failed: %v", err)
	}

	expected := Board{
		{-2, 0, 0, 16},
		{0, 0, 0, 256},
		{0, 0, 0, 4},
		{8, 16, 32, 64},
	}
	if got != expected {
		t.Errorf("Detonate: got\n%v\nwant\n%v", got, expected)
	}
	if cleared != 7 {
		t.Errorf("cleared = %d, want 7", cleared)
	}

	if _, _, err := Detonate(board, Pos{Row: 0, Col: 1}); err == nil {
		t.Error("Detonate on a regular tile should fail")
	}
	if _, _, err := Detonate(board, Pos{Row: 9, Col: 0}); err == nil {
		t.Error("Detonate out of range should fail")
	}
}
