package game

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/emoji-fusion/internal/catalog"
	"github.com/vovakirdan/emoji-fusion/internal/engine"
)

// UseSwitcher spends one switcher to shuffle the occupied cells, clear the
// first half (rounded up) and reset the rest to 2. It clears game over.
// Returns false, without spending, when no switcher is left, the board is
// empty or the level is complete.
func (s *Session) UseSwitcher() (Snapshot, bool) {
	if s.st.LevelComplete {
		s.log.Debug("switcher rejected", "phase", s.st.phase())
		return s.Snapshot(), false
	}
	if s.st.Switchers <= 0 {
		s.log.Debug("switcher rejected", "error", ErrNoSwitchers)
		return s.Snapshot(), false
	}
	if len(engine.OccupiedCells(s.board)) == 0 {
		return s.Snapshot(), false
	}

	board, cleared := s.eng.Partition(s.board)
	if len(engine.OccupiedCells(board)) == 0 {
		// a single tile was cleared; keep something to play with
		board, _ = s.eng.Spawn(board)
	}
	s.board = board
	s.st.Switchers--
	s.st.GameOver = false
	s.last = engine.MoveResult{}
	s.log.Debug("switcher used", "cleared", cleared, "left", s.st.Switchers)
	s.persist()
	return s.Snapshot(), true
}

// ResumeWithSwitcher leaves game over by using a switcher.
func (s *Session) ResumeWithSwitcher() (Snapshot, bool) {
	return s.UseSwitcher()
}

// SwitchTile spends one switcher to overwrite a single cell.
func (s *Session) SwitchTile(row, col, value int) (Snapshot, error) {
	if s.st.LevelComplete {
		return s.Snapshot(), ErrWrongPhase
	}
	if row < 0 || row >= engine.Size || col < 0 || col >= engine.Size || !engine.ValidTile(value) {
		return s.Snapshot(), fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidTile, value, row, col)
	}
	if s.st.Switchers <= 0 {
		return s.Snapshot(), ErrNoSwitchers
	}

	s.board[row][col] = value
	s.st.Switchers--
	s.last = engine.MoveResult{}
	s.refreshGameOver()
	s.persist()
	return s.Snapshot(), nil
}

// DetonateBomb fires the bomb at (row, col). It costs nothing.
func (s *Session) DetonateBomb(row, col int) (Snapshot, error) {
	if s.st.LevelComplete {
		return s.Snapshot(), ErrWrongPhase
	}
	board, cleared, err := engine.Detonate(s.board, engine.Pos{Row: row, Col: col})
	switch {
	case errors.Is(err, engine.ErrNoBomb):
		return s.Snapshot(), fmt.Errorf("%w: (%d,%d)", ErrNotBomb, row, col)
	case err != nil:
		return s.Snapshot(), fmt.Errorf("%w: %v", ErrInvalidTile, err)
	}

	s.board = board
	s.last = engine.MoveResult{}
	s.log.Debug("bomb detonated", "row", row, "col", col, "cleared", cleared)
	s.refreshGameOver()
	s.persist()
	return s.Snapshot(), nil
}

// AddCoins credits n coins. Non-positive amounts are ignored.
func (s *Session) AddCoins(n int) {
	if n <= 0 {
		return
	}
	s.st.Coins += n
	s.persist()
}

// SpendCoins debits n coins. It fails without change when the balance is short.
func (s *Session) SpendCoins(n int) bool {
	if n < 0 || n > s.st.Coins {
		return false
	}
	s.st.Coins -= n
	s.persist()
	return true
}

// AddSwitchers grants n switchers, for rewards earned outside of play.
func (s *Session) AddSwitchers(n int) {
	if n <= 0 {
		return
	}
	s.st.Switchers += n
	s.persist()
}

// Themes returns the theme catalog.
func (s *Session) Themes() *catalog.Catalog {
	return s.themes
}

// ThemeUnlocked reports whether id is in the unlocked set.
func (s *Session) ThemeUnlocked(id string) bool {
	return s.hasTheme(id)
}

// BuyTheme unlocks a theme for its coin price. Buying an unlocked theme is a
// no-op.
func (s *Session) BuyTheme(id string) error {
	t, ok := s.themes.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, id)
	}
	if s.hasTheme(id) {
		return nil
	}
	if !s.SpendCoins(t.RequiredCoins) {
		s.log.Debug("theme purchase rejected", "theme", id, "price", t.RequiredCoins, "coins", s.st.Coins)
		return fmt.Errorf("%w: %q costs %d, have %d", ErrInsufficientFunds, id, t.RequiredCoins, s.st.Coins)
	}
	s.addTheme(id)
	s.persist()
	return nil
}

// UnlockTheme unlocks a theme for free once the best score reaches its
// required score.
func (s *Session) UnlockTheme(id string) error {
	t, ok := s.themes.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, id)
	}
	if s.hasTheme(id) {
		return nil
	}
	if s.st.BestScore < t.RequiredScore {
		return fmt.Errorf("%w: %q needs best score %d", ErrThemeLocked, id, t.RequiredScore)
	}
	s.addTheme(id)
	s.persist()
	return nil
}

// SetTheme selects an unlocked theme.
func (s *Session) SetTheme(id string) error {
	if _, ok := s.themes.Get(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, id)
	}
	if !s.hasTheme(id) {
		return fmt.Errorf("%w: %q", ErrThemeLocked, id)
	}
	s.st.Theme = id
	s.persist()
	return nil
}

// ToggleSound flips the sound flag and returns the new value.
func (s *Session) ToggleSound() bool {
	s.st.SoundEnabled = !s.st.SoundEnabled
	s.persist()
	return s.st.SoundEnabled
}

// ToggleMusic flips the music flag and returns the new value.
func (s *Session) ToggleMusic() bool {
	s.st.MusicEnabled = !s.st.MusicEnabled
	s.persist()
	return s.st.MusicEnabled
}

// DismissTutorial marks the tutorial as seen.
func (s *Session) DismissTutorial() {
	if s.st.TutorialSeen {
		return
	}
	s.st.TutorialSeen = true
	s.persist()
}
