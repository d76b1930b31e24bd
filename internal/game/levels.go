package game

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/emoji-fusion/internal/engine"
)

// NewGame starts a fresh board and resets the session score. Level and
// cumulative progress are kept.
func (s *Session) NewGame() Snapshot {
	s.board = s.eng.InitBoard()
	s.st.Score = 0
	s.st.LastRewardScore = 0
	s.st.GameOver = false
	s.st.LevelComplete = s.st.Progress >= s.st.NextLevelThreshold
	s.runID = uuid.NewString()
	s.last = engine.MoveResult{}
	s.persist()
	return s.Snapshot()
}

// RestartGame leaves the game over state with a new game.
func (s *Session) RestartGame() Snapshot {
	return s.NewGame()
}

// NextLevel advances from a completed level: the level goes up, the
// threshold is recomputed and score and progress start over on a fresh board.
func (s *Session) NextLevel() (Snapshot, error) {
	if !s.st.LevelComplete {
		s.log.Debug("next level rejected", "phase", s.st.phase())
		return s.Snapshot(), ErrWrongPhase
	}
	s.st.Level++
	s.st.NextLevelThreshold = s.cfg.Progression.Threshold(s.st.Level)
	s.st.Progress = 0
	s.st.LevelComplete = false
	s.log.Debug("level up", "level", s.st.Level, "threshold", s.st.NextLevelThreshold)
	return s.NewGame(), nil
}
