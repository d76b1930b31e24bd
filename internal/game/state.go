// Package game implements the progression controller: a Session owns one
// player's board, score, level and economy, applies engine results to them
// and hands every change to a persistence collaborator.
package game

import (
	"errors"

	"github.com/vovakirdan/emoji-fusion/internal/engine"
)

// Errors returned by Session operations.
var (
	ErrInsufficientFunds = errors.New("game: insufficient coins")
	ErrNoSwitchers       = errors.New("game: no switchers left")
	ErrInvalidTile       = errors.New("game: invalid tile")
	ErrUnknownTheme      = errors.New("game: unknown theme")
	ErrThemeLocked       = errors.New("game: theme is locked")
	ErrNotBomb           = errors.New("game: cell is not a bomb")
	ErrWrongPhase        = errors.New("game: operation not allowed in this phase")
)

// Phase is the state machine position of a session.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseLevelComplete
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ProgressionState is the score, level and economy of a player.
// Score belongs to the current game; Progress persists across games within a
// level; BestScore and BestTile are all-time records.
type ProgressionState struct {
	Score              int
	BestScore          int
	BestTile           int
	Level              int
	NextLevelThreshold int
	Progress           int
	Coins              int
	Switchers          int
	UnlockedThemes     []string
	Theme              string
	GameOver           bool
	LevelComplete      bool
	LastRewardScore    int
	SoundEnabled       bool
	MusicEnabled       bool
	TutorialSeen       bool
}

// Snapshot is everything a renderer needs after an operation.
type Snapshot struct {
	ProgressionState
	Board        engine.Board
	Phase        Phase
	RunID        string
	SpawnEvents  []engine.SpawnEvent  // feedback from the last accepted move
	Combinations []engine.Combination // special merges of the last accepted move
	Spawned      *engine.Pos
}

// GameState is the persisted board of the running game.
type GameState struct {
	Board engine.Board
	Score int
}

// UserProgress is the persisted level record.
type UserProgress struct {
	Level          int
	NextLevelScore int
	Progress       int
}

// Profile holds the persisted player scalars.
type Profile struct {
	BestScore       int
	BestTile        int
	Coins           int
	Switchers       int
	UnlockedThemes  []string
	Theme           string
	SoundEnabled    bool
	MusicEnabled    bool
	TutorialSeen    bool
	LastRewardScore int
}

// Outcome tells how a recorded run ended.
type Outcome string

const (
	OutcomeGameOver      Outcome = "game_over"
	OutcomeLevelComplete Outcome = "level_complete"
)

// ScoreRecord is a finished run.
type ScoreRecord struct {
	RunID    string
	Score    int
	Level    int
	BestTile int
	Outcome  Outcome
}

func (st ProgressionState) clone() ProgressionState {
	st.UnlockedThemes = append([]string(nil), st.UnlockedThemes...)
	return st
}

func (st ProgressionState) phase() Phase {
	switch {
	case st.LevelComplete:
		return PhaseLevelComplete
	case st.GameOver:
		return PhaseGameOver
	default:
		return PhasePlaying
	}
}
