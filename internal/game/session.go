package game

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/emoji-fusion/internal/catalog"
	"github.com/vovakirdan/emoji-fusion/internal/config"
	"github.com/vovakirdan/emoji-fusion/internal/engine"
)

// Options configures a Session. Zero fields get defaults.
type Options struct {
	Config    *config.FusionConfig
	Catalog   *catalog.Catalog
	Engine    *engine.Engine
	Persister Persister // nil keeps state in memory only
	Logger    *log.Logger
	Now       func() time.Time
	Seed      int64 // used when Engine is nil
}

// Session is one player's game. It is not safe for concurrent use; callers
// serialize operations (one Session per player).
type Session struct {
	cfg    config.FusionConfig
	eng    *engine.Engine
	themes *catalog.Catalog
	log    *log.Logger
	now    func() time.Time
	w      *writer

	board    engine.Board
	st       ProgressionState
	runID    string
	lastMove time.Time
	last     engine.MoveResult
}

func newSession(opts Options) (*Session, error) {
	s := &Session{
		themes: opts.Catalog,
		eng:    opts.Engine,
		log:    opts.Logger,
		now:    opts.Now,
	}
	if opts.Config != nil {
		s.cfg = *opts.Config
	} else {
		s.cfg = config.DefaultFusionConfig()
	}
	if s.themes == nil {
		s.themes = catalog.New(s.cfg.Themes)
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.eng == nil {
		engOpts, err := s.cfg.EngineOptions()
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.eng = engine.New(rand.New(rand.NewSource(seed)), engOpts)
	}
	if opts.Persister != nil {
		s.w = newWriter(opts.Persister, s.log)
	}
	return s, nil
}

// New creates a session for a fresh profile without reading storage.
func New(opts Options) (*Session, error) {
	s, err := newSession(opts)
	if err != nil {
		return nil, err
	}
	s.st = s.freshState()
	s.board = s.eng.InitBoard()
	s.runID = uuid.NewString()
	s.persist()
	return s, nil
}

// Load creates a session from the persisted state of opts.Persister. It
// blocks until the startup reads resolve; read failures fall back to a fresh
// profile and are only logged.
func Load(ctx context.Context, opts Options) (*Session, error) {
	s, err := newSession(opts)
	if err != nil {
		return nil, err
	}
	s.st = s.freshState()
	s.runID = uuid.NewString()

	if opts.Persister == nil {
		s.board = s.eng.InitBoard()
		return s, nil
	}

	l, err := loadAll(ctx, opts.Persister, s.log)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.restore(l)
	return s, nil
}

func (s *Session) freshState() ProgressionState {
	eco := s.cfg.Economy
	st := ProgressionState{
		Level:              1,
		NextLevelThreshold: s.cfg.Progression.Threshold(1),
		Coins:              eco.StartingCoins,
		Switchers:          eco.StartingSwitchers,
		Theme:              eco.DefaultTheme,
		SoundEnabled:       true,
		MusicEnabled:       true,
	}
	if eco.DefaultTheme != "" {
		st.UnlockedThemes = []string{eco.DefaultTheme}
	}
	return st
}

func (s *Session) restore(l loaded) {
	if l.hasProfile {
		p := l.profile
		s.st.BestScore = p.BestScore
		s.st.BestTile = p.BestTile
		s.st.Coins = max(p.Coins, 0)
		s.st.Switchers = max(p.Switchers, 0)
		s.st.SoundEnabled = p.SoundEnabled
		s.st.MusicEnabled = p.MusicEnabled
		s.st.TutorialSeen = p.TutorialSeen
		s.st.LastRewardScore = p.LastRewardScore
		for _, id := range p.UnlockedThemes {
			s.addTheme(id)
		}
		if p.Theme != "" && s.hasTheme(p.Theme) {
			s.st.Theme = p.Theme
		}
	}

	if l.hasProgress && l.progress.Level > 0 {
		s.st.Level = l.progress.Level
		s.st.Progress = max(l.progress.Progress, 0)
	}
	s.st.NextLevelThreshold = s.cfg.Progression.Threshold(s.st.Level)

	if l.hasGame && l.game.Board.Valid() && len(engine.OccupiedCells(l.game.Board)) > 0 {
		s.board = l.game.Board
		s.st.Score = max(l.game.Score, 0)
	} else {
		s.board = s.eng.InitBoard()
		s.st.Score = 0
	}

	s.st.LevelComplete = s.st.Progress >= s.st.NextLevelThreshold
	s.st.GameOver = !s.st.LevelComplete && s.eng.IsGameOver(s.board)
}

// Close flushes pending writes. The session must not be used afterwards.
func (s *Session) Close() {
	if s.w != nil {
		s.w.close()
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ProgressionState: s.st.clone(),
		Board:            s.board,
		Phase:            s.st.phase(),
		RunID:            s.runID,
		SpawnEvents:      append([]engine.SpawnEvent(nil), s.last.SpawnEvents...),
		Combinations:     append([]engine.Combination(nil), s.last.Combinations...),
		Spawned:          s.last.Spawned,
	}
}

// Phase returns the current state machine position.
func (s *Session) Phase() Phase {
	return s.st.phase()
}

// Board returns the current board.
func (s *Session) Board() engine.Board {
	return s.board
}

// Move applies a directional move. It reports false when the move was
// dropped: outside the Playing phase, within the debounce window of the
// previous accepted move, or for an unknown direction. A move that changes
// nothing is accepted and re-checks game over.
func (s *Session) Move(dir engine.Direction) (Snapshot, bool) {
	if phase := s.st.phase(); phase != PhasePlaying {
		s.log.Debug("move rejected", "dir", dir, "phase", phase)
		return s.Snapshot(), false
	}
	if !dir.Valid() {
		s.log.Debug("move rejected", "dir", dir)
		return s.Snapshot(), false
	}
	now := s.now()
	if !s.lastMove.IsZero() && now.Sub(s.lastMove) < s.cfg.Progression.Debounce() {
		s.log.Debug("move dropped by debounce", "dir", dir)
		return s.Snapshot(), false
	}
	s.lastMove = now

	res := s.eng.Move(s.board, dir)
	s.last = res

	if !res.Changed && res.ScoreGained == 0 {
		if s.eng.IsGameOver(s.board) {
			s.enterGameOver()
			s.persist()
		}
		return s.Snapshot(), true
	}

	s.board = res.Board
	s.applyGain(res)

	switch {
	case s.st.Progress >= s.st.NextLevelThreshold:
		s.st.LevelComplete = true
		s.recordScore(OutcomeLevelComplete)
	case s.eng.IsGameOver(s.board):
		s.enterGameOver()
	}

	s.persist()
	return s.Snapshot(), true
}

func (s *Session) applyGain(res engine.MoveResult) {
	eco := s.cfg.Economy
	old := s.st.Score
	s.st.Score += res.ScoreGained
	s.st.Progress += res.ScoreGained

	coins := res.CoinsGained
	if eco.ScorePerCoin > 0 {
		coins += s.st.Score/eco.ScorePerCoin - old/eco.ScorePerCoin
	}
	s.st.Coins += coins

	for _, c := range res.Combinations {
		if c.Involves(engine.KindReward) {
			s.st.Switchers += eco.SwitchersPerKey
		}
	}

	if every := eco.MilestoneEvery; every > 0 {
		if n := s.st.Score/every - s.st.LastRewardScore/every; n > 0 {
			s.st.Switchers += n
			s.st.LastRewardScore = s.st.Score
		}
	}

	if s.st.Score > s.st.BestScore {
		s.st.BestScore = s.st.Score
	}
	if t := engine.MaxTile(s.board); t > s.st.BestTile {
		s.st.BestTile = t
	}
}

func (s *Session) enterGameOver() {
	if s.st.GameOver {
		return
	}
	s.st.GameOver = true
	s.log.Debug("game over", "score", s.st.Score, "level", s.st.Level)
	s.recordScore(OutcomeGameOver)
}

func (s *Session) recordScore(outcome Outcome) {
	if s.w == nil || s.st.Score == 0 {
		return
	}
	s.w.enqueue(batch{scores: []ScoreRecord{{
		RunID:    s.runID,
		Score:    s.st.Score,
		Level:    s.st.Level,
		BestTile: engine.MaxTile(s.board),
		Outcome:  outcome,
	}}})
}

// refreshGameOver re-evaluates game over after a direct board edit.
func (s *Session) refreshGameOver() {
	if s.st.LevelComplete {
		return
	}
	if s.eng.IsGameOver(s.board) {
		s.enterGameOver()
	} else {
		s.st.GameOver = false
	}
}

// persist hands the whole state to the background writer.
func (s *Session) persist() {
	if s.w == nil {
		return
	}
	gs := GameState{Board: s.board, Score: s.st.Score}
	up := UserProgress{
		Level:          s.st.Level,
		NextLevelScore: s.st.NextLevelThreshold,
		Progress:       s.st.Progress,
	}
	pr := s.profile()
	s.w.enqueue(batch{game: &gs, progress: &up, profile: &pr})
}

func (s *Session) profile() Profile {
	return Profile{
		BestScore:       s.st.BestScore,
		BestTile:        s.st.BestTile,
		Coins:           s.st.Coins,
		Switchers:       s.st.Switchers,
		UnlockedThemes:  append([]string(nil), s.st.UnlockedThemes...),
		Theme:           s.st.Theme,
		SoundEnabled:    s.st.SoundEnabled,
		MusicEnabled:    s.st.MusicEnabled,
		TutorialSeen:    s.st.TutorialSeen,
		LastRewardScore: s.st.LastRewardScore,
	}
}

func (s *Session) hasTheme(id string) bool {
	i := sort.SearchStrings(s.st.UnlockedThemes, id)
	return i < len(s.st.UnlockedThemes) && s.st.UnlockedThemes[i] == id
}

func (s *Session) addTheme(id string) {
	if s.hasTheme(id) {
		return
	}
	s.st.UnlockedThemes = append(s.st.UnlockedThemes, id)
	sort.Strings(s.st.UnlockedThemes)
}
