package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/emoji-fusion/internal/config"
	"github.com/vovakirdan/emoji-fusion/internal/engine"
)

func loadTestSession(t *testing.T, ctx context.Context, p Persister) (*Session, error) {
	t.Helper()
	cfg := config.DefaultFusionConfig()
	clk := &fakeClock{step: time.Second}
	s, err := Load(ctx, Options{
		Config:    &cfg,
		Engine:    twosEngine(7),
		Persister: p,
		Now:       clk.Now,
	})
	if err == nil {
		t.Cleanup(s.Close)
	}
	return s, err
}

func TestStateWrittenAfterMove(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, nil, store)
	s.board = boardOf([engine.Size]int{2, 2, 0, 0})

	snap, _ := s.Move(engine.DirLeft)
	s.Close()

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.game == nil || store.progress == nil || store.profile == nil {
		t.Fatal("records were not written")
	}
	if store.game.Board != snap.Board || store.game.Score != 4 {
		t.Errorf("stored game = %+v, want board of the snapshot and score 4", *store.game)
	}
	if store.progress.Progress != 4 || store.progress.Level != 1 || store.progress.NextLevelScore != 200 {
		t.Errorf("stored progress = %+v", *store.progress)
	}
	if store.profile.BestScore != 4 || store.profile.BestTile != 4 {
		t.Errorf("stored profile = %+v", *store.profile)
	}
}

func TestLoadRestoresState(t *testing.T) {
	board := boardOf([engine.Size]int{8, 0, 0, 0}, [engine.Size]int{0, -2, 0, 0})
	store := &memStore{
		game:     &GameState{Board: board, Score: 120},
		progress: &UserProgress{Level: 3, NextLevelScore: 600, Progress: 50},
		profile: &Profile{
			BestScore:      3000,
			BestTile:       256,
			Coins:          500,
			Switchers:      2,
			UnlockedThemes: []string{"fruits", "animals"},
			Theme:          "animals",
			MusicEnabled:   true,
			TutorialSeen:   true,
		},
	}

	s, err := loadTestSession(t, context.Background(), store)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	snap := s.Snapshot()

	if snap.Board != board || snap.Score != 120 {
		t.Errorf("board/score not restored: %v %d", snap.Board, snap.Score)
	}
	if snap.Level != 3 || snap.Progress != 50 || snap.NextLevelThreshold != 600 {
		t.Errorf("progress not restored: level %d progress %d threshold %d", snap.Level, snap.Progress, snap.NextLevelThreshold)
	}
	if snap.Coins != 500 || snap.Switchers != 2 || snap.BestScore != 3000 || snap.BestTile != 256 {
		t.Errorf("profile not restored: %+v", snap.ProgressionState)
	}
	if snap.Theme != "animals" || !s.ThemeUnlocked("animals") || !s.ThemeUnlocked("fruits") {
		t.Errorf("themes not restored: %q %v", snap.Theme, snap.UnlockedThemes)
	}
	if snap.SoundEnabled || !snap.MusicEnabled || !snap.TutorialSeen {
		t.Error("flags not restored")
	}
	if snap.Phase != PhasePlaying {
		t.Errorf("Phase = %v, want playing", snap.Phase)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	s, err := loadTestSession(t, context.Background(), &memStore{})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	snap := s.Snapshot()
	if snap.Level != 1 || countOccupied(snap.Board) != 2 || snap.Theme != "fruits" {
		t.Errorf("empty store should give a fresh session: %+v", snap.ProgressionState)
	}
}

func TestLoadFailureFallsBack(t *testing.T) {
	store := &memStore{loadErr: errors.New("disk on fire")}
	s, err := loadTestSession(t, context.Background(), store)
	if err != nil {
		t.Fatalf("read failures must not fail Load: %v", err)
	}
	if snap := s.Snapshot(); snap.Level != 1 || snap.Coins != 0 {
		t.Errorf("expected defaults, got %+v", snap.ProgressionState)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := loadTestSession(t, ctx, &memStore{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() = %v, want context.Canceled", err)
	}
}

func TestLoadDerivesPhase(t *testing.T) {
	tests := []struct {
		name  string
		store *memStore
		want  Phase
	}{
		{"stuck board", &memStore{game: &GameState{Board: stuckBoard(), Score: 10}}, PhaseGameOver},
		{"threshold reached", &memStore{progress: &UserProgress{Level: 1, Progress: 250}}, PhaseLevelComplete},
		{"invalid board", &memStore{game: &GameState{Board: boardOf([engine.Size]int{3, 0, 0, 0}), Score: 10}}, PhasePlaying},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := loadTestSession(t, context.Background(), tt.store)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if got := s.Phase(); got != tt.want {
				t.Errorf("Phase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreRecordedOnGameOver(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, nil, store)
	s.board = boardOf(
		[engine.Size]int{4, 8, 16, 32},
		[engine.Size]int{8, 16, 32, 64},
		[engine.Size]int{16, 32, 64, 128},
		[engine.Size]int{2, 2, 8, 4},
	)

	snap, _ := s.Move(engine.DirLeft)
	if !snap.GameOver {
		t.Fatal("expected game over")
	}
	s.Close()

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.scores) != 1 {
		t.Fatalf("scores = %d, want 1", len(store.scores))
	}
	rec := store.scores[0]
	if rec.RunID != snap.RunID || rec.Score != 4 || rec.Outcome != OutcomeGameOver || rec.BestTile != 128 {
		t.Errorf("record = %+v", rec)
	}
}

func TestResumedRunRecordsUnderSameRun(t *testing.T) {
	store := &memStore{}
	s := newTestSession(t, nil, store)
	s.AddSwitchers(1)
	s.board = stuckBoard()
	s.st.Score = 4

	first, _ := s.Move(engine.DirLeft)
	if !first.GameOver {
		t.Fatal("expected game over on a stuck board")
	}
	if _, ok := s.ResumeWithSwitcher(); !ok {
		t.Fatal("resume should succeed")
	}

	s.board = boardOf(
		[engine.Size]int{4, 8, 16, 32},
		[engine.Size]int{8, 16, 32, 64},
		[engine.Size]int{16, 32, 64, 128},
		[engine.Size]int{2, 2, 8, 4},
	)
	second, _ := s.Move(engine.DirLeft)
	if !second.GameOver {
		t.Fatal("expected a second game over")
	}
	s.Close()

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.scores) != 2 {
		t.Fatalf("scores = %d, want 2", len(store.scores))
	}
	if store.scores[0].RunID != first.RunID || store.scores[1].RunID != first.RunID {
		t.Errorf("run ids = %q, %q, want both %q", store.scores[0].RunID, store.scores[1].RunID, first.RunID)
	}
	if store.scores[0].Score != 4 || store.scores[1].Score != 8 {
		t.Errorf("scores = %d, %d, want 4 then 8", store.scores[0].Score, store.scores[1].Score)
	}
}

func TestWriterKeepsLatestState(t *testing.T) {
	store := &memStore{}
	w := newWriter(store, newTestSession(t, nil, nil).log)

	for i := 0; i < 100; i++ {
		gs := GameState{Score: i}
		w.enqueue(batch{game: &gs, scores: []ScoreRecord{{Score: i}}})
	}
	w.close()
	w.enqueue(batch{game: &GameState{Score: -1}})

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.game.Score != 99 {
		t.Errorf("stored score = %d, want the last enqueued 99", store.game.Score)
	}
	if store.saves > 100 {
		t.Errorf("saves = %d, want at most 100", store.saves)
	}
	if len(store.scores) != 100 {
		t.Fatalf("scores = %d, want all 100", len(store.scores))
	}
	for i, rec := range store.scores {
		if rec.Score != i {
			t.Fatalf("score %d out of order: %d", i, rec.Score)
		}
	}
}
