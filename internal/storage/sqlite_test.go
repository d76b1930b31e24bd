package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/emoji-fusion/internal/engine"
	"github.com/vovakirdan/emoji-fusion/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(t *testing.T, p *ProfileStore, score int) {
	t.Helper()
	if err := p.RecordScore(context.Background(), game.ScoreRecord{Score: score, Level: 1, Outcome: game.OutcomeGameOver}); err != nil {
		t.Fatalf("RecordScore() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestGameStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := openTestStore(t).Profile("")

	if _, err := p.LoadGameState(ctx); !errors.Is(err, game.ErrNoRecord) {
		t.Fatalf("LoadGameState() on empty store = %v, want ErrNoRecord", err)
	}

	var b engine.Board
	b[0] = [engine.Size]int{2, 4, -1, 0}
	b[3] = [engine.Size]int{0, -2, -3, 2048}
	if err := p.SaveGameState(ctx, game.GameState{Board: b, Score: 77}); err != nil {
		t.Fatalf("SaveGameState() failed: %v", err)
	}
	// second save overwrites
	b[1][1] = 8
	if err := p.SaveGameState(ctx, game.GameState{Board: b, Score: 99}); err != nil {
		t.Fatalf("SaveGameState() failed: %v", err)
	}

	got, err := p.LoadGameState(ctx)
	if err != nil {
		t.Fatalf("LoadGameState() failed: %v", err)
	}
	if got.Board != b || got.Score != 99 {
		t.Errorf("LoadGameState() = %+v, want board %v score 99", got, b)
	}
}

func TestCorruptBoardRejected(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p := store.Profile("bob")

	if _, err := store.db.Exec(
		"INSERT INTO game_state (profile_id, board, score) VALUES (?, ?, ?)",
		"bob", "[[2,2],[4]]", 10,
	); err != nil {
		t.Fatal(err)
	}

	if _, err := p.LoadGameState(ctx); !errors.Is(err, engine.ErrInvalidBoard) {
		t.Errorf("LoadGameState() = %v, want ErrInvalidBoard", err)
	}
}

func TestUserProgressRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := openTestStore(t).Profile("alice")

	if _, err := p.LoadUserProgress(ctx); !errors.Is(err, game.ErrNoRecord) {
		t.Fatalf("LoadUserProgress() on empty store = %v, want ErrNoRecord", err)
	}

	want := game.UserProgress{Level: 4, NextLevelScore: 800, Progress: 321}
	if err := p.SaveUserProgress(ctx, want); err != nil {
		t.Fatalf("SaveUserProgress() failed: %v", err)
	}
	got, err := p.LoadUserProgress(ctx)
	if err != nil {
		t.Fatalf("LoadUserProgress() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadUserProgress() = %+v, want %+v", got, want)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := openTestStore(t).Profile("alice")

	if _, err := p.LoadProfile(ctx); !errors.Is(err, game.ErrNoRecord) {
		t.Fatalf("LoadProfile() on empty store = %v, want ErrNoRecord", err)
	}

	want := game.Profile{
		BestScore:       4096,
		BestTile:        512,
		Coins:           250,
		Switchers:       3,
		UnlockedThemes:  []string{"animals", "fruits", "ocean"},
		Theme:           "ocean",
		SoundEnabled:    false,
		MusicEnabled:    true,
		TutorialSeen:    true,
		LastRewardScore: 2010,
	}
	if err := p.SaveProfile(ctx, want); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}

	// shrinking the unlocked set replaces it
	want.UnlockedThemes = []string{"fruits", "ocean"}
	want.Coins = 10
	if err := p.SaveProfile(ctx, want); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}

	got, err := p.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}
	if got.BestScore != want.BestScore || got.BestTile != want.BestTile || got.Coins != 10 ||
		got.Switchers != want.Switchers || got.Theme != want.Theme || got.LastRewardScore != want.LastRewardScore {
		t.Errorf("LoadProfile() = %+v, want %+v", got, want)
	}
	if got.SoundEnabled || !got.MusicEnabled || !got.TutorialSeen {
		t.Errorf("flags = sound %v music %v tutorial %v", got.SoundEnabled, got.MusicEnabled, got.TutorialSeen)
	}
	if len(got.UnlockedThemes) != 2 || got.UnlockedThemes[0] != "fruits" || got.UnlockedThemes[1] != "ocean" {
		t.Errorf("UnlockedThemes = %v, want [fruits ocean]", got.UnlockedThemes)
	}
}

func TestProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	alice := store.Profile("alice")
	bob := store.Profile("bob")

	if err := alice.SaveProfile(ctx, game.Profile{Coins: 100, UnlockedThemes: []string{"fruits"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := bob.LoadProfile(ctx); !errors.Is(err, game.ErrNoRecord) {
		t.Errorf("bob should have no profile, got %v", err)
	}

	record(t, alice, 300)
	record(t, bob, 500)

	ids, err := store.Profiles()
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "alice" || ids[1] != "bob" {
		t.Errorf("Profiles() = %v, want [alice bob]", ids)
	}
}

func TestTopScores(t *testing.T) {
	store := openTestStore(t)
	alice := store.Profile("alice")
	bob := store.Profile("bob")

	for i := 0; i < 5; i++ {
		record(t, alice, (i+1)*100)
	}
	record(t, bob, 350)

	// Request only top 3
	scores, err := store.TopScores("alice", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].RunID == "" || scores[0].RunID == scores[1].RunID {
		t.Error("each run should get its own id")
	}

	all, err := store.TopScores("", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 6 || all[2].ProfileID != "bob" {
		t.Errorf("global board = %v", all)
	}
}

func TestRecordScoreIsIdempotentPerRun(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p := store.Profile("alice")

	rec := game.ScoreRecord{RunID: "run-1", Score: 640, Level: 2, BestTile: 128, Outcome: game.OutcomeLevelComplete}
	for i := 0; i < 2; i++ {
		if err := p.RecordScore(ctx, rec); err != nil {
			t.Fatalf("RecordScore() failed: %v", err)
		}
	}

	scores, _ := store.TopScores("alice", 10)
	if len(scores) != 1 {
		t.Fatalf("Expected 1 score, got %d", len(scores))
	}
	got := scores[0]
	if got.Level != 2 || got.BestTile != 128 || got.Outcome != "level_complete" {
		t.Errorf("stored run = %+v", got)
	}
}

func TestResumedRunKeepsLatestResult(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p := store.Profile("alice")

	first := game.ScoreRecord{RunID: "run-1", Score: 4, Level: 1, BestTile: 2, Outcome: game.OutcomeGameOver}
	later := game.ScoreRecord{RunID: "run-1", Score: 8, Level: 1, BestTile: 4, Outcome: game.OutcomeLevelComplete}
	for _, rec := range []game.ScoreRecord{first, later, first} {
		if err := p.RecordScore(ctx, rec); err != nil {
			t.Fatalf("RecordScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("alice", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 row for the run, got %d", len(scores))
	}
	got := scores[0]
	if got.Score != 8 || got.BestTile != 4 || got.Outcome != "level_complete" {
		t.Errorf("stored run = %+v, want score 8 tile 4 level_complete", got)
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)
	p := store.Profile("alice")

	// No scores yet
	high, err := store.HighScore("alice")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty profile, got %d", high)
	}

	record(t, p, 100)
	record(t, p, 300)
	record(t, p, 200)

	high, err = store.HighScore("alice")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	stats, err := store.Stats("alice")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 300 || stats.TotalScore != 600 || stats.AvgScore != 200 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	record(t, store.Profile("alice"), 100)
	record(t, store.Profile("bob"), 300)

	if err := store.ClearScores("alice"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("alice", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("bob", 10); len(scores) != 1 {
		t.Errorf("bob's scores should not be affected")
	}
}

func TestSessionOverStore(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	s, err := game.Load(ctx, game.Options{Persister: store.Profile("carol"), Seed: 3})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	s.AddCoins(40)
	_ = s.SetTheme("fruits")
	board := s.Board()
	s.Close()

	again, err := game.Load(ctx, game.Options{Persister: store.Profile("carol"), Seed: 4})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer again.Close()

	snap := again.Snapshot()
	if snap.Coins != 40 || snap.Board != board {
		t.Errorf("reloaded coins %d board %v, want 40 and %v", snap.Coins, snap.Board, board)
	}
}
