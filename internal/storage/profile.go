package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/vovakirdan/emoji-fusion/internal/engine"
	"github.com/vovakirdan/emoji-fusion/internal/game"
)

// profile_kv keys.
const (
	keyBestScore       = "best_score"
	keyBestTile        = "best_tile"
	keyCoins           = "coins"
	keySwitchers       = "switchers"
	keyTheme           = "theme"
	keySound           = "sound"
	keyMusic           = "music"
	keyTutorialSeen    = "tutorial_seen"
	keyLastRewardScore = "last_reward_score"
)

// ProfileStore persists the state of one profile.
type ProfileStore struct {
	s  *Store
	id string
}

var (
	_ game.Persister     = (*ProfileStore)(nil)
	_ game.ScoreRecorder = (*ProfileStore)(nil)
)

// Profile returns the persister for a profile id.
func (s *Store) Profile(id string) *ProfileStore {
	if id == "" {
		id = LocalProfile
	}
	return &ProfileStore{s: s, id: id}
}

// ID returns the profile id.
func (p *ProfileStore) ID() string {
	return p.id
}

// LoadGameState implements game.Persister.
func (p *ProfileStore) LoadGameState(ctx context.Context) (game.GameState, error) {
	var raw string
	var gs game.GameState
	err := p.s.db.QueryRowContext(ctx,
		"SELECT board, score FROM game_state WHERE profile_id = ?", p.id,
	).Scan(&raw, &gs.Score)
	if errors.Is(err, sql.ErrNoRows) {
		return game.GameState{}, game.ErrNoRecord
	}
	if err != nil {
		return game.GameState{}, fmt.Errorf("storage: cannot load game state: %w", err)
	}

	var rows [][]int
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return game.GameState{}, fmt.Errorf("storage: cannot decode board: %w", err)
	}
	board, err := engine.FromRows(rows)
	if err != nil {
		return game.GameState{}, fmt.Errorf("storage: stored board: %w", err)
	}
	gs.Board = board
	return gs, nil
}

// SaveGameState implements game.Persister.
func (p *ProfileStore) SaveGameState(ctx context.Context, gs game.GameState) error {
	raw, err := json.Marshal(gs.Board.Rows())
	if err != nil {
		return fmt.Errorf("storage: cannot encode board: %w", err)
	}
	_, err = p.s.db.ExecContext(ctx,
		`INSERT INTO game_state (profile_id, board, score, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile_id) DO UPDATE SET
			board = excluded.board,
			score = excluded.score,
			updated_at = excluded.updated_at`,
		p.id, string(raw), gs.Score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game state: %w", err)
	}
	return nil
}

// LoadUserProgress implements game.Persister.
func (p *ProfileStore) LoadUserProgress(ctx context.Context) (game.UserProgress, error) {
	var up game.UserProgress
	err := p.s.db.QueryRowContext(ctx,
		"SELECT level, next_level_score, progress FROM user_progress WHERE profile_id = ?", p.id,
	).Scan(&up.Level, &up.NextLevelScore, &up.Progress)
	if errors.Is(err, sql.ErrNoRows) {
		return game.UserProgress{}, game.ErrNoRecord
	}
	if err != nil {
		return game.UserProgress{}, fmt.Errorf("storage: cannot load user progress: %w", err)
	}
	return up, nil
}

// SaveUserProgress implements game.Persister.
func (p *ProfileStore) SaveUserProgress(ctx context.Context, up game.UserProgress) error {
	_, err := p.s.db.ExecContext(ctx,
		`INSERT INTO user_progress (profile_id, level, next_level_score, progress, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile_id) DO UPDATE SET
			level = excluded.level,
			next_level_score = excluded.next_level_score,
			progress = excluded.progress,
			updated_at = excluded.updated_at`,
		p.id, up.Level, up.NextLevelScore, up.Progress,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save user progress: %w", err)
	}
	return nil
}

// LoadProfile implements game.Persister.
func (p *ProfileStore) LoadProfile(ctx context.Context) (game.Profile, error) {
	kv, err := p.loadKV(ctx)
	if err != nil {
		return game.Profile{}, err
	}
	themes, err := p.loadThemes(ctx)
	if err != nil {
		return game.Profile{}, err
	}
	if len(kv) == 0 && len(themes) == 0 {
		return game.Profile{}, game.ErrNoRecord
	}

	return game.Profile{
		BestScore:       atoi(kv[keyBestScore]),
		BestTile:        atoi(kv[keyBestTile]),
		Coins:           atoi(kv[keyCoins]),
		Switchers:       atoi(kv[keySwitchers]),
		UnlockedThemes:  themes,
		Theme:           kv[keyTheme],
		SoundEnabled:    kv[keySound] != "false",
		MusicEnabled:    kv[keyMusic] != "false",
		TutorialSeen:    kv[keyTutorialSeen] == "true",
		LastRewardScore: atoi(kv[keyLastRewardScore]),
	}, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func (p *ProfileStore) loadKV(ctx context.Context) (map[string]string, error) {
	rows, err := p.s.db.QueryContext(ctx,
		"SELECT key, value FROM profile_kv WHERE profile_id = ?", p.id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load profile: %w", err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return kv, nil
}

func (p *ProfileStore) loadThemes(ctx context.Context) ([]string, error) {
	rows, err := p.s.db.QueryContext(ctx,
		"SELECT theme_id FROM unlocked_themes WHERE profile_id = ? ORDER BY theme_id", p.id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load themes: %w", err)
	}
	defer rows.Close()

	var themes []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		themes = append(themes, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return themes, nil
}

// SaveProfile implements game.Persister. Scalars and the unlocked set are
// written in one transaction.
func (p *ProfileStore) SaveProfile(ctx context.Context, pr game.Profile) (err error) {
	tx, err := p.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	kv := map[string]string{
		keyBestScore:       strconv.Itoa(pr.BestScore),
		keyBestTile:        strconv.Itoa(pr.BestTile),
		keyCoins:           strconv.Itoa(pr.Coins),
		keySwitchers:       strconv.Itoa(pr.Switchers),
		keyTheme:           pr.Theme,
		keySound:           strconv.FormatBool(pr.SoundEnabled),
		keyMusic:           strconv.FormatBool(pr.MusicEnabled),
		keyTutorialSeen:    strconv.FormatBool(pr.TutorialSeen),
		keyLastRewardScore: strconv.Itoa(pr.LastRewardScore),
	}
	for k, v := range kv {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO profile_kv (profile_id, key, value) VALUES (?, ?, ?)
			 ON CONFLICT(profile_id, key) DO UPDATE SET value = excluded.value`,
			p.id, k, v,
		); err != nil {
			return fmt.Errorf("storage: cannot save %s: %w", k, err)
		}
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM unlocked_themes WHERE profile_id = ?", p.id); err != nil {
		return fmt.Errorf("storage: cannot reset themes: %w", err)
	}
	for _, id := range pr.UnlockedThemes {
		if _, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO unlocked_themes (profile_id, theme_id) VALUES (?, ?)",
			p.id, id,
		); err != nil {
			return fmt.Errorf("storage: cannot save theme %s: %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit profile: %w", err)
	}
	return nil
}

// RecordScore implements game.ScoreRecorder. A run id is generated when the
// record has none. A run resumed after game over is recorded again under the
// same id; its row then takes the newer result unless the score went down.
func (p *ProfileStore) RecordScore(ctx context.Context, rec game.ScoreRecord) error {
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}
	_, err := p.s.db.ExecContext(ctx,
		`INSERT INTO scores (run_id, profile_id, score, level, best_tile, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET
			score = excluded.score,
			level = excluded.level,
			best_tile = excluded.best_tile,
			outcome = excluded.outcome
		 WHERE excluded.score >= scores.score`,
		rec.RunID, p.id, rec.Score, rec.Level, rec.BestTile, string(rec.Outcome),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}
