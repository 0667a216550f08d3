// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only inputs are stored. Scores are never persisted; they are derived by
// re-simulating a replay.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/pulse-runner/internal/replay"
)

var (
	// ErrReplayNotFound is returned when no replay matches an ID.
	ErrReplayNotFound = errors.New("storage: replay not found")
	// ErrAmbiguousID is returned when an ID prefix matches several replays.
	ErrAmbiguousID = errors.New("storage: replay id prefix is ambiguous")
)

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayInfo describes a stored replay without its frames.
type ReplayInfo struct {
	ID        uuid.UUID
	GameID    string
	Seed      int64
	User      string
	Frames    int
	Duration  time.Duration
	CreatedAt time.Time
}

// ReplayStats contains aggregated statistics for one game mode.
type ReplayStats struct {
	GameID     string
	Runs       int
	TotalTime  time.Duration
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			config_yaml TEXT NOT NULL,
			frames BLOB NOT NULL,
			frame_count INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a finished recording.
func (s *Store) SaveReplay(r *replay.Replay) error {
	frames, err := replay.EncodeFrames(r.Frames)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO replays
		 (id, game_id, seed, player, config_yaml, frames, frame_count, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(),
		r.GameID,
		r.Seed,
		r.User,
		string(r.ConfigYAML),
		frames,
		len(r.Frames),
		r.Duration().Milliseconds(),
		r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return nil
}

// ListReplays returns the most recent replays, newest first. An empty
// gameID lists every mode.
func (s *Store) ListReplays(gameID string, limit int) ([]ReplayInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, player, frame_count, duration_ms, created_at
		 FROM replays
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var infos []ReplayInfo
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// LoadReplay fetches a replay by its full ID or a unique prefix of it.
func (s *Store) LoadReplay(id string) (*replay.Replay, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, ErrReplayNotFound
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, player, config_yaml, frames, created_at
		 FROM replays
		 WHERE substr(id, 1, length(?)) = ?
		 LIMIT 2`,
		id, id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	defer rows.Close()

	var (
		found  *replay.Replay
		frames []byte
	)
	for rows.Next() {
		if found != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
		}

		var (
			r         replay.Replay
			rawID     string
			cfg       string
			createdAt int64
		)
		if err := rows.Scan(&rawID, &r.GameID, &r.Seed, &r.User, &cfg, &frames, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if r.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("storage: corrupt replay id %q: %w", rawID, err)
		}
		r.ConfigYAML = []byte(cfg)
		r.CreatedAt = time.UnixMilli(createdAt)
		found = &r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrReplayNotFound, id)
	}

	found.Frames, err = replay.DecodeFrames(frames)
	if err != nil {
		return nil, fmt.Errorf("storage: replay %s: %w", found.ID, err)
	}
	return found, nil
}

// DeleteReplay removes a replay by its full ID.
func (s *Store) DeleteReplay(id uuid.UUID) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrReplayNotFound, id)
	}
	return nil
}

// Stats retrieves run counts and play time for every mode that has replays.
func (s *Store) Stats() (map[string]*ReplayStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), SUM(duration_ms), MAX(created_at)
		 FROM replays
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get replay stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ReplayStats)
	for rows.Next() {
		var (
			st         ReplayStats
			totalMS    int64
			lastPlayed int64
		)
		if err := rows.Scan(&st.GameID, &st.Runs, &totalMS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.TotalTime = time.Duration(totalMS) * time.Millisecond
		st.LastPlayed = time.UnixMilli(lastPlayed)
		stats[st.GameID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func scanInfo(rows *sql.Rows) (ReplayInfo, error) {
	var (
		info       ReplayInfo
		rawID      string
		durationMS int64
		createdAt  int64
	)
	if err := rows.Scan(&rawID, &info.GameID, &info.Seed, &info.User, &info.Frames, &durationMS, &createdAt); err != nil {
		return info, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return info, fmt.Errorf("storage: corrupt replay id %q: %w", rawID, err)
	}
	info.ID = id
	info.Duration = time.Duration(durationMS) * time.Millisecond
	info.CreatedAt = time.UnixMilli(createdAt)
	return info, nil
}
