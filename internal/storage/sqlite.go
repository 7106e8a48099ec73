// Package storage persists star ratings and level results in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	tc "github.com/vovakirdan/tilechain/internal/games/tilechain/core"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

var _ tc.StarStore = (*Store)(nil)

// ScoreEntry is one finished level run.
type ScoreEntry struct {
	ID        int64
	LevelID   string
	Score     int
	Stars     int
	CreatedAt time.Time
}

// LevelStats aggregates the runs of one level.
type LevelStats struct {
	LevelID    string
	Runs       int
	BestStars  int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			stars INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_level_id ON scores(level_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(level_id, score DESC);

		CREATE TABLE IF NOT EXISTS level_stars (
			level_id TEXT PRIMARY KEY,
			stars INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// BestStars returns the stored rating for a level, 0 if none.
func (s *Store) BestStars(levelID string) (int, error) {
	var stars int
	err := s.db.QueryRow(`SELECT stars FROM level_stars WHERE level_id = ?`, levelID).Scan(&stars)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read stars: %w", err)
	}
	return stars, nil
}

// SaveStars stores a rating for a level. The row only changes when the new
// rating is higher than the stored one.
func (s *Store) SaveStars(levelID string, stars int) error {
	_, err := s.db.Exec(
		`INSERT INTO level_stars (level_id, stars) VALUES (?, ?)
		 ON CONFLICT(level_id) DO UPDATE
		 SET stars = excluded.stars, updated_at = CURRENT_TIMESTAMP
		 WHERE excluded.stars > level_stars.stars`,
		levelID, stars,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stars: %w", err)
	}
	return nil
}

// AllStars returns every stored rating keyed by level ID.
func (s *Store) AllStars() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT level_id, stars FROM level_stars`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stars: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var id string
		var stars int
		if err := rows.Scan(&id, &stars); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stars row: %w", err)
		}
		out[id] = stars
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// SaveScore records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveScore(levelID string, score, stars int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (level_id, score, stars) VALUES (?, ?, ?)",
		levelID, score, stars,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the best runs of a level, highest score first.
func (s *Store) TopScores(levelID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, level_id, score, stars, created_at
		 FROM scores
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Score, &e.Stars, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score for a level, 0 if never played.
func (s *Store) HighScore(levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(score) FROM scores WHERE level_id = ?`, levelID).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get high score: %w", err)
	}
	return int(score.Int64), nil
}

// ClearScores deletes the runs and the rating of a level. An empty levelID
// clears everything.
func (s *Store) ClearScores(levelID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	stmts := []string{`DELETE FROM scores WHERE level_id = ?`, `DELETE FROM level_stars WHERE level_id = ?`}
	if levelID == "" {
		stmts = []string{`DELETE FROM scores`, `DELETE FROM level_stars`}
	}
	for _, q := range stmts {
		var err error
		if levelID == "" {
			_, err = tx.Exec(q)
		} else {
			_, err = tx.Exec(q, levelID)
		}
		if err != nil {
			return fmt.Errorf("storage: cannot clear scores: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// AllLevelStats aggregates every level that has a run or a rating.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM scores
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Runs, &st.HighScore, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	stars, err := s.AllStars()
	if err != nil {
		return nil, err
	}
	for id, n := range stars {
		st, ok := stats[id]
		if !ok {
			st = &LevelStats{LevelID: id}
			stats[id] = st
		}
		st.BestStars = n
	}
	return stats, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
