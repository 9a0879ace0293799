// Package storage provides SQLite-based persistence for high scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/coin-runner/internal/leaderboard"
)

// ErrInvalidScore is returned for blank names and negative scores.
var ErrInvalidScore = errors.New("storage: invalid score record")

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

var _ leaderboard.Gateway = (*Store)(nil)

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Name      string
	Score     int
	CreatedAt time.Time
}

// Stats contains aggregated statistics over all recorded runs.
type Stats struct {
	Games      int
	Players    int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	path, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; also keeps a :memory: database on one connection.
	db.SetMaxOpenConns(1)

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

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("storage: empty database path")
	}
	if p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(score DESC, id ASC);
		CREATE INDEX IF NOT EXISTS idx_high_scores_name ON high_scores(name);
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

// SaveScore records a finished run and returns the ID of the inserted record.
func (s *Store) SaveScore(ctx context.Context, name string, score int) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" || score < 0 {
		return 0, fmt.Errorf("%w: name %q, score %d", ErrInvalidScore, name, score)
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO high_scores (name, score) VALUES (?, ?)",
		name, score,
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

// Insert implements leaderboard.Gateway.
func (s *Store) Insert(ctx context.Context, name string, score int) error {
	_, err := s.SaveScore(ctx, name, score)
	return err
}

// TopScores retrieves the top N scores ordered by score descending.
// Equal scores keep insertion order.
func (s *Store) TopScores(ctx context.Context, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = leaderboard.DefaultLimit
	}
	return s.query(ctx,
		`SELECT id, name, score, created_at
		 FROM high_scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// PlayerScores retrieves every score recorded under the given name.
func (s *Store) PlayerScores(ctx context.Context, name string) ([]ScoreEntry, error) {
	return s.query(ctx,
		`SELECT id, name, score, created_at
		 FROM high_scores
		 WHERE name = ?
		 ORDER BY score DESC, id ASC`,
		strings.TrimSpace(name),
	)
}

// ListTop implements leaderboard.Gateway.
func (s *Store) ListTop(ctx context.Context, n int) ([]leaderboard.Entry, error) {
	rows, err := s.TopScores(ctx, n)
	if err != nil {
		return nil, err
	}

	entries := make([]leaderboard.Entry, len(rows))
	for i, r := range rows {
		entries[i] = leaderboard.Entry{Name: r.Name, Score: r.Score, CreatedAt: r.CreatedAt}
	}
	return entries, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &createdAt); err != nil {
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

// HighScore returns the best recorded score, or 0 if none exist.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM high_scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores and returns how many were removed.
func (s *Store) ClearScores(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM high_scores")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared rows: %w", err)
	}
	return n, nil
}

// Stats retrieves aggregated statistics over all runs.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT name), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM high_scores`,
	).Scan(&stats.Games, &stats.Players, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles both time.Time and the SQLite text format.
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
