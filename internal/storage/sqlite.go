// Package storage provides SQLite-based persistence for game scores and
// recorded games. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/retro-tetris/internal/core"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID          int64
	GameID      string
	Score       int
	Lines       int
	RecordingID int64 // 0 when the game was not recorded
	CreatedAt   time.Time
}

// HasReplay reports whether the score has a recorded game attached.
func (e ScoreEntry) HasReplay() bool {
	return e.RecordingID != 0
}

// RecordingEntry is a stored game: the score row it belongs to plus
// everything needed to re-simulate it.
type RecordingEntry struct {
	ID        int64
	ScoreID   int64
	GameID    string
	Score     int
	Recording core.Recording
	CreatedAt time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; avoids SQLITE_BUSY between SSH sessions.
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS recordings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score_id INTEGER NOT NULL UNIQUE REFERENCES scores(id),
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			moves TEXT NOT NULL
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Score tables written by the older arcade have no lines column.
	hasLines, err := s.hasColumn("scores", "lines")
	if err != nil {
		return err
	}
	if !hasLines {
		if _, err := s.db.Exec(`ALTER TABLE scores ADD COLUMN lines INTEGER NOT NULL DEFAULT 0`); err != nil {
			return fmt.Errorf("add scores.lines: %w", err)
		}
	}

	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_scores_lines ON scores(game_id, lines DESC)`)
	return err
}

// hasColumn reports whether table has a column with the given name.
func (s *Store) hasColumn(table, column string) (bool, error) {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, fmt.Errorf("table info %s: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a new score for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score, lines int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score, lines) VALUES (?, ?, ?)",
		gameID, score, lines,
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

// SaveRecordedGame stores a score together with its recording in one
// transaction. Returns the recording ID.
func (s *Store) SaveRecordedGame(gameID string, score int, rec core.Recording) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec(
		"INSERT INTO scores (game_id, score, lines) VALUES (?, ?, ?)",
		gameID, score, rec.Lines,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	scoreID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	res, err = tx.Exec(
		`INSERT INTO recordings (score_id, seed, width, height, moves)
		 VALUES (?, ?, ?, ?, ?)`,
		scoreID, rec.Seed, rec.Width, rec.Height, rec.Moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save recording: %w", err)
	}
	recID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit recording: %w", err)
	}
	return recID, nil
}

const scoreColumns = `s.id, s.game_id, s.score, s.lines, COALESCE(r.id, 0), s.created_at`

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores s LEFT JOIN recordings r ON r.score_id = s.id
		 WHERE s.game_id = ?
		 ORDER BY s.score DESC, s.id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// TopLines retrieves the N games with the most cleared lines for the given
// game. Ties are broken by score.
func (s *Store) TopLines(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores s LEFT JOIN recordings r ON r.score_id = s.id
		 WHERE s.game_id = ?
		 ORDER BY s.lines DESC, s.score DESC, s.id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores s LEFT JOIN recordings r ON r.score_id = s.id
		 WHERE s.game_id = ?
		 ORDER BY s.score DESC, s.id ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Lines, &e.RecordingID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game, and their recordings.
func (s *Store) ClearScores(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(
		"DELETE FROM recordings WHERE score_id IN (SELECT id FROM scores WHERE game_id = ?)",
		gameID,
	); err != nil {
		return fmt.Errorf("storage: cannot clear recordings: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

const recordingColumns = `r.id, r.score_id, s.game_id, s.score, s.lines,
		        r.seed, r.width, r.height, r.moves, s.created_at`

// Recording retrieves a recorded game by ID.
// Returns ErrNotFound if there is no such recording.
func (s *Store) Recording(id int64) (*RecordingEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+recordingColumns+`
		 FROM recordings r JOIN scores s ON s.id = r.score_id
		 WHERE r.id = ?`,
		id,
	)
	e, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recording %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recording: %w", err)
	}
	return e, nil
}

// RecentRecordings retrieves the most recently recorded games.
func (s *Store) RecentRecordings(limit int) ([]RecordingEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+recordingColumns+`
		 FROM recordings r JOIN scores s ON s.id = r.score_id
		 ORDER BY r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var results []RecordingEntry
	for rows.Next() {
		e, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecording(row scanner) (*RecordingEntry, error) {
	var e RecordingEntry
	var createdAt any
	err := row.Scan(
		&e.ID,
		&e.ScoreID,
		&e.GameID,
		&e.Score,
		&e.Recording.Lines,
		&e.Recording.Seed,
		&e.Recording.Width,
		&e.Recording.Height,
		&e.Recording.Moves,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = parseTimestamp(createdAt)
	return &e, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	TotalLines int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(SUM(lines), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.TotalLines, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// parseTimestamp converts a DATETIME column; the driver may hand back
// either a time.Time or SQLite's text form.
func parseTimestamp(v any) time.Time {
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
