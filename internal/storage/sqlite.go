// Package storage provides SQLite-based persistence for session results and
// replays. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-stacker/internal/engine"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ResultEntry represents one finished session.
type ResultEntry struct {
	ID        int64
	ModeID    string
	Score     int
	Lines     int
	Duration  int // ticks
	CreatedAt time.Time
}

// TimedCommand is one control command and the tick it was submitted on.
type TimedCommand struct {
	Tick uint64
	Cmd  engine.Command
}

// Replay is a recorded session: the seed plus the full timed command log is
// enough to reproduce every tick of the run.
type Replay struct {
	ID        int64
	ModeID    string
	Seed      int64
	Commands  []TimedCommand
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			duration_ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_mode_id ON results(mode_id);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(mode_id, score DESC);

		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			commands TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_mode_id ON replays(mode_id);
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

// SaveResult records a finished session for the given mode.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(modeID string, score, lines, durationTicks int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO results (mode_id, score, lines, duration_ticks) VALUES (?, ?, ?, ?)",
		modeID, score, lines, durationTicks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopResults retrieves the top N results for the given mode.
// Results are ordered by score descending.
func (s *Store) TopResults(modeID string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode_id, score, lines, duration_ticks, created_at
		 FROM results
		 WHERE mode_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		modeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.ModeID, &e.Score, &e.Lines, &e.Duration, &createdAt); err != nil {
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

// HighScore returns the highest score for the given mode.
// Returns 0 if no results exist.
func (s *Store) HighScore(modeID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE mode_id = ?",
		modeID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearResults deletes all results for the given mode.
func (s *Store) ClearResults(modeID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE mode_id = ?", modeID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// SaveReplay records a session's seed and timed command log.
// Returns the ID of the inserted record.
func (s *Store) SaveReplay(modeID string, seed int64, commands []TimedCommand) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO replays (mode_id, seed, commands) VALUES (?, ?, ?)",
		modeID, seed, encodeCommands(commands),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// LoadReplay retrieves a replay by ID. Returns nil if no such replay exists.
func (s *Store) LoadReplay(id int64) (*Replay, error) {
	var r Replay
	var encoded string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, mode_id, seed, commands, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.ModeID, &r.Seed, &encoded, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r.Commands, err = decodeCommands(encoded)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = parseTimestamp(createdAt)

	return &r, nil
}

// RecentReplays retrieves the most recent replays for a mode.
func (s *Store) RecentReplays(modeID string, limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode_id, seed, commands, created_at
		 FROM replays
		 WHERE mode_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		modeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		var r Replay
		var encoded string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.ModeID, &r.Seed, &encoded, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Commands, err = decodeCommands(encoded)
		if err != nil {
			return nil, err
		}
		r.CreatedAt = parseTimestamp(createdAt)
		replays = append(replays, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	ModeID     string
	Sessions   int
	HighScore  int
	AvgScore   float64
	TotalLines int64
	LastPlayed time.Time
}

// GetModeStats retrieves aggregated statistics for a specific mode.
func (s *Store) GetModeStats(modeID string) (*ModeStats, error) {
	stats := &ModeStats{ModeID: modeID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(lines), 0)
		 FROM results WHERE mode_id = ?`,
		modeID,
	).Scan(&stats.Sessions, &stats.HighScore, &stats.AvgScore, &stats.TotalLines)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE mode_id = ? ORDER BY created_at DESC LIMIT 1`,
		modeID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// encodeCommands serializes a timed command log as space-separated
// "tick:name" words, kept as plain text so replays stay inspectable with
// the sqlite CLI.
func encodeCommands(commands []TimedCommand) string {
	var sb strings.Builder
	for i, tc := range commands {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(tc.Tick, 10))
		sb.WriteByte(':')
		sb.WriteString(tc.Cmd.String())
	}
	return sb.String()
}

// decodeCommands parses the encodeCommands format.
func decodeCommands(encoded string) ([]TimedCommand, error) {
	if encoded == "" {
		return nil, nil
	}

	words := strings.Fields(encoded)
	commands := make([]TimedCommand, 0, len(words))
	for _, w := range words {
		tick, name, ok := strings.Cut(w, ":")
		if !ok {
			return nil, fmt.Errorf("storage: malformed replay entry %q", w)
		}
		t, err := strconv.ParseUint(tick, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("storage: malformed replay tick %q: %w", tick, err)
		}
		cmd, ok := engine.ParseCommand(name)
		if !ok {
			return nil, fmt.Errorf("storage: malformed replay command %q", name)
		}
		commands = append(commands, TimedCommand{Tick: t, Cmd: cmd})
	}
	return commands, nil
}

// parseTimestamp handles both time.Time and string datetime values the
// driver may return.
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
