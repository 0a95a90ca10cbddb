// Package storage provides the SQLite run journal used for replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snake/internal/games/snake"
)

var (
	// ErrRunNotFound is returned when no run matches the requested id.
	ErrRunNotFound = errors.New("storage: run not found")
	// ErrAmbiguousRun is returned when an id prefix matches several runs.
	ErrAmbiguousRun = errors.New("storage: ambiguous run id")
)

// minPrefix is the shortest id prefix accepted by RunByID.
const minPrefix = 4

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is one finished session as stored in the journal.
type Run struct {
	ID          string
	GameID      string
	Seed        int64
	Length      int
	Ticks       uint64
	Outcome     snake.Phase
	Moves       []snake.Move
	Board       snake.Board // Zero for rows written before boards were stored
	FoodRetries int
	CreatedAt   time.Time
}

// Recording converts the run back into replay input.
func (r Run) Recording() snake.Recording {
	return snake.Recording{
		GameID:      r.GameID,
		Seed:        r.Seed,
		Moves:       r.Moves,
		Ticks:       r.Ticks,
		Length:      r.Length,
		Phase:       r.Outcome,
		Board:       r.Board,
		FoodRetries: r.FoodRetries,
	}
}

// ShortID returns the first eight characters of the id.
func (r Run) ShortID() string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
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

// addedColumns are columns introduced after the first runs schema. Older
// databases get them through ALTER TABLE on open.
var addedColumns = []struct {
	name string
	decl string
}{
	{"board_width", "INTEGER NOT NULL DEFAULT 0"},
	{"board_height", "INTEGER NOT NULL DEFAULT 0"},
	{"tile", "INTEGER NOT NULL DEFAULT 0"},
	{"food_retries", "INTEGER NOT NULL DEFAULT 0"},
}

// migrate creates the database schema if it doesn't exist and adds any
// columns missing from an older one.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			length INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			moves TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	existing, err := s.columns("runs")
	if err != nil {
		return err
	}
	for _, col := range addedColumns {
		if existing[col.name] {
			continue
		}
		if _, err := s.db.Exec(fmt.Sprintf("ALTER TABLE runs ADD COLUMN %s %s", col.name, col.decl)); err != nil {
			return fmt.Errorf("add column %s: %w", col.name, err)
		}
	}
	return nil
}

// columns returns the set of column names of table.
func (s *Store) columns(table string) (map[string]bool, error) {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		names[name] = true
	}
	return names, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished session and returns its new id.
func (s *Store) SaveRun(rec snake.Recording) (string, error) {
	moves := rec.Moves
	if moves == nil {
		moves = []snake.Move{}
	}
	data, err := json.Marshal(moves)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode moves: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO runs (id, game_id, seed, length, ticks, outcome, moves,
		                   board_width, board_height, tile, food_retries)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.GameID, rec.Seed, rec.Length, int64(rec.Ticks), rec.Phase.String(), string(data),
		rec.Board.Width, rec.Board.Height, rec.Board.Tile, rec.FoodRetries,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return id, nil
}

const runColumns = `id, game_id, seed, length, ticks, outcome, moves,
	board_width, board_height, tile, food_retries, created_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its full id or a unique prefix of it.
func (s *Store) RunByID(id string) (Run, error) {
	if len(id) < minPrefix {
		return Run{}, fmt.Errorf("%w: %q (need at least %d characters)", ErrRunNotFound, id, minPrefix)
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE substr(id, 1, ?) = ?
		 LIMIT 2`,
		len(id), id,
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(found) {
	case 0:
		return Run{}, fmt.Errorf("%w: %q", ErrRunNotFound, id)
	case 1:
		return found[0], nil
	default:
		return Run{}, fmt.Errorf("%w: %q", ErrAmbiguousRun, id)
	}
}

// CountRuns returns the number of stored runs.
func (s *Store) CountRuns() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// ClearRuns deletes every stored run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		r         Run
		ticks     int64
		outcome   string
		moves     string
		createdAt any
	)
	if err := rows.Scan(
		&r.ID, &r.GameID, &r.Seed, &r.Length, &ticks, &outcome, &moves,
		&r.Board.Width, &r.Board.Height, &r.Board.Tile, &r.FoodRetries, &createdAt,
	); err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	r.Ticks = uint64(ticks)
	phase, err := snake.ParsePhase(outcome)
	if err != nil {
		return Run{}, fmt.Errorf("storage: run %s: %w", r.ID, err)
	}
	r.Outcome = phase
	if err := json.Unmarshal([]byte(moves), &r.Moves); err != nil {
		return Run{}, fmt.Errorf("storage: run %s: cannot decode moves: %w", r.ID, err)
	}
	r.CreatedAt = parseTimestamp(createdAt)

	return r, nil
}

// parseTimestamp handles the driver returning either time.Time or text.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
