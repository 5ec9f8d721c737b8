package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"trendbrief/internal/core"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite-backed run index: it tracks runs, archives generated
// briefs, and caches trends responses so repeated fetches within a day do
// not hit the upstream API again.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new store instance with SQLite database.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "trendbrief.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables.
func (s *Store) initialize() error {
	runsTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		date_stamp TEXT,
		created_at DATETIME,
		status TEXT
	);`

	briefsTable := `
	CREATE TABLE IF NOT EXISTS briefs (
		id TEXT PRIMARY KEY,
		run_id TEXT,
		markdown TEXT,
		model_used TEXT,
		date_generated DATETIME,
		FOREIGN KEY (run_id) REFERENCES runs (id)
	);`

	trendsCacheTable := `
	CREATE TABLE IF NOT EXISTS trends_cache (
		key TEXT PRIMARY KEY,
		payload TEXT,
		date_fetched DATETIME
	);`

	tables := []string{runsTable, briefsTable, trendsCacheTable}
	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records a run and its current status. Re-saving updates the status.
func (s *Store) SaveRun(run core.Run) error {
	query := `
	INSERT OR REPLACE INTO runs (id, date_stamp, created_at, status)
	VALUES (?, ?, ?, ?)`

	_, err := s.db.Exec(query, run.ID, run.DateStamp, run.CreatedAt, run.Status)
	return err
}

// GetRun retrieves a run by ID. Returns nil when the run is unknown.
func (s *Store) GetRun(runID string) (*core.Run, error) {
	row := s.db.QueryRow(`SELECT id, date_stamp, created_at, status FROM runs WHERE id = ?`, runID)

	var run core.Run
	err := row.Scan(&run.ID, &run.DateStamp, &run.CreatedAt, &run.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	return &run, nil
}

// ListRuns returns recorded runs, newest first.
func (s *Store) ListRuns(limit int) ([]core.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT id, date_stamp, created_at, status FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []core.Run
	for rows.Next() {
		var run core.Run
		if err := rows.Scan(&run.ID, &run.DateStamp, &run.CreatedAt, &run.Status); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SaveBrief archives a generated brief.
func (s *Store) SaveBrief(brief core.Brief) error {
	query := `
	INSERT OR REPLACE INTO briefs (id, run_id, markdown, model_used, date_generated)
	VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query, brief.ID, brief.RunID, brief.Markdown, brief.ModelUsed, brief.DateGenerated)
	return err
}

// GetBriefForRun retrieves the newest brief archived for a run. Returns nil
// when none exists.
func (s *Store) GetBriefForRun(runID string) (*core.Brief, error) {
	row := s.db.QueryRow(`
	SELECT id, run_id, markdown, model_used, date_generated
	FROM briefs WHERE run_id = ? ORDER BY date_generated DESC LIMIT 1`, runID)

	var brief core.Brief
	err := row.Scan(&brief.ID, &brief.RunID, &brief.Markdown, &brief.ModelUsed, &brief.DateGenerated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan brief: %w", err)
	}
	return &brief, nil
}

// CacheTrends stores a trends response payload under its request key.
func (s *Store) CacheTrends(key, payload string) error {
	query := `
	INSERT OR REPLACE INTO trends_cache (key, payload, date_fetched)
	VALUES (?, ?, ?)`

	_, err := s.db.Exec(query, key, payload, time.Now().UTC())
	return err
}

// GetCachedTrends retrieves a trends payload no older than maxAge. Returns
// empty string on cache miss.
func (s *Store) GetCachedTrends(key string, maxAge time.Duration) (string, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	row := s.db.QueryRow(`SELECT payload FROM trends_cache WHERE key = ? AND date_fetched > ?`, key, cutoff)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to scan trends cache: %w", err)
	}
	return payload, nil
}

// CleanupOldCache removes stale trends responses.
func (s *Store) CleanupOldCache(maxAge time.Duration) error {
	cutoff := time.Now().UTC().Add(-maxAge)
	if _, err := s.db.Exec(`DELETE FROM trends_cache WHERE date_fetched < ?`, cutoff); err != nil {
		return fmt.Errorf("failed to clean trends cache: %w", err)
	}
	return nil
}
