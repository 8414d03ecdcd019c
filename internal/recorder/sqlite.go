package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists fetch and conversion history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the daemon's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			base       TEXT NOT NULL,
			source     TEXT,
			rate_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS conversions (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			base      TEXT NOT NULL,
			target    TEXT NOT NULL,
			amount    REAL,
			rate      REAL,
			result    REAL,
			cached    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conv_ts ON conversions(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFetch(evt *FetchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_events
		(timestamp, base, source, rate_count)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.Base, evt.Source, evt.RateCount,
	)
	return err
}

func (r *SQLiteRecorder) RecordConversion(evt *ConversionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cached := 0
	if evt.Cached {
		cached = 1
	}
	_, err := r.db.Exec(`INSERT INTO conversions
		(timestamp, base, target, amount, rate, result, cached)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Base, evt.Target,
		evt.Amount, evt.Rate, evt.Result, cached,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
