/*
Package sqlite provides the SQLite-backed calendar store.

PURPOSE:
  Implements calendars.Store using SQLite. A calendar definition is one
  row in calendars plus its explicit dates and annual rules in child
  tables. Save is an upsert keyed on the unique calendar name: the
  server re-posting a definition replaces its dates and rules in one
  transaction while keeping the record id stable.

KEY TABLES:
  calendars:       id, unique name, timestamps
  calendar_dates:  explicit holiday dates (ISO text) per calendar
  calendar_rules:  annual month/day holidays per calendar

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/calendars.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  saved, err := store.Save(ctx, rec)
  calendars.Register(saved.Calendar())

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - calendars/store.go: Interface and Record definitions
  - api: handlers keeping the registry in sync with this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/frequency-engine/calendars"
	"github.com/warp/frequency-engine/moments"
)

// Store implements calendars.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ calendars.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calendars (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS calendar_dates (
		calendar_id TEXT NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_calendar_dates_calendar
		ON calendar_dates(calendar_id, date);

	CREATE TABLE IF NOT EXISTS calendar_rules (
		calendar_id TEXT NOT NULL REFERENCES calendars(id) ON DELETE CASCADE,
		month INTEGER NOT NULL,
		day INTEGER NOT NULL,
		label TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_calendar_rules_calendar
		ON calendar_rules(calendar_id, month, day);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Save upserts a calendar definition by name. An existing name keeps its
// id and has its dates and rules replaced; a new name gets a fresh uuid.
func (s *Store) Save(ctx context.Context, rec calendars.Record) (calendars.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Name == "" {
		return calendars.Record{}, fmt.Errorf("save calendar: missing name")
	}

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return calendars.Record{}, fmt.Errorf("save calendar %s: %w", rec.Name, err)
	}
	defer tx.Rollback()

	var id, createdAt string
	err = tx.QueryRowContext(ctx,
		`SELECT id, created_at FROM calendars WHERE name = ?`, rec.Name,
	).Scan(&id, &createdAt)
	switch {
	case err == sql.ErrNoRows:
		id = uuid.NewString()
		createdAt = now.Format(time.RFC3339Nano)
		_, err = tx.ExecContext(ctx,
			`INSERT INTO calendars (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			id, rec.Name, createdAt, now.Format(time.RFC3339Nano))
		if err != nil {
			return calendars.Record{}, fmt.Errorf("save calendar %s: %w", rec.Name, err)
		}
	case err != nil:
		return calendars.Record{}, fmt.Errorf("save calendar %s: %w", rec.Name, err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE calendars SET updated_at = ? WHERE id = ?`,
			now.Format(time.RFC3339Nano), id)
		if err != nil {
			return calendars.Record{}, fmt.Errorf("save calendar %s: %w", rec.Name, err)
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM calendar_dates WHERE calendar_id = ?`, id); err != nil {
			return calendars.Record{}, fmt.Errorf("save calendar %s: %w", rec.Name, err)
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM calendar_rules WHERE calendar_id = ?`, id); err != nil {
			return calendars.Record{}, fmt.Errorf("save calendar %s: %w", rec.Name, err)
		}
	}

	for _, e := range rec.Dates {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO calendar_dates (calendar_id, date, label) VALUES (?, ?, ?)`,
			id, e.Date.String(), e.Label)
		if err != nil {
			return calendars.Record{}, fmt.Errorf("save calendar %s: %w", rec.Name, err)
		}
	}
	for _, r := range rec.Rules {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO calendar_rules (calendar_id, month, day, label) VALUES (?, ?, ?, ?)`,
			id, int(r.Month), r.Day, r.Label)
		if err != nil {
			return calendars.Record{}, fmt.Errorf("save calendar %s: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return calendars.Record{}, fmt.Errorf("save calendar %s: %w", rec.Name, err)
	}

	created, _ := time.Parse(time.RFC3339Nano, createdAt)
	saved := rec
	saved.ID = id
	saved.CreatedAt = created
	saved.UpdatedAt = now
	return saved, nil
}

// Get returns the record with the given id, or calendars.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (calendars.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(ctx, `SELECT id, name, created_at, updated_at FROM calendars WHERE id = ?`, id)
}

// GetByName returns the record with the given name, or calendars.ErrNotFound.
func (s *Store) GetByName(ctx context.Context, name string) (calendars.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(ctx, `SELECT id, name, created_at, updated_at FROM calendars WHERE name = ?`, name)
}

func (s *Store) get(ctx context.Context, query string, arg any) (calendars.Record, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return calendars.Record{}, err
	}
	if err := s.loadEntries(ctx, &rec); err != nil {
		return calendars.Record{}, err
	}
	return rec, nil
}

// List returns all records ordered by name.
func (s *Store) List(ctx context.Context) ([]calendars.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM calendars ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}
	defer rows.Close()

	var recs []calendars.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}

	for i := range recs {
		if err := s.loadEntries(ctx, &recs[i]); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// Delete removes the record with the given id, or calendars.ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM calendars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete calendar %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete calendar %s: %w", id, err)
	}
	if n == 0 {
		return calendars.ErrNotFound
	}
	return nil
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (calendars.Record, error) {
	var rec calendars.Record
	var createdAt, updatedAt string
	err := row.Scan(&rec.ID, &rec.Name, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return calendars.Record{}, calendars.ErrNotFound
	}
	if err != nil {
		return calendars.Record{}, fmt.Errorf("scan calendar: %w", err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return calendars.Record{}, fmt.Errorf("scan calendar %s: created_at: %w", rec.ID, err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return calendars.Record{}, fmt.Errorf("scan calendar %s: updated_at: %w", rec.ID, err)
	}
	return rec, nil
}

// loadEntries fills in the dates and rules of a scanned record.
func (s *Store) loadEntries(ctx context.Context, rec *calendars.Record) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, label FROM calendar_dates WHERE calendar_id = ? ORDER BY date`, rec.ID)
	if err != nil {
		return fmt.Errorf("load calendar %s: %w", rec.Name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var iso, label string
		if err := rows.Scan(&iso, &label); err != nil {
			return fmt.Errorf("load calendar %s: %w", rec.Name, err)
		}
		d, err := moments.ParseDate(iso)
		if err != nil {
			return fmt.Errorf("load calendar %s: stored date %q: %w", rec.Name, iso, err)
		}
		rec.Dates = append(rec.Dates, calendars.DateEntry{Date: d, Label: label})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load calendar %s: %w", rec.Name, err)
	}

	ruleRows, err := s.db.QueryContext(ctx,
		`SELECT month, day, label FROM calendar_rules WHERE calendar_id = ? ORDER BY month, day`, rec.ID)
	if err != nil {
		return fmt.Errorf("load calendar %s: %w", rec.Name, err)
	}
	defer ruleRows.Close()
	for ruleRows.Next() {
		var month, day int
		var label string
		if err := ruleRows.Scan(&month, &day, &label); err != nil {
			return fmt.Errorf("load calendar %s: %w", rec.Name, err)
		}
		rec.Rules = append(rec.Rules, calendars.Rule{Month: time.Month(month), Day: day, Label: label})
	}
	if err := ruleRows.Err(); err != nil {
		return fmt.Errorf("load calendar %s: %w", rec.Name, err)
	}
	return nil
}
