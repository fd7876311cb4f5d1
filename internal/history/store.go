// Package history persists extracted palettes in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// MaxRecords is the number of records kept; older ones are trimmed on save.
const MaxRecords = 50

var (
	// ErrNotFound is returned when no record matches an id.
	ErrNotFound = errors.New("history record not found")

	// ErrAmbiguous is returned when an id prefix matches more than one record.
	ErrAmbiguous = errors.New("history id prefix is ambiguous")
)

// Store is a palette history backed by SQLite.
type Store struct {
	db     *sql.DB
	logger hclog.Logger
}

// DefaultPath returns the default database location under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, "swatch", "history.db"), nil
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string, logger hclog.Logger) (*Store, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply sqlite pragma %q: %w", pragma, err)
		}
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("history database ready", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores rec, assigning an id and timestamp when missing, and trims the
// history to MaxRecords.
func (s *Store) Save(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	if err := s.insert(ctx, s.db, rec); err != nil {
		return Record{}, err
	}
	if err := s.trim(ctx); err != nil {
		return Record{}, err
	}

	s.logger.Debug("saved palette", "id", rec.ID, "colours", rec.Palette.Len())
	return rec, nil
}

// Import stores records with their original ids, replacing existing ones,
// then trims to MaxRecords. It returns the number of records written.
func (s *Store) Import(ctx context.Context, records []Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		} else if _, err := uuid.Parse(rec.ID); err != nil {
			return 0, fmt.Errorf("invalid record id %q: %w", rec.ID, err)
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = time.Now().UTC()
		}
		if err := s.insert(ctx, tx, rec); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	if err := s.trim(ctx); err != nil {
		return 0, err
	}
	return len(records), nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) insert(ctx context.Context, db execer, rec Record) error {
	settings, err := json.Marshal(rec.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	palette, err := json.Marshal(rec.Palette)
	if err != nil {
		return fmt.Errorf("failed to marshal palette: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO history(id, created_at, source, settings, palette) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.UnixNano(), rec.Source, string(settings), string(palette),
	); err != nil {
		return fmt.Errorf("failed to save history record: %w", err)
	}
	return nil
}

func (s *Store) trim(ctx context.Context) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, MaxRecords)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.logger.Debug("trimmed history", "removed", n)
	}
	return nil
}

const selectColumns = `SELECT id, created_at, source, settings, palette FROM history`

// List returns up to limit records, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = MaxRecords
	}

	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return records, nil
}

// Get returns the record whose id equals or uniquely starts with id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		selectColumns+` WHERE id LIKE ? ESCAPE '\' ORDER BY created_at DESC LIMIT 2`,
		escapeLike(id)+"%")
	if err != nil {
		return Record{}, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var matches []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return Record{}, err
		}
		if rec.ID == id {
			return rec, nil
		}
		matches = append(matches, rec)
	}
	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("failed to read history: %w", err)
	}

	switch len(matches) {
	case 0:
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return Record{}, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
}

// Delete removes the record matching id (full id or unique prefix).
func (s *Store) Delete(ctx context.Context, id string) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, rec.ID); err != nil {
		return fmt.Errorf("failed to delete history record: %w", err)
	}
	return nil
}

// Clear removes every record and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared records: %w", err)
	}
	return n, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec       Record
		createdAt int64
		settings  string
		palette   string
	)
	if err := row.Scan(&rec.ID, &createdAt, &rec.Source, &settings, &palette); err != nil {
		return Record{}, fmt.Errorf("failed to scan history record: %w", err)
	}
	rec.CreatedAt = time.Unix(0, createdAt).UTC()

	if err := json.Unmarshal([]byte(settings), &rec.Settings); err != nil {
		return Record{}, fmt.Errorf("failed to decode settings for %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(palette), &rec.Palette); err != nil {
		return Record{}, fmt.Errorf("failed to decode palette for %s: %w", rec.ID, err)
	}
	return rec, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
