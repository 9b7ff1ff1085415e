package reviewqueue

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"sifter/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users must clear the queue database after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrNotFound indicates the requested entry does not exist.
var ErrNotFound = errors.New("review entry not found")

// Store manages review queue persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the review queue database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.QueueDatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// Append inserts an entry with status pending, or refreshes updated_at when
// the id already exists (an unchanged file re-scanned). The insert is a
// single transaction so readers never observe a partial entry.
func (s *Store) Append(ctx context.Context, entry Entry) (*Entry, error) {
	if strings.TrimSpace(entry.ID) == "" {
		return nil, errors.New("append entry: id required")
	}
	if strings.TrimSpace(entry.Path) == "" {
		return nil, errors.New("append entry: path required")
	}

	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	if entry.Status == "" {
		entry.Status = StatusPending
	}

	trace, err := marshalStrings(entry.DecisionTrace)
	if err != nil {
		return nil, fmt.Errorf("encode decision trace: %w", err)
	}
	conflicts, err := marshalStrings(entry.Conflicts)
	if err != nil {
		return nil, fmt.Errorf("encode conflicts: %w", err)
	}
	candidates, err := json.Marshal(entry.Candidates)
	if err != nil {
		return nil, fmt.Errorf("encode candidates: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO review_entries (
            id, created_at, updated_at, path, coarse_type,
            category, confidence, decision_trace, conflicts, candidates, status
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		entry.ID,
		entry.CreatedAt.Format(time.RFC3339Nano),
		entry.UpdatedAt.Format(time.RFC3339Nano),
		entry.Path,
		entry.CoarseType,
		entry.Category,
		entry.Confidence,
		trace,
		conflicts,
		string(candidates),
		entry.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("insert review entry: %w", err)
	}

	return s.GetByID(ctx, entry.ID)
}

// GetByID fetches one entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+" FROM review_entries WHERE id = ?", id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entry, err
}

// List returns entries filtered by status, newest first. An empty status
// returns everything.
func (s *Store) List(ctx context.Context, status Status) ([]*Entry, error) {
	query := selectColumns + " FROM review_entries"
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list review entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Resolve marks a pending entry resolved with the reviewer's final category.
func (s *Store) Resolve(ctx context.Context, id, category string) (*Entry, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, errors.New("resolve entry: category required")
	}
	return s.transition(ctx, id, StatusResolved, category)
}

// Dismiss marks a pending entry dismissed without a category.
func (s *Store) Dismiss(ctx context.Context, id string) (*Entry, error) {
	return s.transition(ctx, id, StatusDismissed, "")
}

func (s *Store) transition(ctx context.Context, id string, status Status, resolvedCategory string) (*Entry, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE review_entries
         SET status = ?, resolved_category = ?, updated_at = ?
         WHERE id = ? AND status = ?`,
		status, resolvedCategory, now, id, StatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("update review entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		if _, getErr := s.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("entry %s is not pending", id)
	}
	return s.GetByID(ctx, id)
}

// PendingCount returns the number of entries awaiting review.
func (s *Store) PendingCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM review_entries WHERE status = ?", StatusPending,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending entries: %w", err)
	}
	return count, nil
}

const selectColumns = `SELECT id, created_at, updated_at, path, coarse_type,
    category, confidence, decision_trace, conflicts, candidates, status, resolved_category`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry      Entry
		createdAt  string
		updatedAt  string
		trace      string
		conflicts  string
		candidates string
	)
	err := row.Scan(
		&entry.ID, &createdAt, &updatedAt, &entry.Path, &entry.CoarseType,
		&entry.Category, &entry.Confidence, &trace, &conflicts, &candidates,
		&entry.Status, &entry.ResolvedCategory,
	)
	if err != nil {
		return nil, err
	}
	if entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if entry.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	if err := json.Unmarshal([]byte(trace), &entry.DecisionTrace); err != nil {
		return nil, fmt.Errorf("decode decision trace: %w", err)
	}
	if err := json.Unmarshal([]byte(conflicts), &entry.Conflicts); err != nil {
		return nil, fmt.Errorf("decode conflicts: %w", err)
	}
	if err := json.Unmarshal([]byte(candidates), &entry.Candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return &entry, nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
