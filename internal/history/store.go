package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"sifter/internal/config"
	"sifter/internal/evidence"
	"sifter/internal/fileid"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS verified_patterns (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category TEXT NOT NULL,
    extension TEXT NOT NULL DEFAULT '',
    keyword TEXT NOT NULL DEFAULT '',
    confidence REAL NOT NULL,
    verified_count INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE(category, extension, keyword)
);
CREATE INDEX IF NOT EXISTS idx_verified_patterns_extension ON verified_patterns(extension);
`

// Pattern is one verified extension/keyword to category mapping.
type Pattern struct {
	ID            int64
	Category      string
	Extension     string
	Keyword       string
	Confidence    float64
	VerifiedCount int
}

// Store manages verified-pattern persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record upserts a verified pattern. Extension and keyword may not both be
// empty. Repeated verifications bump the count and keep the higher confidence.
func (s *Store) Record(ctx context.Context, category, extension, keyword string, confidence float64) error {
	category = strings.TrimSpace(category)
	extension = normalizeExtension(extension)
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if category == "" {
		return errors.New("record pattern: category required")
	}
	if extension == "" && keyword == "" {
		return errors.New("record pattern: extension or keyword required")
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO verified_patterns (category, extension, keyword, confidence, verified_count, created_at, updated_at)
         VALUES (?, ?, ?, ?, 1, ?, ?)
         ON CONFLICT(category, extension, keyword) DO UPDATE SET
             confidence = MAX(confidence, excluded.confidence),
             verified_count = verified_count + 1,
             updated_at = excluded.updated_at`,
		category, extension, keyword, confidence, now, now,
	)
	if err != nil {
		return fmt.Errorf("record pattern: %w", err)
	}
	return nil
}

// Lookup returns a history signal for the file, or a null-opinion signal
// when no verified pattern applies. The best pattern is the one with the
// most specific match (keyword beats bare extension) and, within that, the
// highest confidence.
func (s *Store) Lookup(ctx context.Context, ref fileid.FileRef) (evidence.Signal, error) {
	ext := normalizeExtension(filepath.Ext(ref.Name))
	name := strings.ToLower(ref.Name)

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, extension, keyword, confidence, verified_count
         FROM verified_patterns
         WHERE extension = ? OR extension = ''`,
		ext,
	)
	if err != nil {
		return evidence.Signal{}, fmt.Errorf("query patterns: %w", err)
	}
	defer rows.Close()

	var (
		best      Pattern
		bestScore int = -1
	)
	for rows.Next() {
		var p Pattern
		if err := rows.Scan(&p.Category, &p.Extension, &p.Keyword, &p.Confidence, &p.VerifiedCount); err != nil {
			return evidence.Signal{}, fmt.Errorf("scan pattern: %w", err)
		}
		if p.Keyword != "" && !strings.Contains(name, p.Keyword) {
			continue
		}
		if p.Extension == "" && p.Keyword == "" {
			continue
		}
		score := 0
		if p.Keyword != "" {
			score += 2
		}
		if p.Extension != "" {
			score++
		}
		if score > bestScore || (score == bestScore && p.Confidence > best.Confidence) {
			best = p
			bestScore = score
		}
	}
	if err := rows.Err(); err != nil {
		return evidence.Signal{}, fmt.Errorf("iterate patterns: %w", err)
	}

	if bestScore < 0 {
		return evidence.NullSignal(evidence.SourceHistory, "no verified patterns for this file"), nil
	}

	reason := fmt.Sprintf("verified pattern (seen %d time(s))", best.VerifiedCount)
	switch {
	case best.Keyword != "" && best.Extension != "":
		reason = fmt.Sprintf("verified pattern: keyword %q with extension %s (seen %d time(s))",
			best.Keyword, best.Extension, best.VerifiedCount)
	case best.Keyword != "":
		reason = fmt.Sprintf("verified pattern: keyword %q (seen %d time(s))", best.Keyword, best.VerifiedCount)
	case best.Extension != "":
		reason = fmt.Sprintf("verified pattern: extension %s (seen %d time(s))", best.Extension, best.VerifiedCount)
	}

	return evidence.Signal{
		Source:     evidence.SourceHistory,
		Category:   best.Category,
		Confidence: best.Confidence,
		Reasoning:  []string{reason},
	}, nil
}

// Path returns the on-disk database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
