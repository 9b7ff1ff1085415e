package reviewqueue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// Exporter appends review entries to a JSONL log, one line per entry, for
// external consumers that tail the queue without opening the database.
// Appends take a cross-process file lock so concurrent classifiers never
// interleave partial lines.
type Exporter struct {
	path string
}

// NewExporter builds an exporter for the given path. An empty path disables
// exporting.
func NewExporter(path string) *Exporter {
	return &Exporter{path: strings.TrimSpace(path)}
}

// Append writes one entry as a single JSON line. The write is
// open-append-close per call: cheap enough for queue volumes and it keeps
// the lock window small.
func (e *Exporter) Append(entry Entry) error {
	if e == nil || e.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return fmt.Errorf("ensure export dir: %w", err)
	}

	lock := flock.New(e.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock export %s: %w", e.path, err)
	}
	defer func() { _ = lock.Unlock() }()

	file, err := os.OpenFile(e.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open export %s: %w", e.path, err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(entry); err != nil {
		return fmt.Errorf("append export entry: %w", err)
	}
	return nil
}

// Path returns the on-disk location backing the export log.
func (e *Exporter) Path() string {
	if e == nil {
		return ""
	}
	return e.path
}
