package reviewqueue

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"sifter/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReviewLog = filepath.Join(base, "review", "queue.jsonl")

	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("reviewqueue.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleEntry(id string) Entry {
	return Entry{
		ID:            id,
		Path:          "/files/draft_" + id + ".txt",
		CoarseType:    "text",
		Category:      "needs_review",
		Confidence:    0.55,
		DecisionTrace: []string{"low confidence: tentatively accepting"},
		Conflicts:     nil,
		Candidates: []CandidateSummary{
			{Source: "modality", Category: "creative", Confidence: 0.55, Weight: 0.8},
		},
	}
}

func TestAppendAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.Append(ctx, sampleEntry("abc123"))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if saved.Status != StatusPending {
		t.Errorf("status = %s, want pending", saved.Status)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	got, err := store.GetByID(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Category != "needs_review" || got.Confidence != 0.55 {
		t.Errorf("entry = %+v", got)
	}
	if len(got.DecisionTrace) != 1 || len(got.Candidates) != 1 {
		t.Errorf("round-trip lost detail: trace=%v candidates=%v", got.DecisionTrace, got.Candidates)
	}
}

func TestAppendDeduplicatesByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Append(ctx, sampleEntry("same-id"))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	second, err := store.Append(ctx, sampleEntry("same-id"))
	if err != nil {
		t.Fatalf("Append duplicate: %v", err)
	}

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("created_at should be preserved on dedupe")
	}
	entries, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1 after dedupe", len(entries))
	}
}

func TestListByStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := store.Append(ctx, sampleEntry(id)); err != nil {
			t.Fatalf("Append %s: %v", id, err)
		}
	}
	if _, err := store.Resolve(ctx, "b", "creative"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	pending, err := store.List(ctx, StatusPending)
	if err != nil {
		t.Fatalf("List pending: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending = %d, want 2", len(pending))
	}

	count, err := store.PendingCount(ctx)
	if err != nil {
		t.Fatalf("PendingCount: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestResolveTransitions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Append(ctx, sampleEntry("x")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	resolved, err := store.Resolve(ctx, "x", "creative")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Status != StatusResolved || resolved.ResolvedCategory != "creative" {
		t.Errorf("entry = %+v", resolved)
	}

	// Resolving twice fails: the entry is no longer pending.
	if _, err := store.Resolve(ctx, "x", "other"); err == nil {
		t.Error("expected error resolving a non-pending entry")
	}
}

func TestDismiss(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Append(ctx, sampleEntry("y")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	dismissed, err := store.Dismiss(ctx, "y")
	if err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if dismissed.Status != StatusDismissed {
		t.Errorf("status = %s", dismissed.Status)
	}
}

func TestGetMissingEntry(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetByID(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestExporterAppendsJSONLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "queue.jsonl")
	exporter := NewExporter(path)

	for _, id := range []string{"one", "two"} {
		if err := exporter.Append(sampleEntry(id)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()

	var lines int
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines++
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines, err)
		}
		if entry.Path == "" {
			t.Errorf("line %d missing path", lines)
		}
	}
	if lines != 2 {
		t.Errorf("lines = %d, want 2", lines)
	}
}

func TestExporterDisabledByEmptyPath(t *testing.T) {
	exporter := NewExporter("  ")
	if err := exporter.Append(sampleEntry("z")); err != nil {
		t.Fatalf("disabled exporter should no-op, got %v", err)
	}
}
