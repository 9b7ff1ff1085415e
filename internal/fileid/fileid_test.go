package fileid

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "invoice.pdf", "hello")

	ref, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ref.Name != "invoice.pdf" {
		t.Errorf("Name = %q, want invoice.pdf", ref.Name)
	}
	if ref.Size != int64(len("hello")) {
		t.Errorf("Size = %d, want %d", ref.Size, len("hello"))
	}
	if ref.ModTime.IsZero() {
		t.Error("ModTime should be populated")
	}
}

func TestResolveMissingFile(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolveDirectory(t *testing.T) {
	if _, err := Resolve(t.TempDir()); err == nil {
		t.Fatal("expected error for directory")
	}
}

func TestIDStableForUnchangedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "notes.txt", "contents")

	first, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ID(first) != ID(second) {
		t.Error("expected identical ids for unchanged file")
	}
}

func TestIDChangesWithModTime(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "notes.txt", "contents")
	ref, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	changed := ref
	changed.ModTime = ref.ModTime.Add(time.Second)
	if ID(ref) == ID(changed) {
		t.Error("expected id to change when modification time changes")
	}

	resized := ref
	resized.Size = ref.Size + 1
	if ID(ref) == ID(resized) {
		t.Error("expected id to change when size changes")
	}
}
