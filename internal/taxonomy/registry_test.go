package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	if reg.Len() == 0 {
		t.Fatal("default registry should not be empty")
	}
	cat, ok := reg.Get("screenshots")
	if !ok {
		t.Fatal("expected screenshots category")
	}
	if cat.Kind != KindImage {
		t.Errorf("screenshots kind = %s, want image", cat.Kind)
	}
	if cat.Confidence != 0.95 {
		t.Errorf("screenshots confidence = %v, want 0.95", cat.Confidence)
	}
	if cat.DisplayName != "Screenshots" {
		t.Errorf("display name = %q, want Screenshots", cat.DisplayName)
	}
}

func TestKindOfUnknownCategory(t *testing.T) {
	reg := Default()
	if kind := reg.KindOf("never_registered"); kind != KindGeneric {
		t.Errorf("KindOf unknown = %s, want generic", kind)
	}
}

func TestNewRegistryNormalizesRules(t *testing.T) {
	reg := NewRegistry([]Category{
		{
			ID:         "mixtapes",
			Extensions: []string{"MP3", " .Flac "},
			Keywords:   []string{" Mixtape "},
			Confidence: 0.8,
			Kind:       KindAudio,
		},
		{ID: ""},
	})
	cat, ok := reg.Get("mixtapes")
	if !ok {
		t.Fatal("expected mixtapes category")
	}
	if cat.Extensions[0] != ".mp3" || cat.Extensions[1] != ".flac" {
		t.Errorf("extensions not normalized: %v", cat.Extensions)
	}
	if cat.Keywords[0] != "mixtape" {
		t.Errorf("keywords not normalized: %v", cat.Keywords)
	}
	if reg.Len() != 1 {
		t.Errorf("empty-id category should be dropped, got %d entries", reg.Len())
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.toml")
	overlay := `
[[category]]
id = "blueprints"
extensions = [".dwg"]
keywords = ["blueprint"]
confidence = 0.92
kind = "document"

[[category]]
id = "screenshots"
extensions = [".png", ".jpg"]
keywords = ["screenshot"]
confidence = 0.99
kind = "image"
`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := reg.Get("blueprints"); !ok {
		t.Error("overlay category missing")
	}
	if _, ok := reg.Get("audio"); !ok {
		t.Error("default categories should survive a non-replacing overlay")
	}
	shot, _ := reg.Get("screenshots")
	if shot.Confidence != 0.99 {
		t.Errorf("overlay should override defaults, confidence = %v", shot.Confidence)
	}
}

func TestLoadReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.toml")
	overlay := `
replace = true

[[category]]
id = "everything"
confidence = 0.5
`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("replace registry should have 1 category, got %d", reg.Len())
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	reg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Len() != Default().Len() {
		t.Error("empty path should return the default registry")
	}
}
