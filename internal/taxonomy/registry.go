package taxonomy

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the media family a category belongs to. It is coarser than the
// category id and drives type-mismatch conflict rules.
type Kind string

const (
	KindDocument Kind = "document"
	KindImage    Kind = "image"
	KindAudio    Kind = "audio"
	KindVideo    Kind = "video"
	KindArchive  Kind = "archive"
	KindCode     Kind = "code"
	KindGeneric  Kind = "generic"
)

// Category describes one taxonomy entry and its deterministic match rules.
type Category struct {
	ID          string   `toml:"id"`
	DisplayName string   `toml:"display_name"`
	Extensions  []string `toml:"extensions"`
	Keywords    []string `toml:"keywords"`
	Confidence  float64  `toml:"confidence"`
	Kind        Kind     `toml:"kind"`
}

// Registry is an immutable, read-mostly category lookup. Construct once at
// startup and share by reference.
type Registry struct {
	categories map[string]Category
	order      []string
}

type registryFile struct {
	Replace    bool       `toml:"replace"`
	Categories []Category `toml:"category"`
}

// NewRegistry builds a registry from the provided categories. Categories
// with empty ids are dropped; later duplicates override earlier ones.
func NewRegistry(categories []Category) *Registry {
	reg := &Registry{categories: make(map[string]Category, len(categories))}
	titler := cases.Title(language.English)
	for _, cat := range categories {
		cat.ID = strings.TrimSpace(cat.ID)
		if cat.ID == "" {
			continue
		}
		if cat.DisplayName == "" {
			cat.DisplayName = titler.String(strings.ReplaceAll(cat.ID, "_", " "))
		}
		if cat.Confidence <= 0 || cat.Confidence > 1 {
			cat.Confidence = defaultMatchConfidence
		}
		if cat.Kind == "" {
			cat.Kind = KindGeneric
		}
		for i, ext := range cat.Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext != "" && !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cat.Extensions[i] = ext
		}
		for i, kw := range cat.Keywords {
			cat.Keywords[i] = strings.ToLower(strings.TrimSpace(kw))
		}
		if _, exists := reg.categories[cat.ID]; !exists {
			reg.order = append(reg.order, cat.ID)
		}
		reg.categories[cat.ID] = cat
	}
	return reg
}

// Load builds a registry from the defaults plus an optional TOML overlay at
// path. An empty path returns the default registry. A file with
// replace = true discards the defaults entirely.
func Load(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	var file registryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}
	if file.Replace {
		return NewRegistry(file.Categories), nil
	}
	merged := append(defaultCategories(), file.Categories...)
	return NewRegistry(merged), nil
}

// Default returns the built-in registry.
func Default() *Registry {
	return NewRegistry(defaultCategories())
}

// All returns every category sorted by id.
func (r *Registry) All() []Category {
	out := make([]Category, 0, len(r.categories))
	for _, id := range r.order {
		out = append(out, r.categories[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the category with the given id.
func (r *Registry) Get(id string) (Category, bool) {
	cat, ok := r.categories[id]
	return cat, ok
}

// KindOf returns the media kind for a category id, or KindGeneric when the
// id is unknown. It never fails: conflict detection must stay total even
// when an analyzer invents a category outside the registry.
func (r *Registry) KindOf(id string) Kind {
	if cat, ok := r.categories[id]; ok {
		return cat.Kind
	}
	return KindGeneric
}

// DisplayName returns the human-readable name for a category id, falling
// back to a title-cased rendering of the id itself.
func (r *Registry) DisplayName(id string) string {
	if cat, ok := r.categories[id]; ok && cat.DisplayName != "" {
		return cat.DisplayName
	}
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

// Len returns the number of registered categories.
func (r *Registry) Len() int {
	return len(r.categories)
}
