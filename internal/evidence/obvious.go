package evidence

import (
	"fmt"
	"path/filepath"
	"strings"

	"sifter/internal/fileid"
	"sifter/internal/taxonomy"
)

// ObviousMatcher applies the deterministic extension and filename-keyword
// rules from the taxonomy registry. It is pure: no I/O, no clock, no state
// beyond the registry reference.
type ObviousMatcher struct {
	registry *taxonomy.Registry
}

// NewObviousMatcher builds a matcher over the provided registry.
func NewObviousMatcher(registry *taxonomy.Registry) *ObviousMatcher {
	return &ObviousMatcher{registry: registry}
}

// Match evaluates every category's rules against the file name and returns
// the best deterministic signal, or a null-opinion signal when nothing
// matches. Keyword hits and extension hits both earn the category's match
// confidence; when several categories hit, the highest confidence wins and
// keyword matches break ties since they are more specific than extensions.
func (m *ObviousMatcher) Match(ref fileid.FileRef) Signal {
	name := strings.ToLower(ref.Name)
	ext := strings.ToLower(filepath.Ext(ref.Name))

	var (
		best        taxonomy.Category
		bestReasons []string
		bestKeyword bool
		found       bool
	)
	for _, cat := range m.registry.All() {
		matched, keyword, reasons := matchCategory(cat, name, ext)
		if !matched {
			continue
		}
		better := !found ||
			cat.Confidence > best.Confidence ||
			(cat.Confidence == best.Confidence && keyword && !bestKeyword)
		if better {
			best = cat
			bestReasons = reasons
			bestKeyword = keyword
			found = true
		}
	}

	if !found {
		return NullSignal(SourceObvious, "no extension or keyword rule matched")
	}
	return Signal{
		Source:     SourceObvious,
		Category:   best.ID,
		Confidence: best.Confidence,
		Reasoning:  bestReasons,
	}
}

func matchCategory(cat taxonomy.Category, name, ext string) (matched, keyword bool, reasons []string) {
	for _, kw := range cat.Keywords {
		if kw != "" && strings.Contains(name, kw) {
			keyword = true
			matched = true
			reasons = append(reasons, fmt.Sprintf("filename keyword %q matches %s", kw, cat.ID))
			break
		}
	}
	if ext != "" {
		for _, catExt := range cat.Extensions {
			if catExt == ext {
				matched = true
				reasons = append(reasons, fmt.Sprintf("extension %s matches %s", ext, cat.ID))
				break
			}
		}
	}
	return matched, keyword, reasons
}
