package fusion

import (
	"fmt"

	"sifter/internal/evidence"
	"sifter/internal/media"
	"sifter/internal/taxonomy"
)

// hardDisagreementFloor is the obvious confidence above which a differing
// modality opinion is treated as a blocking contradiction.
const hardDisagreementFloor = 0.9

// KindFunc maps a category id to its media kind. Unknown ids must map to
// taxonomy.KindGeneric so detection stays total.
type KindFunc func(category string) taxonomy.Kind

// Detector finds contradictions in a bundle that must suppress automatic
// routing. Detection is a pure function of the bundle and file type.
type Detector struct {
	kinds KindFunc
}

// NewDetector builds a detector using the provided kind resolver.
func NewDetector(kinds KindFunc) *Detector {
	if kinds == nil {
		kinds = func(string) taxonomy.Kind { return taxonomy.KindGeneric }
	}
	return &Detector{kinds: kinds}
}

// Detect returns the ordered list of conflict descriptions for the bundle.
// Zero or more rules may fire; the result is empty when the evidence agrees.
func (d *Detector) Detect(b evidence.Bundle, coarse media.CoarseType) []string {
	var conflicts []string

	if c := d.hardDisagreement(b); c != "" {
		conflicts = append(conflicts, c)
	}
	if c := d.typeMismatch(b, coarse); c != "" {
		conflicts = append(conflicts, c)
	}
	return conflicts
}

// hardDisagreement fires when a near-certain deterministic match and the
// modality analyzer propose different real categories.
func (d *Detector) hardDisagreement(b evidence.Bundle) string {
	if b.Obvious.Confidence <= hardDisagreementFloor || !b.Obvious.HasOpinion() {
		return ""
	}
	if !b.Modality.HasOpinion() || evidence.IsSentinel(b.Modality.Category) {
		return ""
	}
	if b.Modality.Category == b.Obvious.Category {
		return ""
	}
	return fmt.Sprintf(
		"hard disagreement: obvious proposes %q at %.2f but modality proposes %q",
		b.Obvious.Category, b.Obvious.Confidence, b.Modality.Category,
	)
}

// typeMismatch fires when the modality opinion is physically implausible for
// the file's coarse type.
func (d *Detector) typeMismatch(b evidence.Bundle, coarse media.CoarseType) string {
	if !b.Modality.HasOpinion() || evidence.IsSentinel(b.Modality.Category) {
		return ""
	}
	kind := d.kinds(b.Modality.Category)
	switch coarse {
	case media.TypeAudio:
		if kind == taxonomy.KindImage || kind == taxonomy.KindDocument {
			return fmt.Sprintf(
				"type mismatch: audio file but modality proposes %s category %q",
				kind, b.Modality.Category,
			)
		}
	case media.TypeImage:
		if kind == taxonomy.KindAudio {
			return fmt.Sprintf(
				"type mismatch: image file but modality proposes audio category %q",
				b.Modality.Category,
			)
		}
	}
	return ""
}
