package fusion

import (
	"sort"

	"sifter/internal/evidence"
)

// Per-source ranking weights. Carried on candidates for the review queue;
// ranking itself orders by confidence. The history weight is reserved.
const (
	obviousWeight  = 1.0
	modalityWeight = 0.8
	historyWeight  = 0.8
)

// Candidate is one ranked classification option derived from a signal.
type Candidate struct {
	Source     evidence.Source `json:"source"`
	Category   string          `json:"category"`
	Confidence float64         `json:"confidence"`
	Weight     float64         `json:"weight"`
	Reasoning  []string        `json:"reasoning,omitempty"`
}

var sourcePriority = map[evidence.Source]int{
	evidence.SourceObvious:  0,
	evidence.SourceModality: 1,
	evidence.SourceHistory:  2,
}

// SourceWeight returns the fixed ranking weight for a source.
func SourceWeight(source evidence.Source) float64 {
	switch source {
	case evidence.SourceObvious:
		return obviousWeight
	case evidence.SourceModality:
		return modalityWeight
	case evidence.SourceHistory:
		return historyWeight
	}
	return 0
}

// Rank converts the bundle's opinionated signals into candidates ordered by
// confidence descending, ties broken by source priority obvious > modality >
// history. The sort is stable and deterministic so decision traces and tests
// can assert exact ordering.
func Rank(b evidence.Bundle) []Candidate {
	candidates := make([]Candidate, 0, 3)
	for _, sig := range b.Signals() {
		if !sig.HasOpinion() {
			continue
		}
		candidates = append(candidates, Candidate{
			Source:     sig.Source,
			Category:   sig.Category,
			Confidence: sig.Confidence,
			Weight:     SourceWeight(sig.Source),
			Reasoning:  sig.Reasoning,
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return sourcePriority[candidates[i].Source] < sourcePriority[candidates[j].Source]
	})
	return candidates
}
