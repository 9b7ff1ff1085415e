package fusion

import (
	"fmt"

	"sifter/internal/evidence"
	"sifter/internal/media"
)

// Decision thresholds. Deterministic rules above the dominance threshold are
// trusted more than conflict heuristics; modality opinions need both a
// confident answer and a conflict-free bundle.
const (
	ObviousDominanceThreshold = 0.93
	ModalityAcceptThreshold   = 0.78
	AutoRouteThreshold        = 0.80
	QueueThreshold            = 0.65
)

// Result is the engine's output for one file. It is created once per
// decision and never mutated afterwards.
type Result struct {
	Category      string      `json:"category"`
	Confidence    float64     `json:"confidence"`
	DecisionTrace []string    `json:"decision_trace"`
	Conflicts     []string    `json:"conflicts,omitempty"`
	Candidates    []Candidate `json:"candidates,omitempty"`
}

// NeedsReview reports whether the final category is the review sentinel.
func (r *Result) NeedsReview() bool {
	return r.Category == evidence.CategoryNeedsReview
}

// Decide applies the dominance rules over the ranked candidates and conflict
// list. Pure: no state survives between invocations. Every branch appends a
// trace entry, so the decision trace is never empty.
func Decide(candidates []Candidate, conflicts []string, coarse media.CoarseType) *Result {
	result := &Result{
		Category:   evidence.CategoryNeedsReview,
		Confidence: 0,
		Conflicts:  conflicts,
		Candidates: candidates,
	}

	if len(candidates) == 0 {
		result.trace("no signals produced a category for this %s file; deferring to review", coarse)
		return result
	}

	top := candidates[0]
	switch {
	case top.Source == evidence.SourceObvious && top.Confidence >= ObviousDominanceThreshold:
		// Deterministic rules are trusted more than conflict heuristics.
		result.trace("obvious dominance: confidence %.2f >= %.2f; accepting %q",
			top.Confidence, ObviousDominanceThreshold, top.Category)
		if len(conflicts) > 0 {
			result.trace("conflicts recorded but overridden by obvious dominance: %s",
				joinConflicts(conflicts))
		}
		result.accept(top)
		return result

	case top.Source == evidence.SourceModality && top.Confidence >= ModalityAcceptThreshold:
		if len(conflicts) == 0 {
			result.trace("modality accepted: confidence %.2f >= %.2f with no conflicts; accepting %q",
				top.Confidence, ModalityAcceptThreshold, top.Category)
			result.accept(top)
			return result
		}
		result.trace("modality blocked: confidence %.2f >= %.2f but %d conflict(s) present: %s",
			top.Confidence, ModalityAcceptThreshold, len(conflicts), joinConflicts(conflicts))

	default:
		if len(conflicts) == 0 {
			// Low-confidence pass-through: propose a best guess, knowing the
			// queue threshold will route it to review rather than auto-move.
			result.trace("low confidence: top candidate %q from %s at %.2f below thresholds; tentatively accepting with no conflicts",
				top.Category, top.Source, top.Confidence)
			result.accept(top)
			return result
		}
		result.trace("low confidence and %d conflict(s) present; no automatic winner", len(conflicts))
	}

	result.trace("no candidate qualified; deferring to review")
	return result
}

func (r *Result) accept(c Candidate) {
	r.Category = c.Category
	r.Confidence = c.Confidence
}

func (r *Result) trace(format string, args ...any) {
	r.DecisionTrace = append(r.DecisionTrace, fmt.Sprintf(format, args...))
}

func joinConflicts(conflicts []string) string {
	out := ""
	for i, c := range conflicts {
		if i > 0 {
			out += "; "
		}
		out += c
	}
	return out
}
