package evidence

import "strings"

// Source identifies which producer emitted a signal.
type Source string

const (
	SourceObvious  Source = "obvious"
	SourceModality Source = "modality"
	SourceHistory  Source = "history"
)

// Reserved category sentinels. CategoryUnknown marks a producer that could
// not decide; CategoryNeedsReview is the engine's "no trustworthy winner"
// outcome and the forced category for low-confidence results.
const (
	CategoryUnknown     = "unknown"
	CategoryNeedsReview = "needs_review"
)

// IsSentinel reports whether category is one of the reserved sentinels.
func IsSentinel(category string) bool {
	return category == CategoryUnknown || category == CategoryNeedsReview
}

// Signal is one unit of evidence about a file's category. Signals are
// immutable once produced; normalization returns a copy.
type Signal struct {
	Source     Source
	Category   string
	Confidence float64
	Reasoning  []string
}

// HasOpinion reports whether the signal proposes an actual category.
func (s Signal) HasOpinion() bool {
	return strings.TrimSpace(s.Category) != ""
}

// NullSignal builds the zero-confidence, null-category signal used when a
// producer has no opinion or failed. The reasons record why.
func NullSignal(source Source, reasons ...string) Signal {
	return Signal{Source: source, Reasoning: reasons}
}

// Bundle holds exactly one signal per source for one file at one point in
// time. Construct with NewBundle so the per-source slots are always filled.
type Bundle struct {
	Obvious  Signal
	Modality Signal
	History  Signal
}

// NewBundle assembles a bundle, replacing any signal whose source does not
// match its slot with a null-opinion signal. A mismatched slot indicates a
// producer bug, not user input, so the replacement notes it for the trace.
func NewBundle(obvious, modality, history Signal) Bundle {
	return Bundle{
		Obvious:  ensureSource(obvious, SourceObvious),
		Modality: ensureSource(modality, SourceModality),
		History:  ensureSource(history, SourceHistory),
	}
}

func ensureSource(sig Signal, want Source) Signal {
	if sig.Source == "" {
		sig.Source = want
		return sig
	}
	if sig.Source != want {
		return NullSignal(want, "signal discarded: produced for source "+string(sig.Source))
	}
	return sig
}

// Signals returns the three slots in source-priority order.
func (b Bundle) Signals() []Signal {
	return []Signal{b.Obvious, b.Modality, b.History}
}
