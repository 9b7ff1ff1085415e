package fusion

import (
	"strings"

	"sifter/internal/evidence"
	"sifter/internal/media"
)

// Inferred confidence values, applied in order when a producer supplied none.
const (
	screenshotConfidence = 0.9
	sentinelConfidence   = 0.5
	audioConfidence      = 0.7
	textConfidence       = 0.6
	fallbackConfidence   = 0.4
)

// NormalizeSignal guarantees the returned signal carries a confidence in
// [0,1] and a taxonomy-safe category id. Null-opinion signals pass through
// untouched: the bundle invariant requires them to stay at zero confidence.
// Normalization never fails; malformed input degrades to the
// lowest-confidence branch. It is idempotent.
func NormalizeSignal(sig evidence.Signal, coarse media.CoarseType) evidence.Signal {
	sig.Category = normalizeCategory(sig.Category)
	if !sig.HasOpinion() {
		sig.Confidence = 0
		return sig
	}

	switch {
	case sig.Confidence > 0:
		sig.Confidence = clamp(sig.Confidence)
	case indicatesScreenshot(sig):
		sig.Confidence = screenshotConfidence
	case evidence.IsSentinel(sig.Category):
		sig.Confidence = sentinelConfidence
	case coarse == media.TypeAudio:
		sig.Confidence = audioConfidence
	case coarse == media.TypeText:
		sig.Confidence = textConfidence
	default:
		sig.Confidence = fallbackConfidence
	}
	return sig
}

// NormalizeBundle normalizes all three slots.
func NormalizeBundle(b evidence.Bundle, coarse media.CoarseType) evidence.Bundle {
	return evidence.Bundle{
		Obvious:  NormalizeSignal(b.Obvious, coarse),
		Modality: NormalizeSignal(b.Modality, coarse),
		History:  NormalizeSignal(b.History, coarse),
	}
}

// normalizeCategory strips whitespace and replaces '+' with '_': taxonomy
// category ids must not contain '+'.
func normalizeCategory(category string) string {
	return strings.ReplaceAll(strings.TrimSpace(category), "+", "_")
}

func indicatesScreenshot(sig evidence.Signal) bool {
	if strings.Contains(strings.ToLower(sig.Category), "screenshot") {
		return true
	}
	for _, reason := range sig.Reasoning {
		if strings.Contains(strings.ToLower(reason), "screenshot") {
			return true
		}
	}
	return false
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
