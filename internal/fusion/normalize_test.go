package fusion

import (
	"testing"

	"sifter/internal/evidence"
	"sifter/internal/media"
)

func TestNormalizeKeepsSuppliedConfidence(t *testing.T) {
	sig := evidence.Signal{Source: evidence.SourceModality, Category: "audio", Confidence: 0.73}
	got := NormalizeSignal(sig, media.TypeAudio)
	if got.Confidence != 0.73 {
		t.Errorf("confidence = %v, want 0.73", got.Confidence)
	}
}

func TestNormalizeClampsOverflow(t *testing.T) {
	sig := evidence.Signal{Source: evidence.SourceModality, Category: "audio", Confidence: 1.7}
	got := NormalizeSignal(sig, media.TypeAudio)
	if got.Confidence != 1 {
		t.Errorf("confidence = %v, want 1", got.Confidence)
	}
}

func TestNormalizeScreenshotInference(t *testing.T) {
	sig := evidence.Signal{Source: evidence.SourceObvious, Category: "screenshots"}
	got := NormalizeSignal(sig, media.TypeImage)
	if got.Confidence != screenshotConfidence {
		t.Errorf("confidence = %v, want %v", got.Confidence, screenshotConfidence)
	}

	byReason := evidence.Signal{
		Source:    evidence.SourceModality,
		Category:  "images",
		Reasoning: []string{"looks like a screenshot of a settings window"},
	}
	got = NormalizeSignal(byReason, media.TypeImage)
	if got.Confidence != screenshotConfidence {
		t.Errorf("reason-based confidence = %v, want %v", got.Confidence, screenshotConfidence)
	}
}

func TestNormalizeSentinelInference(t *testing.T) {
	sig := evidence.Signal{Source: evidence.SourceModality, Category: evidence.CategoryUnknown}
	if got := NormalizeSignal(sig, media.TypeGeneric); got.Confidence != sentinelConfidence {
		t.Errorf("confidence = %v, want %v", got.Confidence, sentinelConfidence)
	}
	sig.Category = evidence.CategoryNeedsReview
	if got := NormalizeSignal(sig, media.TypeGeneric); got.Confidence != sentinelConfidence {
		t.Errorf("confidence = %v, want %v", got.Confidence, sentinelConfidence)
	}
}

func TestNormalizeCoarseTypeInference(t *testing.T) {
	sig := evidence.Signal{Source: evidence.SourceModality, Category: "music"}
	if got := NormalizeSignal(sig, media.TypeAudio); got.Confidence != audioConfidence {
		t.Errorf("audio confidence = %v, want %v", got.Confidence, audioConfidence)
	}
	if got := NormalizeSignal(sig, media.TypeText); got.Confidence != textConfidence {
		t.Errorf("text confidence = %v, want %v", got.Confidence, textConfidence)
	}
	if got := NormalizeSignal(sig, media.TypeVideo); got.Confidence != fallbackConfidence {
		t.Errorf("fallback confidence = %v, want %v", got.Confidence, fallbackConfidence)
	}
}

func TestNormalizeCategoryPlusReplacement(t *testing.T) {
	sig := evidence.Signal{Source: evidence.SourceModality, Category: "financial+documents", Confidence: 0.8}
	got := NormalizeSignal(sig, media.TypeText)
	if got.Category != "financial_documents" {
		t.Errorf("category = %q, want financial_documents", got.Category)
	}
}

func TestNormalizeNullOpinionPassesThrough(t *testing.T) {
	sig := evidence.NullSignal(evidence.SourceModality, "analyzer timed out")
	got := NormalizeSignal(sig, media.TypeAudio)
	if got.HasOpinion() {
		t.Errorf("null opinion gained a category: %q", got.Category)
	}
	if got.Confidence != 0 {
		t.Errorf("null opinion confidence = %v, want 0", got.Confidence)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	signals := []evidence.Signal{
		{Source: evidence.SourceObvious, Category: "screenshots"},
		{Source: evidence.SourceModality, Category: "financial+documents", Confidence: 1.4},
		{Source: evidence.SourceModality, Category: evidence.CategoryUnknown},
		{Source: evidence.SourceHistory, Category: "music", Confidence: -2},
		evidence.NullSignal(evidence.SourceModality, "timeout"),
	}
	for _, sig := range signals {
		once := NormalizeSignal(sig, media.TypeAudio)
		twice := NormalizeSignal(once, media.TypeAudio)
		if once.Category != twice.Category || once.Confidence != twice.Confidence {
			t.Errorf("normalization not idempotent for %+v: once=%+v twice=%+v", sig, once, twice)
		}
	}
}

func TestNormalizeBundleCoversAllSlots(t *testing.T) {
	bundle := evidence.NewBundle(
		evidence.Signal{Source: evidence.SourceObvious, Category: "audio", Confidence: 0.95},
		evidence.Signal{Source: evidence.SourceModality, Category: "podcasts"},
		evidence.Signal{Source: evidence.SourceHistory},
	)
	got := NormalizeBundle(bundle, media.TypeAudio)
	if got.Obvious.Confidence != 0.95 {
		t.Errorf("obvious confidence = %v", got.Obvious.Confidence)
	}
	if got.Modality.Confidence != audioConfidence {
		t.Errorf("modality confidence = %v, want %v", got.Modality.Confidence, audioConfidence)
	}
	if got.History.Confidence != 0 {
		t.Errorf("history confidence = %v, want 0", got.History.Confidence)
	}
}
