package classification

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"sifter/internal/evidence"
	"sifter/internal/reviewqueue"
	"sifter/internal/taxonomy"
	"sifter/internal/testsupport"
)

// Exercises the full loop against real stores: an ambiguous file lands in
// the queue, a reviewer resolves it, and the recorded pattern upgrades the
// next classification of a similar file.
func TestReviewLoopFeedsHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	queueStore := testsupport.MustOpenQueue(t, cfg)
	historyStore := testsupport.MustOpenHistory(t, cfg)
	registry := taxonomy.NewRegistry(nil)

	modality := &stubModality{signal: evidence.Signal{
		Source: evidence.SourceModality, Category: "creative", Confidence: 0.55,
		Reasoning: []string{"narrative prose"},
	}}
	collector := evidence.NewCollector(evidence.NewObviousMatcher(registry), modality, historyStore, time.Second, nil)
	exporter := reviewqueue.NewExporter(cfg.Paths.ReviewLog)
	classifier, err := New(Options{
		Registry:  registry,
		Collector: collector,
		Queue:     queueStore,
		Exporter:  exporter,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	path := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "story_draft.txt"), "once upon a time")

	first := classifier.Classify(ctx, path)
	if !first.Queued {
		t.Fatal("ambiguous file should queue")
	}
	if first.Result.Category != evidence.CategoryNeedsReview {
		t.Fatalf("category = %q, want needs_review", first.Result.Category)
	}

	// Reviewer resolves the entry and the pattern is recorded.
	if _, err := queueStore.Resolve(ctx, first.QueueID, "creative"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := historyStore.Record(ctx, "creative", ".txt", "", 0.8); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// A similar file now carries a history signal strong enough to skip
	// the queue even though modality stays uncertain.
	other := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "another_story.txt"), "in a hole in the ground")
	second := classifier.Classify(ctx, other)
	if second.Result.Category != "creative" {
		t.Fatalf("category = %q, want creative from history", second.Result.Category)
	}
	if second.Result.Confidence != 0.8 {
		t.Errorf("confidence = %.2f, want 0.8", second.Result.Confidence)
	}
	if second.Queued {
		t.Error("history-backed result at 0.80 should auto-route")
	}
	if !traceContains(second.Result.DecisionTrace, "tentatively accepting") {
		t.Errorf("trace = %v", second.Result.DecisionTrace)
	}
}
